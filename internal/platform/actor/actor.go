package actor

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	RoleKey contextKey = "actor_role"
	IDKey   contextKey = "actor_id"
)

// Headers carrying the caller's asserted identity. Role and ID are
// client-asserted; there is no authentication layer in front of them.
const (
	RoleHeader = "X-Actor-Role"
	IDHeader   = "X-Actor-ID"
)

// Actor is the caller identity attached to a request: a role
// (doctor, nurse, patient, proxy, admin) and the corresponding entity id.
type Actor struct {
	Role string
	ID   int64
}

// Middleware materializes the calling actor from request headers into the
// request context. Requests without actor headers pass through with no
// actor attached; handlers that require one check for it explicitly.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := c.Request().Header.Get(RoleHeader)
			if role == "" {
				return next(c)
			}

			ctx := context.WithValue(c.Request().Context(), RoleKey, role)
			if raw := c.Request().Header.Get(IDHeader); raw != "" {
				if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
					ctx = context.WithValue(ctx, IDKey, id)
				}
			}
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// FromContext returns the actor attached to ctx, if any.
func FromContext(ctx context.Context) (Actor, bool) {
	role, _ := ctx.Value(RoleKey).(string)
	if role == "" {
		return Actor{}, false
	}
	id, _ := ctx.Value(IDKey).(int64)
	return Actor{Role: role, ID: id}, true
}

// RoleFromContext returns the actor role, or "" when no actor is attached.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

// IDFromContext returns the actor id, or 0 when no actor is attached.
func IDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(IDKey).(int64)
	return id
}
