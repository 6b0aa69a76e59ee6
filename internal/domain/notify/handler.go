package notify

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/vitalflow/vitalflow/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(alerts, messages *echo.Group) {
	alerts.GET("/", h.ListAlerts)
	alerts.POST("/", h.CreateAlert)
	alerts.GET("/count", h.AlertCount)
	alerts.GET("/:id", h.GetAlert)
	alerts.PUT("/:id", h.AcknowledgeAlert)

	messages.GET("/", h.ListMessages)
	messages.POST("/", h.CreateMessage)
	messages.GET("/count", h.MessageCount)
	messages.GET("/:id", h.GetMessage)
	messages.PUT("/:id", h.MarkMessageRead)
	messages.DELETE("/:id", h.PurgeMessage)
}

// mapError translates service errors once, at the handler boundary:
// validation → 400, missing row → 404, anything else → 500.
func mapError(err error, notFoundMsg string) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, pgx.ErrNoRows):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func recipientQuery(c echo.Context) (string, int64, error) {
	userType := c.QueryParam("user_type")
	if userType == "" {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "user_type is required")
	}
	userID, err := strconv.ParseInt(c.QueryParam("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return "", 0, echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	return userType, userID, nil
}

// -- Alert Handlers --

func (h *Handler) CreateAlert(c echo.Context) error {
	var in CreateAlertInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	alert, err := h.svc.CreateAlert(c.Request().Context(), &in)
	if err != nil {
		return mapError(err, "alert not found")
	}
	return c.JSON(http.StatusCreated, map[string]int64{"alert_id": alert.ID})
}

func (h *Handler) GetAlert(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	alert, err := h.svc.GetAlert(c.Request().Context(), id)
	if err != nil {
		return mapError(err, "alert not found")
	}
	return c.JSON(http.StatusOK, alert)
}

func (h *Handler) ListAlerts(c echo.Context) error {
	userType, userID, err := recipientQuery(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAlerts(c.Request().Context(), userType, userID, pg.Limit, pg.Offset)
	if err != nil {
		return mapError(err, "alert not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) AcknowledgeAlert(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in AckInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AcknowledgeAlert(c.Request().Context(), id, &in); err != nil {
		return mapError(err, "alert not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "acknowledged"})
}

func (h *Handler) AlertCount(c echo.Context) error {
	userType, userID, err := recipientQuery(c)
	if err != nil {
		return err
	}
	count, err := h.svc.UnacknowledgedAlertCount(c.Request().Context(), userType, userID)
	if err != nil {
		return mapError(err, "alert not found")
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// -- Message Handlers --

func (h *Handler) CreateMessage(c echo.Context) error {
	var in CreateMessageInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	msg, err := h.svc.CreateMessage(c.Request().Context(), &in)
	if err != nil {
		return mapError(err, "message not found")
	}
	return c.JSON(http.StatusCreated, map[string]int64{"message_id": msg.ID})
}

func (h *Handler) GetMessage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	msg, err := h.svc.GetMessage(c.Request().Context(), id)
	if err != nil {
		return mapError(err, "message not found")
	}
	return c.JSON(http.StatusOK, msg)
}

func (h *Handler) ListMessages(c echo.Context) error {
	userType, userID, err := recipientQuery(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListMessages(c.Request().Context(), userType, userID, pg.Limit, pg.Offset)
	if err != nil {
		return mapError(err, "message not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) MarkMessageRead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in AckInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.MarkMessageRead(c.Request().Context(), id, &in); err != nil {
		return mapError(err, "message not found")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "read"})
}

func (h *Handler) PurgeMessage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.PurgeMessage(c.Request().Context(), id); err != nil {
		return mapError(err, "message not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MessageCount(c echo.Context) error {
	userType, userID, err := recipientQuery(c)
	if err != nil {
		return err
	}
	count, err := h.svc.UnreadMessageCount(c.Request().Context(), userType, userID)
	if err != nil {
		return mapError(err, "message not found")
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}
