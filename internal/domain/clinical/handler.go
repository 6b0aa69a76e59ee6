package clinical

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

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/vitals", h.ListVitals)
	api.POST("/vitals", h.RecordVitals)
	api.GET("/vitals/:id", h.GetVitals)
	api.GET("/patients/:id/vitals", h.GetPatientVitals)

	api.GET("/conditions", h.ListConditions)
	api.POST("/conditions", h.CreateCondition)
	api.GET("/conditions/:id", h.GetCondition)
	api.PUT("/conditions/:id", h.UpdateCondition)
	api.GET("/patients/:id/condition", h.GetPatientCondition)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func fetchError(err error, notFoundMsg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// -- Vital Chart Handlers --

func (h *Handler) RecordVitals(c echo.Context) error {
	var v VitalChart
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordVitals(c.Request().Context(), &v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]int64{"vital_id": v.ID})
}

func (h *Handler) GetVitals(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v, err := h.svc.GetVitals(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "vital chart not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) GetPatientVitals(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v, err := h.svc.GetPatientVitals(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "vital chart not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListVitals(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListVitals(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Condition Handlers --

func (h *Handler) CreateCondition(c echo.Context) error {
	var cond Condition
	if err := c.Bind(&cond); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCondition(c.Request().Context(), &cond); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]int64{"condition_id": cond.ID})
}

func (h *Handler) GetCondition(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cond, err := h.svc.GetCondition(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "condition not found")
	}
	return c.JSON(http.StatusOK, cond)
}

func (h *Handler) GetPatientCondition(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cond, err := h.svc.GetPatientCondition(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "condition not found")
	}
	return c.JSON(http.StatusOK, cond)
}

func (h *Handler) UpdateCondition(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var cond Condition
	if err := c.Bind(&cond); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cond.ID = id
	if err := h.svc.UpdateCondition(c.Request().Context(), &cond); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "condition not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cond)
}

func (h *Handler) ListConditions(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListConditions(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
