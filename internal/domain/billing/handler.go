package billing

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
	api.GET("/insurance", h.ListInsurance)
	api.POST("/insurance", h.CreateInsurance)
	api.GET("/insurance/:id", h.GetInsurance)
	api.GET("/patients/:id/insurance", h.GetPatientInsurance)
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

func (h *Handler) CreateInsurance(c echo.Context) error {
	var ins Insurance
	if err := c.Bind(&ins); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateInsurance(c.Request().Context(), &ins); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]int64{"insurance_id": ins.ID})
}

func (h *Handler) GetInsurance(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ins, err := h.svc.GetInsurance(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "insurance not found")
	}
	return c.JSON(http.StatusOK, ins)
}

func (h *Handler) GetPatientInsurance(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ins, err := h.svc.GetPatientInsurance(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "insurance not found")
	}
	return c.JSON(http.StatusOK, ins)
}

func (h *Handler) ListInsurance(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListInsurance(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
