package identity

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
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatientLinks)
	api.GET("/patients/:id/proxies", h.ListPatientProxies)
	api.GET("/patients/:id/doctor", h.GetPatientDoctor)
	api.GET("/patients/:id/nurse", h.GetPatientNurse)

	api.GET("/doctors", h.ListDoctors)
	api.GET("/doctors/:id", h.GetDoctor)
	api.GET("/doctors/:id/patients", h.ListDoctorPatients)

	api.GET("/nurses", h.ListNurses)
	api.GET("/nurses/:id", h.GetNurse)
	api.GET("/nurses/:id/patients", h.ListNursePatients)

	api.GET("/proxies", h.ListProxies)
	api.GET("/proxies/:id", h.GetProxy)
	api.GET("/proxies/:id/patients", h.ListProxyPatients)
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

// -- Patient Handlers --

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatientLinks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var u PatientLinkUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdatePatientLinks(c.Request().Context(), id, &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatientProxies(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	proxies, err := h.svc.ListPatientProxies(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "patient not found")
	}
	return c.JSON(http.StatusOK, proxies)
}

func (h *Handler) GetPatientDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetPatientDoctor(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "doctor not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) GetPatientNurse(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	n, err := h.svc.GetPatientNurse(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "nurse not found")
	}
	return c.JSON(http.StatusOK, n)
}

// -- Doctor Handlers --

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDoctors(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "doctor not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctorPatients(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDoctorPatients(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return fetchError(err, "doctor not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Nurse Handlers --

func (h *Handler) ListNurses(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListNurses(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetNurse(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	n, err := h.svc.GetNurse(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "nurse not found")
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) ListNursePatients(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListNursePatients(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return fetchError(err, "nurse not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Proxy Handlers --

func (h *Handler) ListProxies(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListProxies(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetProxy(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.GetProxy(c.Request().Context(), id)
	if err != nil {
		return fetchError(err, "proxy not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListProxyPatients(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListProxyPatients(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return fetchError(err, "proxy not found")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
