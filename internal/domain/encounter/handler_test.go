package encounter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestServer() (*echo.Echo, *mockVisitRepo, *mockDischargeRepo) {
	svc, visits, discharges := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	h.RegisterRoutes(e.Group("/api/v1"))
	return e, visits, discharges
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateVisit(t *testing.T) {
	e, _, _ := newTestServer()
	body := `{"AdmitReason":"Chest pain","AppointmentDate":"2025-03-01T09:00:00Z"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/visits", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["visit_id"] <= 0 {
		t.Errorf("expected positive visit_id, got %d", resp["visit_id"])
	}
}

func TestHandler_CreateVisit_MissingReason(t *testing.T) {
	e, _, _ := newTestServer()
	rec := doRequest(e, http.MethodPost, "/api/v1/visits", `{"AppointmentDate":"2025-03-01T09:00:00Z"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_GetVisit_NotFound(t *testing.T) {
	e, _, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/visits/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_UpdateVisit(t *testing.T) {
	e, visits, _ := newTestServer()
	v := &Visit{AdmitReason: "Chest pain", AppointmentDate: time.Now()}
	visits.Create(nil, v)

	body := `{"AdmitReason":"Follow-up","AppointmentDate":"2025-03-02T09:00:00Z"}`
	rec := doRequest(e, http.MethodPut, "/api/v1/visits/1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_GetPatientVisit(t *testing.T) {
	e, visits, _ := newTestServer()
	v := &Visit{AdmitReason: "Chest pain", AppointmentDate: time.Now()}
	visits.Create(nil, v)
	visits.patients[10] = v.ID

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/visit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["AdmitReason"] != "Chest pain" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestHandler_GetPatientVisit_None(t *testing.T) {
	e, _, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/visit", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_CreateDischarge(t *testing.T) {
	e, _, _ := newTestServer()
	body := `{"DischargeDate":"2025-03-05T12:00:00Z","Instructions":"Rest for a week"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/discharges", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_CreateDischarge_MissingInstructions(t *testing.T) {
	e, _, _ := newTestServer()
	rec := doRequest(e, http.MethodPost, "/api/v1/discharges", `{"DischargeDate":"2025-03-05T12:00:00Z"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_GetPatientDischarge(t *testing.T) {
	e, _, discharges := newTestServer()
	d := &Discharge{DischargeDate: time.Now(), Instructions: "Rest"}
	discharges.Create(nil, d)
	discharges.patients[10] = d.ID

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/discharge", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_ListVisits(t *testing.T) {
	e, visits, _ := newTestServer()
	visits.Create(nil, &Visit{AdmitReason: "A", AppointmentDate: time.Now()})
	visits.Create(nil, &Visit{AdmitReason: "B", AppointmentDate: time.Now()})

	rec := doRequest(e, http.MethodGet, "/api/v1/visits", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("expected 2 visits, got %d", resp.Total)
	}
}
