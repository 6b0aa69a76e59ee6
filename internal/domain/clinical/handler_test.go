package clinical

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer() (*echo.Echo, *mockVitalRepo, *mockConditionRepo) {
	svc, vitals, conditions := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	h.RegisterRoutes(e.Group("/api/v1"))
	return e, vitals, conditions
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

func TestHandler_RecordVitals(t *testing.T) {
	e, _, _ := newTestServer()
	body := `{"HeartRate":72,"BloodPressure":"120/80","RespiratoryRate":16,"Temperature":98.6}`
	rec := doRequest(e, http.MethodPost, "/api/v1/vitals", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["vital_id"] <= 0 {
		t.Errorf("expected positive vital_id, got %d", resp["vital_id"])
	}
}

func TestHandler_RecordVitals_MissingTemperature(t *testing.T) {
	e, _, _ := newTestServer()
	rec := doRequest(e, http.MethodPost, "/api/v1/vitals", `{"HeartRate":72,"BloodPressure":"120/80","RespiratoryRate":16}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_GetVitals(t *testing.T) {
	e, vitals, _ := newTestServer()
	vitals.Create(nil, validVitals())

	rec := doRequest(e, http.MethodGet, "/api/v1/vitals/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["VitalID"] != float64(1) || got["BloodPressure"] != "120/80" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestHandler_GetVitals_NotFound(t *testing.T) {
	e, _, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/vitals/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_GetPatientVitals(t *testing.T) {
	e, vitals, _ := newTestServer()
	v := validVitals()
	vitals.Create(nil, v)
	vitals.patients[10] = v.ID

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/vitals", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPatientVitals_None(t *testing.T) {
	e, _, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/vitals", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_CreateCondition(t *testing.T) {
	e, _, _ := newTestServer()
	body := `{"Description":"Type 2 diabetes","Treatment":"Insulin therapy"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/conditions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["condition_id"] <= 0 {
		t.Errorf("expected positive condition_id, got %d", resp["condition_id"])
	}
}

func TestHandler_CreateCondition_MissingDescription(t *testing.T) {
	e, _, _ := newTestServer()
	rec := doRequest(e, http.MethodPost, "/api/v1/conditions", `{"Treatment":"Rest"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_UpdateCondition(t *testing.T) {
	e, _, conditions := newTestServer()
	conditions.Create(nil, &Condition{Description: "Hypertension"})

	body := `{"Description":"Hypertension","Treatment":"Lisinopril 10mg daily"}`
	rec := doRequest(e, http.MethodPut, "/api/v1/conditions/1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["Treatment"] != "Lisinopril 10mg daily" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestHandler_UpdateCondition_NotFound(t *testing.T) {
	e, _, _ := newTestServer()
	rec := doRequest(e, http.MethodPut, "/api/v1/conditions/99", `{"Description":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_GetPatientCondition(t *testing.T) {
	e, _, conditions := newTestServer()
	cond := &Condition{Description: "Asthma"}
	conditions.Create(nil, cond)
	conditions.patients[10] = cond.ID

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/condition", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_ListConditions(t *testing.T) {
	e, _, conditions := newTestServer()
	conditions.Create(nil, &Condition{Description: "A"})
	conditions.Create(nil, &Condition{Description: "B"})

	rec := doRequest(e, http.MethodGet, "/api/v1/conditions", "")
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
		t.Errorf("expected 2 conditions, got %d", resp.Total)
	}
}
