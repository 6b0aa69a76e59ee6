package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer() (*echo.Echo, *mockPatientRepo) {
	svc, patients := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	h.RegisterRoutes(e.Group("/api/v1"))
	return e, patients
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

func TestHandler_GetPatient(t *testing.T) {
	e, patients := newTestServer()
	patients.add(&Patient{ID: 10, FirstName: "John", LastName: "Doe"})

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["PatientID"] != float64(10) || got["FirstName"] != "John" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/patients/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_GetPatient_InvalidID(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/patients/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_ListPatients(t *testing.T) {
	e, patients := newTestServer()
	patients.add(&Patient{ID: 10, FirstName: "John", LastName: "Doe"})
	patients.add(&Patient{ID: 11, FirstName: "Mary", LastName: "Major"})

	rec := doRequest(e, http.MethodGet, "/api/v1/patients", "")
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
		t.Errorf("expected 2 patients, got %d", resp.Total)
	}
}

func TestHandler_UpdatePatientLinks(t *testing.T) {
	e, patients := newTestServer()
	patients.add(&Patient{ID: 10, FirstName: "John", LastName: "Doe"})

	rec := doRequest(e, http.MethodPut, "/api/v1/patients/10", `{"DoctorID":1,"NurseID":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["DoctorID"] != float64(1) || got["NurseID"] != float64(2) {
		t.Errorf("expected updated links echoed back, got %v", got)
	}
}

func TestHandler_UpdatePatientLinks_Empty(t *testing.T) {
	e, patients := newTestServer()
	patients.add(&Patient{ID: 10, FirstName: "John", LastName: "Doe"})

	rec := doRequest(e, http.MethodPut, "/api/v1/patients/10", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_UpdatePatientLinks_NotFound(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodPut, "/api/v1/patients/99", `{"DoctorID":1}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_ListDoctorPatients(t *testing.T) {
	e, patients := newTestServer()
	patients.add(&Patient{ID: 10, FirstName: "John", LastName: "Doe", DoctorID: int64Ptr(1)})

	rec := doRequest(e, http.MethodGet, "/api/v1/doctors/1/patients", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected 1 patient, got %d", resp.Total)
	}
}

func TestHandler_GetDoctor_NotFound(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/doctors/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_ListPatientProxies(t *testing.T) {
	e, patients := newTestServer()
	patients.add(&Patient{ID: 10, FirstName: "John", LastName: "Doe"})

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/proxies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var proxies []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &proxies); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(proxies) != 1 || proxies[0]["ProxyID"] != float64(5) {
		t.Errorf("expected proxy 5, got %v", proxies)
	}
}

func TestHandler_GetPatientDoctor(t *testing.T) {
	e, patients := newTestServer()
	patients.add(&Patient{ID: 10, FirstName: "John", LastName: "Doe", DoctorID: int64Ptr(1)})

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/doctor", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["DoctorID"] != float64(1) || got["LastName"] != "House" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestHandler_GetPatientDoctor_NoneAssigned(t *testing.T) {
	e, patients := newTestServer()
	patients.add(&Patient{ID: 10, FirstName: "John", LastName: "Doe"})

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/doctor", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_GetPatientNurse(t *testing.T) {
	e, patients := newTestServer()
	patients.add(&Patient{ID: 10, FirstName: "John", LastName: "Doe", NurseID: int64Ptr(2)})

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/nurse", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["NurseID"] != float64(2) || got["LastName"] != "Hathaway" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestHandler_GetPatientNurse_NotFound(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/patients/99/nurse", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_GetProxy(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/proxies/5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_ListNurses(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/nurses", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
