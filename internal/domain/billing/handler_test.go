package billing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer() (*echo.Echo, *mockInsuranceRepo) {
	svc, repo := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	h.RegisterRoutes(e.Group("/api/v1"))
	return e, repo
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

func TestHandler_CreateInsurance(t *testing.T) {
	e, _ := newTestServer()
	body := `{"InsuranceProvider":"Acme Health","PolicyNumber":"POL-1234","Deductible":500}`
	rec := doRequest(e, http.MethodPost, "/api/v1/insurance", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["insurance_id"] <= 0 {
		t.Errorf("expected positive insurance_id, got %d", resp["insurance_id"])
	}
}

func TestHandler_CreateInsurance_MissingPolicy(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodPost, "/api/v1/insurance", `{"InsuranceProvider":"Acme Health"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_GetInsurance(t *testing.T) {
	e, repo := newTestServer()
	repo.Create(nil, &Insurance{InsuranceProvider: "Acme Health", PolicyNumber: "POL-1234"})

	rec := doRequest(e, http.MethodGet, "/api/v1/insurance/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["InsuranceID"] != float64(1) || got["PolicyNumber"] != "POL-1234" {
		t.Errorf("unexpected body %v", got)
	}
}

func TestHandler_GetInsurance_NotFound(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/insurance/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_GetPatientInsurance(t *testing.T) {
	e, repo := newTestServer()
	ins := &Insurance{InsuranceProvider: "Acme Health", PolicyNumber: "POL-1234"}
	repo.Create(nil, ins)
	repo.patients[10] = ins.ID

	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/insurance", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPatientInsurance_None(t *testing.T) {
	e, _ := newTestServer()
	rec := doRequest(e, http.MethodGet, "/api/v1/patients/10/insurance", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_ListInsurance(t *testing.T) {
	e, repo := newTestServer()
	repo.Create(nil, &Insurance{InsuranceProvider: "Acme Health", PolicyNumber: "A"})
	repo.Create(nil, &Insurance{InsuranceProvider: "Beta Mutual", PolicyNumber: "B"})

	rec := doRequest(e, http.MethodGet, "/api/v1/insurance", "")
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
		t.Errorf("expected 2 records, got %d", resp.Total)
	}
}
