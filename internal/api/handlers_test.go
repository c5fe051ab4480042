//nolint:testpackage // Testing internal handler wiring requires same package access
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/qivook/qivook-engine/internal/loader"
	"github.com/qivook/qivook-engine/internal/logging"
	"github.com/qivook/qivook-engine/internal/processor"
)

const labFragment = `{
	"title": "Laboratory and Quality Testing Services",
	"text_content": "Rwanda Standards Board offers testing. Rwanda Food and Drug Authority handles registration."
}`

const fuelFragment = `{
	"title": "Fuel Prices Update",
	"text_content": "Petrol 1720 Rwf per litre 1.32 US$ Diesel 1718 Rwf per litre 1.31 US$"
}`

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	countryDir := filepath.Join(dataDir, "rw")
	if err := os.MkdirAll(countryDir, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, content := range map[string]string{
		"structured_data_lab.json":  labFragment,
		"structured_data_fuel.json": fuelFragment,
	} {
		if err := os.WriteFile(filepath.Join(countryDir, name), []byte(content), 0o640); err != nil {
			t.Fatalf("write fragment: %v", err)
		}
	}

	logger := logging.NewNop()
	countryLoader := loader.New(dataDir, processor.New(logger), logger)
	handler := NewHandler(countryLoader, "qivook-engine", "test", logger)

	router := gin.New()
	SetupRoutes(router, handler, nil)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestGetCountry(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/countries/RW")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var profile map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("parse profile: %v", err)
	}
	if profile["name"] != "Rwanda" {
		t.Errorf("name = %v, want Rwanda", profile["name"])
	}
	if profile["currency"] != "RWF" {
		t.Errorf("currency = %v, want RWF", profile["currency"])
	}
}

func TestGetCountry_LowercaseCode(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/countries/rw")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for lowercase code", rec.Code)
	}
}

func TestGetCountry_UnsupportedCode(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/countries/XX")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetSuppliers(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/countries/RW/suppliers")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp SuppliersListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("total = %d, want 2 laboratory suppliers", resp.Total)
	}
}

func TestGetSuppliers_Search(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/countries/RW/suppliers?q=standards")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp SuppliersListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1 match", resp.Total)
	}
	if resp.Suppliers[0].Name != "Rwanda Standards Board (RSB)" {
		t.Errorf("name = %q", resp.Suppliers[0].Name)
	}
}

func TestGetSuppliers_BadVerifiedParam(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/countries/RW/suppliers?verified=maybe")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetPricing(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/countries/RW/pricing")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp PricingListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("total = %d, want 2 fuel records", resp.Total)
	}
}

func TestGetStats(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/countries/RW/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var stats map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("parse stats: %v", err)
	}
	if stats["total_suppliers"] != float64(2) {
		t.Errorf("total_suppliers = %v, want 2", stats["total_suppliers"])
	}
}

func TestReload(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/countries/RW/reload")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ReloadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Country != "RW" {
		t.Errorf("country = %q, want RW", resp.Country)
	}
	// Two discovered fragments out of the 68 expected documents.
	if resp.Completeness != 3 {
		t.Errorf("completeness = %d, want 3", resp.Completeness)
	}
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var health map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("parse health: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", health["status"])
	}
	if health["service"] != "qivook-engine" {
		t.Errorf("service = %q", health["service"])
	}
}
