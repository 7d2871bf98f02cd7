package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/ppiankov/etchant/internal/model"
	"github.com/ppiankov/etchant/internal/pipeline"
)

type brokenSource struct{}

func (brokenSource) Name() string { return "broken" }

func (brokenSource) Materials(ctx context.Context) ([]model.Material, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func (brokenSource) Etchants(ctx context.Context) ([]model.Etchant, error) {
	return nil, errors.New("dial tcp: connection refused")
}

func newTestServer(t *testing.T, cfg model.ServerConfig, opts ...pipeline.Option) *httptest.Server {
	t.Helper()
	p, err := pipeline.NewPipeline(model.DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	ts := httptest.NewServer(New(p, cfg, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func defaultServerConfig() model.ServerConfig {
	return model.DefaultConfig().Server
}

func get(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func expectStatus(t *testing.T, want, got int) {
	t.Helper()
	if got != want {
		t.Fatalf("Expected status %d, got %d", want, got)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, defaultServerConfig())

	var body map[string]string
	expectStatus(t, http.StatusOK, get(t, ts.URL+"/healthz", &body))
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestOptions(t *testing.T) {
	ts := newTestServer(t, defaultServerConfig())

	var body OptionsResponse
	expectStatus(t, http.StatusOK, get(t, ts.URL+"/api/v1/options", &body))
	if len(body.Purposes) != 12 {
		t.Errorf("Expected 12 purposes, got %d", len(body.Purposes))
	}
	if len(body.Contexts) != 6 {
		t.Errorf("Expected 6 contexts, got %d", len(body.Contexts))
	}
	if len(body.QuickPicks) != 6 {
		t.Errorf("Expected 6 quick picks, got %d", len(body.QuickPicks))
	}
}

func TestSearchMaterials(t *testing.T) {
	ts := newTestServer(t, defaultServerConfig())

	var body struct {
		Materials []model.Material `json:"materials"`
	}
	expectStatus(t, http.StatusOK, get(t, ts.URL+"/api/v1/materials?q=stainless", &body))
	if len(body.Materials) == 0 {
		t.Fatal("Expected stainless materials")
	}
	if body.Materials[0].ID != "mat-304" {
		t.Errorf("Expected featured mat-304 first, got %s", body.Materials[0].ID)
	}

	body.Materials = nil
	expectStatus(t, http.StatusOK, get(t, ts.URL+"/api/v1/materials?q=zzz-nothing", &body))
	if len(body.Materials) != 0 {
		t.Errorf("Expected no materials, got %d", len(body.Materials))
	}
}

func TestMaterialAndEtchantDetail(t *testing.T) {
	ts := newTestServer(t, defaultServerConfig())

	var m MaterialDetail
	expectStatus(t, http.StatusOK, get(t, ts.URL+"/api/v1/materials/mat-304", &m))
	if m.ID != "mat-304" || m.CategoryKey != "stainless-steel" {
		t.Errorf("Expected mat-304/stainless-steel, got %s/%s", m.ID, m.CategoryKey)
	}

	var e EtchantDetail
	expectStatus(t, http.StatusOK, get(t, ts.URL+"/api/v1/etchants/et-nital-2", &e))
	if e.ID != "et-nital-2" {
		t.Errorf("Expected et-nital-2, got %s", e.ID)
	}

	tests := []struct {
		path string
		code string
	}{
		{"/api/v1/materials/nope", "material_not_found"},
		{"/api/v1/etchants/nope", "etchant_not_found"},
	}
	for _, tt := range tests {
		var apiErr errorResponse
		expectStatus(t, http.StatusNotFound, get(t, ts.URL+tt.path, &apiErr))
		if apiErr.Error.Code != tt.code {
			t.Errorf("%s: expected code %s, got %s", tt.path, tt.code, apiErr.Error.Code)
		}
	}
}

func TestRecommendations(t *testing.T) {
	ts := newTestServer(t, defaultServerConfig())

	var report model.Report
	status := get(t, ts.URL+"/api/v1/recommendations?material=mat-304&purpose=grain-boundaries&context=failure-analysis", &report)
	expectStatus(t, http.StatusOK, status)
	if report.Material.ID != "mat-304" {
		t.Errorf("Expected mat-304, got %s", report.Material.ID)
	}
	if report.Filters.ApplicationContext != model.ContextFailureAnalysis {
		t.Errorf("Expected failure-analysis context, got %q", report.Filters.ApplicationContext)
	}
	if len(report.Matches) == 0 {
		t.Fatal("Expected matches")
	}
	if report.Matches[0].RecommendedSequence != 1 {
		t.Errorf("Expected sequence 1 on the top match, got %d", report.Matches[0].RecommendedSequence)
	}
}

func TestRecommendations_BadRequests(t *testing.T) {
	ts := newTestServer(t, defaultServerConfig())

	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"missing material", "", http.StatusBadRequest, "missing_material"},
		{"invalid purpose", "material=mat-304&purpose=shininess", http.StatusBadRequest, "invalid_purpose"},
		{"invalid context", "material=mat-304&context=kitchen", http.StatusBadRequest, "invalid_context"},
		{"unknown material", "material=unobtainium-9000", http.StatusNotFound, "material_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorResponse
			expectStatus(t, tt.status, get(t, ts.URL+"/api/v1/recommendations?"+tt.query, &body))
			if body.Error.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, body.Error.Code)
			}
		})
	}
}

func TestCatalogUnavailable(t *testing.T) {
	ts := newTestServer(t, defaultServerConfig(), pipeline.WithSource(brokenSource{}))

	var body errorResponse
	expectStatus(t, http.StatusServiceUnavailable, get(t, ts.URL+"/api/v1/recommendations?material=mat-304", &body))
	if body.Error.Code != "catalog_unavailable" {
		t.Errorf("Expected catalog_unavailable, got %s", body.Error.Code)
	}
	expectStatus(t, http.StatusServiceUnavailable, get(t, ts.URL+"/api/v1/materials", &body))
}

func TestRateLimit(t *testing.T) {
	cfg := defaultServerConfig()
	cfg.RateLimit = 2
	cfg.RateWindow = time.Minute
	ts := newTestServer(t, cfg)

	expectStatus(t, http.StatusOK, get(t, ts.URL+"/api/v1/options", nil))
	expectStatus(t, http.StatusOK, get(t, ts.URL+"/api/v1/options", nil))

	var body errorResponse
	expectStatus(t, http.StatusTooManyRequests, get(t, ts.URL+"/api/v1/options", &body))
	if body.Error.Code != "rate_limited" {
		t.Errorf("Expected rate_limited, got %s", body.Error.Code)
	}

	// health checks sit outside the limiter
	expectStatus(t, http.StatusOK, get(t, ts.URL+"/healthz", nil))
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, defaultServerConfig())

	var body errorResponse
	expectStatus(t, http.StatusNotFound, get(t, ts.URL+"/api/v2/anything", &body))
	if body.Error.Code != "not_found" {
		t.Errorf("Expected not_found, got %s", body.Error.Code)
	}
}
