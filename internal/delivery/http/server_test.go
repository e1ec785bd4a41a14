package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/config"
	"github.com/huc-prioritizer/internal/delivery/http/handler"
	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/metrics"
	"github.com/huc-prioritizer/internal/prioritizer"
	"github.com/huc-prioritizer/internal/usecase"
)

// newTestServer собирает сервер без хранилищ: проверяются только маршруты,
// которые отвечают до обращения к данным
func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithOrigins(t, "http://localhost:5173")
}

func newTestServerWithOrigins(t *testing.T, origins string) *Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{CORSOrigins: origins},
		Prioritization: config.PrioritizationConfig{
			RegionCeiling: 100,
			BasinCeiling:  17,
			WeightMin:     0,
			WeightMax:     10,
			DefaultLimit:  3,
		},
	}
	logger := zap.NewNop()
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector("test", reg)

	ceilings := domain.Ceilings{Regions: 100, Basins: 17}
	referenceUC := usecase.NewReferenceUseCase(nil, nil, nil, collector, logger, "37", time.Hour)
	sessionUC := usecase.NewSessionUseCase(nil, nil, referenceUC, logger, ceilings, time.Hour)
	scenarioUC := usecase.NewScenarioUseCase(nil, nil, nil, nil, prioritizer.NewEngine(), collector, logger,
		usecase.ScenarioConfig{Ceilings: ceilings, Bounds: domain.WeightBounds{Max: 10}, DefaultLimit: 3})

	return NewServer(cfg, logger, collector, reg,
		handler.NewReferenceHandler(referenceUC, cfg.Prioritization, logger),
		handler.NewSessionHandler(sessionUC, logger),
		handler.NewScenarioHandler(scenarioUC, usecase.NewExportUseCase(scenarioUC, logger), logger),
		handler.NewExplorerHandler(usecase.NewExplorerUseCase(nil, logger), logger),
	)
}

func decodeError(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload.Error.Code
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestServer_Criteria(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/criteria", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var payload struct {
		Data struct {
			Criteria []domain.Criterion  `json:"criteria"`
			Bounds   domain.WeightBounds `json:"bounds"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Len(t, payload.Data.Criteria, 11)
	assert.Equal(t, 10.0, payload.Data.Bounds.Max)
}

func TestServer_RejectsBeforeDataAccess(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New().String()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed session id", "GET", "/api/v1/sessions/not-a-uuid", "", 400, "INVALID_REQUEST"},
		{"unknown aoi mode", "PUT", "/api/v1/sessions/" + id + "/aoi/mode", `{"mode":"county"}`, 400, "INVALID_AOI_MODE"},
		{"unknown policy", "PUT", "/api/v1/sessions/" + id + "/policy", `{"policy":"maybe"}`, 400, "INVALID_POLICY"},
		{"pick without slot", "POST", "/api/v1/sessions/" + id + "/aoi/picks", `{"value":"Wake"}`, 400, "INVALID_REQUEST"},
		{"broken body", "POST", "/api/v1/scenarios/evaluate", `{"mode":`, 400, "INVALID_REQUEST"},
		{"evaluate without mode", "POST", "/api/v1/scenarios/evaluate", `{}`, 400, "INVALID_AOI_MODE"},
		{"explorer without point", "GET", "/api/v1/units/at", "", 400, "INVALID_COORDINATES"},
		{"explorer out of range", "GET", "/api/v1/units/at?lat=91&lon=0", "", 400, "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.App().Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeError(t, resp.Body))
		})
	}
}

func TestServer_CORSAllowsConfiguredOrigin(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestServer_WildcardOrigins(t *testing.T) {
	var s *Server
	require.NotPanics(t, func() { s = newTestServerWithOrigins(t, "*") })

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set("Origin", "http://maps.example.org")
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t)

	_, err := s.App().Test(httptest.NewRequest("GET", "/api/v1/health", nil))
	require.NoError(t, err)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_api_requests_total")
}
