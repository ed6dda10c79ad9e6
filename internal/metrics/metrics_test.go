package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	tests := map[string]string{
		"/api/brokers":                "/api/brokers",
		"/api/brokers/665f0c/block":   "/api/brokers/:id/block",
		"/api/properties/abc":         "/api/properties/:id",
		"/api/import/leads":           "/api/import/leads",
		"/api/admin/login":            "/api/admin/login",
		"/api/regions/r1?x=1":         "/api/regions/:id",
		"/api/properties/p9/approve/": "/api/properties/:id/approve",
	}
	for in, want := range tests {
		assert.Equal(t, want, Route(in), in)
	}
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("POST", "/api/brokers/b1/block", 200, 10*time.Millisecond)
	m.ObserveRequest("POST", "/api/brokers/b2/block", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "/api/leads", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BackendRequests.WithLabelValues("POST", "/api/brokers/:id/block", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendRequests.WithLabelValues("GET", "/api/leads", "error")))
}

func TestSessionGaugeAndResult(t *testing.T) {
	m := New()

	m.SessionChanged("tok")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionActive))
	m.SessionChanged("")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SessionActive))

	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "error", Result(errors.New("x")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/health", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "adda_admin_http_requests_total"))
}
