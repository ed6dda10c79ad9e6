package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/metrics"
	"github.com/brokeradda/adda-admin/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

func TestRateLimitRejectsOverLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, "test")
	defer limiter.Stop()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	r := gin.New()
	r.Use(RequestID(), RateLimit(limiter))
	r.GET("/x", okHandler)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	now = now.Add(20 * time.Second)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "40", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var problem apierror.ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, http.StatusTooManyRequests, problem.Status)
	assert.NotEmpty(t, problem.RequestID)

	// a new window admits the client again
	now = now.Add(time.Minute)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, apierror.GetRequestID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestRequireSession(t *testing.T) {
	sess := session.New()
	r := gin.New()
	r.Use(RequireSession(sess))
	r.GET("/x", okHandler)

	do := func(mutate func(*http.Request)) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if mutate != nil {
			mutate(req)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, do(nil))
	assert.Equal(t, http.StatusUnauthorized, do(func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer anything")
	}))

	sess.SetToken("tok-1")
	assert.Equal(t, http.StatusOK, do(func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer tok-1")
	}))
	assert.Equal(t, http.StatusOK, do(func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: sess.CookieName(), Value: "tok-1"})
	}))
	assert.Equal(t, http.StatusUnauthorized, do(func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: sess.CookieName(), Value: "stale"})
	}))
}

type loginBody []byte

func (b loginBody) Login(context.Context, string, string) ([]byte, error) {
	return b, nil
}

func TestRequireSessionTagsAdminID(t *testing.T) {
	sess := session.New()
	r := gin.New()
	r.Use(RequireSession(sess))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, logger.AdminIDFromContext(c.Request.Context()))
	})

	whoami := func() string {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+sess.Token())
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}

	// restored tokens carry no admin id
	sess.SetToken("restored")
	assert.Empty(t, whoami())

	_, err := sess.Login(context.Background(), loginBody(`{"data":{"token":"tok-2","admin":{"id":"adm-7"}}}`), "ops@brokeradda.in", "pw")
	require.NoError(t, err)
	assert.Equal(t, "adm-7", whoami())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000", "https://*.adda-admin.pages.dev"}))
	r.GET("/x", okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://preview.adda-admin.pages.dev")
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://preview.adda-admin.pages.dev", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORSAllowAll(t *testing.T) {
	r := gin.New()
	r.Use(CORS(nil))
	r.GET("/x", okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://anywhere.test")
	r.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(true))
	r.GET("/x", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age=31536000")

	r = gin.New()
	r.Use(SecurityHeaders(false))
	r.GET("/x", okHandler)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestLoggerRecordsRoute(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(RequestID(), Logger(m))
	r.GET("/brokers/:id", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/brokers/abc", nil))
	require.Equal(t, http.StatusOK, w.Code)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() != "adda_admin_http_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "route" && l.GetValue() == "/brokers/:id" {
					found = true
				}
			}
		}
	}
	assert.True(t, found)
}
