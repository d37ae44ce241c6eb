package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactRoute(t *testing.T) {
	r := New()
	r.GET("/api/v1/audits", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audits", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWildcardSegment(t *testing.T) {
	r := New()
	var hit string
	r.GET("/api/v1/audits/*/checks", func(w http.ResponseWriter, req *http.Request) {
		hit = "checks"
	})
	r.GET("/api/v1/audits/*", func(w http.ResponseWriter, req *http.Request) {
		hit = "audit"
	})

	rec := httptest.NewRecorder()
	r.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audits/abc-123/checks", nil))
	assert.Equal(t, "checks", hit)

	rec = httptest.NewRecorder()
	r.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audits/abc-123", nil))
	assert.Equal(t, "audit", hit)
}

func TestTrailingWildcard(t *testing.T) {
	r := New()
	r.GET("/swagger/*", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/swagger/index.html", "/swagger/doc.json", "/swagger/a/b/c"} {
		rec := httptest.NewRecorder()
		r.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestNotFound(t *testing.T) {
	r := New()
	r.GET("/api/v1/audits", func(w http.ResponseWriter, req *http.Request) {})

	rec := httptest.NewRecorder()
	r.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	r := New()
	r.GET("/api/v1/audits", func(w http.ResponseWriter, req *http.Request) {})

	rec := httptest.NewRecorder()
	r.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/audits", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouteRegistration(t *testing.T) {
	r := New()
	r.POST("/api/v1/audits", func(w http.ResponseWriter, req *http.Request) {})

	assert.Contains(t, r.Routes(), "POST:/api/v1/audits")
	assert.True(t, r.Paths()["/api/v1/audits"])
}
