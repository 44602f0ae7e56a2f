package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dashkit/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestAccessLog_ResponseUntouched(t *testing.T) {
	log := middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Nanosecond, Skip: []string{"/health/live"}})

	r := chi.NewRouter()
	r.Use(log)
	r.Post("/api/v1/dummy", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":`))
		_, _ = w.Write([]byte(`"a1"}`))
	})
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) })

	cases := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodPost, "/api/v1/dummy", http.StatusCreated, `{"id":"a1"}`},
		{http.MethodGet, "/health/live", http.StatusOK, "ok"},
		{http.MethodGet, "/boom", http.StatusBadGateway, ""},
		{http.MethodGet, "/nope", http.StatusNotFound, "404 page not found\n"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		assert.Equal(t, c.status, rec.Code, c.path)
		assert.Equal(t, c.body, rec.Body.String(), c.path)
	}
}

func TestAccessLog_Flushes(t *testing.T) {
	h := middleware.AccessLog(middleware.AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		assert.NoError(t, http.NewResponseController(w).Flush(), "Unwrap reaches the recorder")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, rec.Flushed)
}
