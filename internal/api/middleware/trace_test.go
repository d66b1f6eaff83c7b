package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termdeck/termdeck-api/internal/api/middleware"
	"github.com/termdeck/termdeck-api/internal/api/shared"
	"github.com/termdeck/termdeck-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger(t)

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	handler := middleware.TraceMiddleware(log)(middleware.RequestLogger(next))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/terms/learn", nil))

	require.NotEmpty(t, traceID)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, traceID, rec.Header().Get(middleware.TraceIDHeader))

	inside := logger.FindEntries(t, buf, "inside handler")
	require.Len(t, inside, 1)
	assert.Equal(t, traceID, inside[0]["trace_id"])

	completed := logger.FindEntries(t, buf, "request completed")
	require.Len(t, completed, 1)
	assert.Equal(t, traceID, completed[0]["trace_id"])
	assert.Equal(t, "/api/terms/learn", completed[0]["path"])
	assert.Equal(t, float64(http.StatusTeapot), completed[0]["status"])
}

func TestTraceMiddleware_UniquePerRequest(t *testing.T) {
	t.Parallel()

	handler := middleware.TraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first := httptest.NewRecorder()
	second := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, first.Header().Get(middleware.TraceIDHeader))
	assert.NotEqual(t, first.Header().Get(middleware.TraceIDHeader), second.Header().Get(middleware.TraceIDHeader))
}
