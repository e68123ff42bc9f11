package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	previous := Log
	defer func() { Log = previous }()

	require.NoError(t, Initialize("debug", "development"))
	assert.True(t, Log.Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize("warn", "production"))
	assert.False(t, Log.Core().Enabled(zapcore.InfoLevel))

	assert.Error(t, Initialize("loud", "production"))
}

func TestRequestLogger(t *testing.T) {
	previous := Log
	defer func() { Log = previous }()

	core, logs := observer.New(zapcore.InfoLevel)
	Log = zap.New(core)

	handler := middleware.RequestID(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/orders", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	handled := entries[0].ContextMap()
	assert.Equal(t, "request handled", entries[0].Message)
	assert.Equal(t, int64(http.StatusCreated), handled["status"])
	assert.Equal(t, int64(5), handled["bytes"])
	assert.Equal(t, "POST", handled["method"])
	assert.NotEmpty(t, handled["requestID"])

	assert.Equal(t, "request failed", entries[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
