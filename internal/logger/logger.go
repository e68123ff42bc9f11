package logger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Log глобальный логгер, до вызова Initialize ничего не выводит.
var Log *zap.Logger = zap.NewNop()

// Initialize настраивает Log.
// level - уровень логирования ("debug", "info", "warn", "error"),
// env - "development" включает читаемый консольный вывод, иначе JSON.
func Initialize(level, env string) error {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("ошибка парсинга уровня логирования: %w", err)
	}

	config := zap.NewProductionConfig()
	if env == "development" {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = logLevel

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("ошибка построения логгера: %w", err)
	}

	Log = logger.With(zap.String("service", "quickserve"))
	return nil
}

// responseRecorder запоминает код статуса и размер ответа.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	n, err := rr.ResponseWriter.Write(b)
	rr.bytes += n
	return n, err
}

// RequestLogger пишет в лог каждый обработанный запрос.
// Ответы 5xx логируются с уровнем error.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		fields := []zap.Field{
			zap.String("requestID", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Int("status", recorder.status),
			zap.Int("bytes", recorder.bytes),
			zap.Duration("duration", time.Since(start)),
		}

		if recorder.status >= http.StatusInternalServerError {
			Log.Error("request failed", fields...)
			return
		}
		Log.Info("request handled", fields...)
	})
}
