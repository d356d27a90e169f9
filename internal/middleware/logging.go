package middleware

import (
	"net/http"
	"time"

	"pet-adoption-web/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// statusRecorder guarda el status que escribió el handler.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.status = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.status = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// Logging loguea una línea por request: method, path, status, duración y request id.
// 5xx => error, 4xx => warn, resto => info.
func Logging(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond),
			}
			if id := chimw.GetReqID(r.Context()); id != "" {
				fields["request_id"] = id
			}

			switch {
			case rec.status >= 500:
				log.Error("http_request", fields)
			case rec.status >= 400:
				log.Warn("http_request", fields)
			default:
				log.Info("http_request", fields)
			}
		})
	}
}
