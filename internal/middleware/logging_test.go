package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-adoption-web/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestLogging_RecordsStatusAndLevel(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"ok", http.StatusOK, "level=info"},
		{"client error", http.StatusUnprocessableEntity, "level=warning"},
		{"server error", http.StatusBadGateway, "level=error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Options{Level: logger.Debug, Output: &buf})

			h := chimw.RequestID(Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})))

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/form/submit", nil))

			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rr.Code)
			}
			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) {
				t.Fatalf("expected %q in log, got %s", tt.wantLevel, out)
			}
			if !strings.Contains(out, "path=/form/submit") {
				t.Fatalf("missing path in log: %s", out)
			}
			if !strings.Contains(out, "request_id=") {
				t.Fatalf("missing request id in log: %s", out)
			}
		})
	}
}

func TestLogging_ImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Info, Output: &buf})

	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), "status=200") {
		t.Fatalf("expected status=200, got %s", buf.String())
	}
}
