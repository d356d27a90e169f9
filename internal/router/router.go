package router

import (
	"net/http"

	"pet-adoption-web/internal/middleware"
	"pet-adoption-web/internal/platform/logger"
	"pet-adoption-web/internal/platform/metrics"
	"pet-adoption-web/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Options struct {
	Web    *web.Handler
	Logger logger.Logger

	// Opcional: si viene, expone /metrics.
	Gatherer prometheus.Gatherer
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(opts.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Gatherer))
	}

	// UI
	if opts.Web != nil {
		opts.Web.Routes(r)
	}

	return r
}
