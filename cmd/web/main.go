package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-adoption-web/internal/adapters/petsapi"
	"pet-adoption-web/internal/config"
	"pet-adoption-web/internal/page"
	"pet-adoption-web/internal/platform/logger"
	"pet-adoption-web/internal/platform/metrics"
	"pet-adoption-web/internal/router"
	"pet-adoption-web/internal/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	api, err := petsapi.NewClient(petsapi.Config{
		BaseURL: cfg.PetsAPIBaseURL,
		Logger:  log,
		Metrics: rec,
	})
	if err != nil {
		log.Error("pets api client error", map[string]any{"error": err})
		os.Exit(1)
	}

	sessions := page.NewSessions(cfg.SessionTTL, func(effects page.Effects) *page.Controller {
		return page.NewController(page.Options{
			API:     api,
			Effects: effects,
			Logger:  log,
			Metrics: rec,
		})
	})

	r := router.NewRouter(router.Options{
		Web:      web.New(web.Options{Sessions: sessions, Logger: log}),
		Logger:   log,
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "pets_api": cfg.PetsAPIBaseURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err})
	}
}
