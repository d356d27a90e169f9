// Command petsapi-stub levanta un backend de mascotas en memoria para desarrollo local.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"pet-adoption-web/internal/adapters/petsapi/petsapitest"
	"pet-adoption-web/internal/adapters/storage/memory"
	"pet-adoption-web/internal/domain/pets"
	"pet-adoption-web/internal/middleware"
	"pet-adoption-web/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	log := logger.NewFromEnv().With(map[string]any{"component": "petsapi-stub"})

	addr := ":5000"
	if v := os.Getenv("STUB_PORT"); v != "" {
		addr = ":" + v
	}

	svc := petsapitest.NewService(memory.NewPetRepo())
	if os.Getenv("STUB_SEED") != "false" {
		if err := seed(svc); err != nil {
			log.Error("seed failed", map[string]any{"error": err})
			os.Exit(1)
		}
	}

	h := petsapitest.NewServer(svc).Routes()

	srv := &http.Server{
		Addr:         addr,
		Handler:      chimw.RequestID(middleware.Logging(log)(h)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting stub", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func seed(svc *petsapitest.Service) error {
	ctx := context.Background()
	for _, d := range []pets.Draft{
		{Name: "Buddy", Species: pets.SpeciesDog, Age: 2, Personality: pets.PersonalityFriendly},
		{Name: "Whiskers", Species: pets.SpeciesCat, Age: 5, Personality: pets.PersonalityShy},
		{Name: "Thumper", Species: pets.SpeciesRabbit, Age: 1, Personality: pets.PersonalityPlayful},
	} {
		if _, err := svc.Create(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
