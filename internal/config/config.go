package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config se lee una vez al arrancar y no se modifica después.
type Config struct {
	// Backend
	PetsAPIBaseURL string

	// Server
	Port string

	// Sesiones de página
	SessionTTL time.Duration

	// Logging
	LogLevel  string
	LogFormat string
	AppName   string
}

var ErrMissingBaseURL = errors.New("PETS_API_BASE_URL is required")

// Load lee el entorno. Si existe un .env en el directorio actual, se carga primero
// sin pisar variables ya definidas.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv arma la Config solo desde variables de entorno.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	cfg.PetsAPIBaseURL = strings.TrimSpace(os.Getenv("PETS_API_BASE_URL"))
	if cfg.PetsAPIBaseURL == "" {
		// Nombre heredado del frontend anterior.
		cfg.PetsAPIBaseURL = strings.TrimSpace(os.Getenv("REACT_APP_API_BASE_URL"))
	}
	if cfg.PetsAPIBaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	cfg.Port = getEnvString("PORT", "8080")
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", 30*time.Minute)
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvString("LOG_FORMAT", "text")
	cfg.AppName = getEnvString("APP_NAME", "pet-adoption-web")

	return cfg, nil
}

// Addr devuelve la dirección de escucha (":8080").
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getEnvString(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
