package petsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-adoption-web/internal/domain/pets"
	"pet-adoption-web/internal/platform/httpclient"
	"pet-adoption-web/internal/platform/logger"
	"pet-adoption-web/internal/platform/metrics"
)

var ErrNotConfigured = errors.New("pets api client not configured")

type Config struct {
	BaseURL string

	// Opcional: inyectar transport en tests.
	Transport http.RoundTripper

	Logger  logger.Logger
	Metrics metrics.Recorder
}

// Client implementa pets.API contra el backend REST.
// Sin reintentos: cada fallo vuelve tal cual al caller (envuelto con status/body).
type Client struct {
	http    *httpclient.Client
	log     logger.Logger
	metrics metrics.Recorder
}

var _ pets.API = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, 0)
	if err != nil {
		return nil, err
	}
	if cfg.Transport != nil {
		hc.HTTP.Transport = cfg.Transport
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	rec := cfg.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}

	return &Client{
		http:    hc,
		log:     log.With(map[string]any{"component": "petsapi"}),
		metrics: rec,
	}, nil
}

func petPath(id pets.ID) string {
	return "/pets/" + url.PathEscape(id.String())
}

// ListAll: GET /pets
func (c *Client) ListAll(ctx context.Context) ([]pets.PetRecord, error) {
	var out []pets.PetRecord
	err := c.do(ctx, "list", http.MethodGet, "/pets", nil, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []pets.PetRecord{}
	}
	return out, nil
}

// GetByID: GET /pets/{id}. 404 => pets.ErrNotFound (envuelto).
func (c *Client) GetByID(ctx context.Context, id pets.ID) (pets.PetRecord, error) {
	var out pets.PetRecord
	if err := c.do(ctx, "get", http.MethodGet, petPath(id), nil, &out); err != nil {
		return pets.PetRecord{}, err
	}
	return out, nil
}

// Create: POST /pets con el draft (sin id/mood/adopted).
func (c *Client) Create(ctx context.Context, d pets.Draft) (pets.PetRecord, error) {
	var out pets.PetRecord
	if err := c.do(ctx, "create", http.MethodPost, "/pets", d, &out); err != nil {
		return pets.PetRecord{}, err
	}
	return out, nil
}

// Update: PUT /pets/{id}, reemplazo completo de los campos editables.
func (c *Client) Update(ctx context.Context, id pets.ID, d pets.Draft) (pets.PetRecord, error) {
	var out pets.PetRecord
	if err := c.do(ctx, "update", http.MethodPut, petPath(id), d, &out); err != nil {
		return pets.PetRecord{}, err
	}
	return out, nil
}

// Adopt: PATCH /pets/{id}/adopt. El servidor setea adopted y adoption_date.
func (c *Client) Adopt(ctx context.Context, id pets.ID) (pets.PetRecord, error) {
	var out pets.PetRecord
	if err := c.do(ctx, "adopt", http.MethodPatch, petPath(id)+"/adopt", nil, &out); err != nil {
		return pets.PetRecord{}, err
	}
	return out, nil
}

// Delete: DELETE /pets/{id} (204).
func (c *Client) Delete(ctx context.Context, id pets.ID) error {
	return c.do(ctx, "delete", http.MethodDelete, petPath(id), nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	start := time.Now()
	err := c.http.DoJSON(ctx, method, path, nil, in, out)
	elapsed := time.Since(start)

	if err == nil {
		c.metrics.RecordAPICall(op, metrics.OutcomeOK, elapsed)
		c.log.Debug("api call ok", map[string]any{
			"op":          op,
			"method":      method,
			"path":        path,
			"duration_ms": elapsed.Milliseconds(),
		})
		return nil
	}

	c.metrics.RecordAPICall(op, metrics.OutcomeError, elapsed)

	fields := map[string]any{
		"op":          op,
		"method":      method,
		"path":        path,
		"duration_ms": elapsed.Milliseconds(),
		"error":       err,
	}
	if te, ok := httpclient.AsTransportError(err); ok {
		fields["status"] = te.StatusCode
		if te.Body != "" {
			fields["body"] = te.Body
		}
		if te.NotFound() {
			c.log.Warn("api call not found", fields)
			return fmt.Errorf("%w: %w", pets.ErrNotFound, err)
		}
	}
	c.log.Error("api call failed", fields)
	return err
}
