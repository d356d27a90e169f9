package petsapitest

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"pet-adoption-web/internal/adapters/storage/memory"
	"pet-adoption-web/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

// Ops para inyectar fallos.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpAdopt  = "adopt"
	OpDelete = "delete"
)

// Server expone Service con las rutas del contrato y permite forzar fallos.
type Server struct {
	svc *Service

	mu       sync.Mutex
	failures map[string]int // op -> status a devolver en la próxima llamada
	calls    map[string]int
}

func NewServer(svc *Service) *Server {
	return &Server{
		svc:      svc,
		failures: map[string]int{},
		calls:    map[string]int{},
	}
}

func (s *Server) Service() *Service { return s.svc }

// FailNext hace que la próxima llamada a op responda status.
func (s *Server) FailNext(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = status
}

// Calls devuelve cuántas veces se invocó op (incluye las fallidas).
func (s *Server) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *Server) take(op string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	st, ok := s.failures[op]
	if ok {
		delete(s.failures, op)
	}
	return st, ok
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", s.guard(OpList, s.listPets))
		pr.Post("/", s.guard(OpCreate, s.createPet))
		pr.Get("/{petID}", s.guard(OpGet, s.getPet))
		pr.Put("/{petID}", s.guard(OpUpdate, s.updatePet))
		pr.Patch("/{petID}/adopt", s.guard(OpAdopt, s.adoptPet))
		pr.Delete("/{petID}", s.guard(OpDelete, s.deletePet))
	})
	return r
}

func (s *Server) guard(op string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st, fail := s.take(op); fail {
			writeJSON(w, st, map[string]string{"error": "injected failure"})
			return
		}
		next(w, r)
	}
}

func (s *Server) listPets(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getPet(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Get(r.Context(), pets.ID(chi.URLParam(r, "petID")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createPet(w http.ResponseWriter, r *http.Request) {
	var d pets.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	p, err := s.svc.Create(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updatePet(w http.ResponseWriter, r *http.Request) {
	var d pets.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	p, err := s.svc.Update(r.Context(), pets.ID(chi.URLParam(r, "petID")), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) adoptPet(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Adopt(r.Context(), pets.ID(chi.URLParam(r, "petID")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deletePet(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), pets.ID(chi.URLParam(r, "petID"))); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, memory.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pet not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
