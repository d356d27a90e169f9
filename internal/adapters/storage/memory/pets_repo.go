package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption-web/internal/domain/pets"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("pet already exists")
)

// PetRepo guarda registros en memoria respetando el orden de alta
// (el backend real devuelve la lista en orden de inserción).
type PetRepo struct {
	mu    sync.RWMutex
	byID  map[pets.ID]pets.PetRecord
	order []pets.ID
}

func NewPetRepo() *PetRepo {
	return &PetRepo{
		byID: make(map[pets.ID]pets.PetRecord),
	}
}

func (r *PetRepo) Create(ctx context.Context, p pets.PetRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID.String()) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return ErrExists
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *PetRepo) Update(ctx context.Context, p pets.PetRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PetRepo) GetByID(ctx context.Context, id pets.ID) (pets.PetRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.PetRecord{}, ErrNotFound
	}
	return p, nil
}

func (r *PetRepo) List(ctx context.Context) ([]pets.PetRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.PetRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *PetRepo) Delete(ctx context.Context, id pets.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
