// Package petsapitest es un doble del backend REST de mascotas.
// Implementa el contrato que espera petsapi.Client sobre un repo en memoria;
// lo usan los tests y cmd/petsapi-stub para desarrollo local.
package petsapitest

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"pet-adoption-web/internal/adapters/storage/memory"
	"pet-adoption-web/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo  *memory.PetRepo
	now   func() time.Time
	newID func() pets.ID
}

func NewService(repo *memory.PetRepo) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: func() pets.ID { return pets.ID(uuid.NewString()) },
	}
}

// DeriveMood es la regla del stub para asignar ánimo (el real lo decide el backend).
func DeriveMood(d pets.Draft) pets.Mood {
	switch {
	case d.Personality == pets.PersonalityEnergetic || d.Personality == pets.PersonalityPlayful:
		return pets.MoodExcited
	case d.Age <= 3:
		return pets.MoodHappy
	default:
		return pets.MoodSad
	}
}

func validate(d pets.Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrInvalidInput
	}
	if d.Age <= 0 {
		return ErrInvalidInput
	}
	if !slices.Contains(pets.AllSpecies, d.Species) {
		return ErrInvalidInput
	}
	if !slices.Contains(pets.AllPersonalities, d.Personality) {
		return ErrInvalidInput
	}
	return nil
}

// Seed inserta registros tal cual (ids incluidos). Para preparar escenarios en tests.
func (s *Service) Seed(ctx context.Context, records ...pets.PetRecord) error {
	for _, p := range records {
		if p.ID == "" {
			p.ID = s.newID()
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]pets.PetRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id pets.ID) (pets.PetRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, d pets.Draft) (pets.PetRecord, error) {
	if err := validate(d); err != nil {
		return pets.PetRecord{}, err
	}

	p := pets.PetRecord{
		ID:          s.newID(),
		Name:        strings.TrimSpace(d.Name),
		Species:     d.Species,
		Age:         d.Age,
		Personality: d.Personality,
		Mood:        DeriveMood(d),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return pets.PetRecord{}, err
	}
	return p, nil
}

// Update reemplaza los campos editables; mood se recalcula.
func (s *Service) Update(ctx context.Context, id pets.ID, d pets.Draft) (pets.PetRecord, error) {
	if err := validate(d); err != nil {
		return pets.PetRecord{}, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return pets.PetRecord{}, err
	}
	p.Name = strings.TrimSpace(d.Name)
	p.Species = d.Species
	p.Age = d.Age
	p.Personality = d.Personality
	p.Mood = DeriveMood(d)

	if err := s.repo.Update(ctx, p); err != nil {
		return pets.PetRecord{}, err
	}
	return p, nil
}

// Adopt marca adoptada con la fecha de hoy (UTC, sin hora). Idempotente.
func (s *Service) Adopt(ctx context.Context, id pets.ID) (pets.PetRecord, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return pets.PetRecord{}, err
	}
	if p.Adopted {
		return p, nil
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	p.Adopted = true
	p.AdoptionDate = &today

	if err := s.repo.Update(ctx, p); err != nil {
		return pets.PetRecord{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id pets.ID) error {
	return s.repo.Delete(ctx, id)
}
