package pets

import "context"

// API es el contrato que el cliente espera del backend REST.
// La implementación HTTP vive en adapters/petsapi; los tests inyectan dobles.
type API interface {
	ListAll(ctx context.Context) ([]PetRecord, error)
	GetByID(ctx context.Context, id ID) (PetRecord, error)
	Create(ctx context.Context, d Draft) (PetRecord, error)
	Update(ctx context.Context, id ID, d Draft) (PetRecord, error)
	Adopt(ctx context.Context, id ID) (PetRecord, error)
	Delete(ctx context.Context, id ID) error
}
