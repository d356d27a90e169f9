package page

import (
	"sync"

	"pet-adoption-web/internal/domain/pets"
)

// Effects son efectos de UI que el controller dispara pero no implementa
// (p.ej. la animación de confetti al adoptar).
type Effects interface {
	Celebrate(p pets.PetRecord)
}

type NoEffects struct{}

func (NoEffects) Celebrate(pets.PetRecord) {}

// Celebration es un efecto de un solo disparo: la vista lo consume en el próximo render.
type Celebration struct {
	mu      sync.Mutex
	pending bool
	name    string
}

func (c *Celebration) Celebrate(p pets.PetRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = true
	c.name = p.Name
}

// Take devuelve si hay celebración pendiente (y de quién) y la consume.
func (c *Celebration) Take() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pending {
		return "", false
	}
	name := c.name
	c.pending = false
	c.name = ""
	return name, true
}
