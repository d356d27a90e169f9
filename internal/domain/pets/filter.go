package pets

import "strings"

// AdoptedFilter es el filtro tri-estado de adopción.
type AdoptedFilter string

const (
	AdoptedAll       AdoptedFilter = "all"
	AdoptedAvailable AdoptedFilter = "available"
	AdoptedOnly      AdoptedFilter = "adopted"
)

var AllAdoptedFilters = []AdoptedFilter{AdoptedAll, AdoptedAvailable, AdoptedOnly}

// Label es el texto del <option> del filtro.
func (f AdoptedFilter) Label() string {
	switch f {
	case AdoptedAvailable:
		return "Available Only"
	case AdoptedOnly:
		return "Adopted Only"
	default:
		return "All Pets"
	}
}

// ParseAdoptedFilter: valores desconocidos o vacíos => all.
func ParseAdoptedFilter(s string) AdoptedFilter {
	switch AdoptedFilter(strings.ToLower(strings.TrimSpace(s))) {
	case AdoptedAvailable:
		return AdoptedAvailable
	case AdoptedOnly:
		return AdoptedOnly
	default:
		return AdoptedAll
	}
}

func (f AdoptedFilter) match(p PetRecord) bool {
	switch f {
	case AdoptedAvailable:
		return !p.Adopted
	case AdoptedOnly:
		return p.Adopted
	default:
		return true
	}
}

// ApplyFilters filtra en memoria, sin reordenar.
// mood nil = sin filtro de ánimo. Los dos predicados se combinan con AND.
// Siempre devuelve un slice nuevo; el input no se toca.
func ApplyFilters(records []PetRecord, mood *Mood, adopted AdoptedFilter) []PetRecord {
	out := make([]PetRecord, 0, len(records))
	for _, p := range records {
		if mood != nil && p.Mood != *mood {
			continue
		}
		if !adopted.match(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
