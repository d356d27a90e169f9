package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Species define las especies que ofrece el formulario.
type Species string

const (
	SpeciesDog       Species = "Dog"
	SpeciesCat       Species = "Cat"
	SpeciesRabbit    Species = "Rabbit"
	SpeciesBird      Species = "Bird"
	SpeciesHamster   Species = "Hamster"
	SpeciesGuineaPig Species = "Guinea Pig"
	SpeciesFerret    Species = "Ferret"
	SpeciesFish      Species = "Fish"
	SpeciesTurtle    Species = "Turtle"
	SpeciesOther     Species = "Other"

	DefaultSpecies = SpeciesDog
)

const defaultSpeciesImg = "/static/images/other-animals.svg"

// AllSpecies mantiene el orden en que se muestran en el <select>.
var AllSpecies = []Species{
	SpeciesDog, SpeciesCat, SpeciesRabbit, SpeciesBird, SpeciesHamster,
	SpeciesGuineaPig, SpeciesFerret, SpeciesFish, SpeciesTurtle, SpeciesOther,
}

// Personality define los rasgos de personalidad soportados.
type Personality string

const (
	PersonalityFriendly     Personality = "Friendly"
	PersonalityShy          Personality = "Shy"
	PersonalityEnergetic    Personality = "Energetic"
	PersonalityCalm         Personality = "Calm"
	PersonalityPlayful      Personality = "Playful"
	PersonalityIndependent  Personality = "Independent"
	PersonalityAffectionate Personality = "Affectionate"
	PersonalityCurious      Personality = "Curious"
	PersonalityReserved     Personality = "Reserved"
	PersonalityOutgoing     Personality = "Outgoing"

	DefaultPersonality = PersonalityFriendly
)

var AllPersonalities = []Personality{
	PersonalityFriendly, PersonalityShy, PersonalityEnergetic, PersonalityCalm, PersonalityPlayful,
	PersonalityIndependent, PersonalityAffectionate, PersonalityCurious, PersonalityReserved, PersonalityOutgoing,
}

// Mood lo asigna el backend; el cliente nunca lo envía.
type Mood string

const (
	MoodHappy   Mood = "Happy"
	MoodExcited Mood = "Excited"
	MoodSad     Mood = "Sad"
)

var AllMoods = []Mood{MoodHappy, MoodExcited, MoodSad}

// MoodStyle es lo que la vista necesita para pintar el badge de ánimo.
type MoodStyle struct {
	Class       string
	Icon        string
	Description string
}

var moodStyles = map[Mood]MoodStyle{
	MoodHappy:   {Class: "bg-happy", Icon: "😊", Description: "This pet is feeling great!"},
	MoodExcited: {Class: "bg-excited", Icon: "🤩", Description: "This pet is feeling very enthusiastic!"},
	MoodSad:     {Class: "bg-sad", Icon: "😢", Description: "This pet is feeling a bit down. Consider adoption!"},
}

// Style devuelve el estilo del mood. ok=false para moods desconocidos
// (la vista cae en el badge gris por defecto).
func (m Mood) Style() (MoodStyle, bool) {
	s, ok := moodStyles[m]
	return s, ok
}

// ParseMood acepta "" (sin filtro) o uno de los moods conocidos.
func ParseMood(s string) (*Mood, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, m := range AllMoods {
		if strings.EqualFold(string(m), s) {
			mm := m
			return &mm, true
		}
	}
	return nil, false
}

var speciesImages = map[Species]string{
	SpeciesDog:     "/static/images/dog.png",
	SpeciesCat:     "/static/images/cat.png",
	SpeciesRabbit:  "/static/images/rabbit.png",
	SpeciesFerret:  "/static/images/ferret.png",
	SpeciesHamster: "/static/images/hamster.png",
}

// Image devuelve la imagen por especie o la genérica.
func (s Species) Image() string {
	if img, ok := speciesImages[s]; ok {
		return img
	}
	return defaultSpeciesImg
}

// ID lo asigna el backend. Se guarda como string aunque el backend mande números.
type ID string

func (id ID) String() string { return string(id) }

// PetRecord es la forma compartida de una mascota tal como la devuelve el backend.
type PetRecord struct {
	ID           ID          `json:"id"`
	Name         string      `json:"name"`
	Species      Species     `json:"species"`
	Age          int         `json:"age"`
	Personality  Personality `json:"personality"`
	Mood         Mood        `json:"mood"`
	Adopted      bool        `json:"adopted"`
	AdoptionDate *time.Time  `json:"adoption_date,omitempty"`

	// rawAdoptionDate guarda una fecha que no se pudo parsear. Solo se muestra.
	rawAdoptionDate string
}

// Draft son los campos editables. Sin id, mood, adopted ni adoption_date.
type Draft struct {
	Name        string      `json:"name"`
	Species     Species     `json:"species"`
	Age         int         `json:"age"`
	Personality Personality `json:"personality"`
}

// Draft extrae los campos editables de un registro.
func (p PetRecord) Draft() Draft {
	return Draft{
		Name:        p.Name,
		Species:     p.Species,
		Age:         p.Age,
		Personality: p.Personality,
	}
}

// Consistent verifica adoption_date presente sii adopted.
func (p PetRecord) Consistent() bool {
	return p.Adopted == (p.AdoptionDate != nil)
}

// AgeLabel: "1 year" / "3 years".
func (p PetRecord) AgeLabel() string {
	if p.Age == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", p.Age)
}

// AdoptionDateLabel formatea la fecha larga ("January 1, 2024"). Si el backend
// mandó una fecha ilegible se devuelve tal cual; vacío si no hay fecha.
func (p PetRecord) AdoptionDateLabel() string {
	if p.AdoptionDate == nil {
		return p.rawAdoptionDate
	}
	return FormatLongDate(*p.AdoptionDate)
}

func FormatLongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Formatos aceptados para adoption_date (el backend original manda ISO con o sin hora).
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid adoption_date %q", s)
}

// UnmarshalJSON tolera:
// - "id" o "_id" (backend estilo Mongo)
// - id numérico o string
// - adoption_date como fecha sola o timestamp, y null
//
// Una adoption_date ilegible no invalida el registro: queda solo para mostrar.
func (p *PetRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID           json.RawMessage `json:"id"`
		MongoID      json.RawMessage `json:"_id"`
		Name         string          `json:"name"`
		Species      Species         `json:"species"`
		Age          int             `json:"age"`
		Personality  Personality     `json:"personality"`
		Mood         Mood            `json:"mood"`
		Adopted      bool            `json:"adopted"`
		AdoptionDate *string         `json:"adoption_date"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	idRaw := raw.ID
	if len(bytes.TrimSpace(idRaw)) == 0 || string(idRaw) == "null" {
		idRaw = raw.MongoID
	}
	id, err := decodeID(idRaw)
	if err != nil {
		return err
	}

	out := PetRecord{
		ID:          id,
		Name:        raw.Name,
		Species:     raw.Species,
		Age:         raw.Age,
		Personality: raw.Personality,
		Mood:        raw.Mood,
		Adopted:     raw.Adopted,
	}
	if raw.AdoptionDate != nil && strings.TrimSpace(*raw.AdoptionDate) != "" {
		if t, err := parseDate(*raw.AdoptionDate); err == nil {
			out.AdoptionDate = &t
		} else {
			out.rawAdoptionDate = strings.TrimSpace(*raw.AdoptionDate)
		}
	}

	*p = out
	return nil
}

func decodeID(raw json.RawMessage) (ID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return ID(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errors.New("id must be a string or a number")
	}
	return ID(n.String()), nil
}
