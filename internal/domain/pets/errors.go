package pets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound = errors.New("pet not found")

	// ErrReadOnly: una mascota adoptada no se edita (sí se puede borrar).
	ErrReadOnly = errors.New("pet is adopted and read-only")

	ErrFormClosed = errors.New("form is not open")

	// Tipos de error de validación. Se comparan con errors.Is.
	ErrRequiredField = errors.New("required field")
	ErrInvalidRange  = errors.New("invalid range")
	ErrInvalidChoice = errors.New("invalid choice")
)

// Field identifica un campo del formulario.
type Field string

const (
	FieldName        Field = "name"
	FieldSpecies     Field = "species"
	FieldAge         Field = "age"
	FieldPersonality Field = "personality"
)

// ValidationError es un error de un solo campo, pensado para mostrarse inline.
type ValidationError struct {
	Field   Field
	Kind    error // ErrRequiredField | ErrInvalidRange | ErrInvalidChoice
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func requiredField(f Field, msg string) *ValidationError {
	return &ValidationError{Field: f, Kind: ErrRequiredField, Message: msg}
}

func invalidRange(f Field, msg string) *ValidationError {
	return &ValidationError{Field: f, Kind: ErrInvalidRange, Message: msg}
}

func invalidChoice(f Field, msg string) *ValidationError {
	return &ValidationError{Field: f, Kind: ErrInvalidChoice, Message: msg}
}

// FieldErrors agrupa los errores de un submit, como mucho uno por campo.
type FieldErrors map[Field]*ValidationError

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for f := range fe {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fe[Field(k)].Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message devuelve el mensaje del campo o "" (cómodo desde templates).
func (fe FieldErrors) Message(f Field) string {
	if e, ok := fe[f]; ok && e != nil {
		return e.Message
	}
	return ""
}

// Is permite errors.Is(fieldErrs, ErrRequiredField) si algún campo tiene ese tipo.
func (fe FieldErrors) Is(target error) bool {
	for _, e := range fe {
		if e != nil && errors.Is(e, target) {
			return true
		}
	}
	return false
}
