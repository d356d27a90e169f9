package pets

import (
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

// FormMode es el estado del modal de alta/edición.
type FormMode int

const (
	FormClosed FormMode = iota
	FormAdd
	FormEdit
)

func (m FormMode) String() string {
	switch m {
	case FormAdd:
		return "add"
	case FormEdit:
		return "edit"
	default:
		return "closed"
	}
}

// DefaultDraft son los valores con los que abre el modo alta.
func DefaultDraft() Draft {
	return Draft{
		Name:        "",
		Species:     DefaultSpecies,
		Age:         1,
		Personality: DefaultPersonality,
	}
}

// Submission es lo que emite un submit válido.
// ID solo viene en modo edición; el caller decide create vs update por eso.
type Submission struct {
	ID    ID
	Draft Draft
}

func (s Submission) IsUpdate() bool { return s.ID != "" }

// FormState es una copia inmutable del formulario para renderizar.
type FormState struct {
	Mode      FormMode
	EditingID ID
	Values    Draft
	Errors    FieldErrors
}

func (s FormState) Open() bool { return s.Mode != FormClosed }

func (s FormState) Title() string {
	if s.Mode == FormEdit {
		return "Edit Pet"
	}
	return "Add New Pet"
}

func (s FormState) SubmitLabel() string {
	if s.Mode == FormEdit {
		return "Save Changes"
	}
	return "Add Pet"
}

// Form guarda el estado transitorio del modal.
// No es seguro para uso concurrente; el page controller lo protege.
type Form struct {
	mode   FormMode
	target ID
	values Draft
	errs   FieldErrors
}

func NewForm() *Form {
	return &Form{mode: FormClosed, values: DefaultDraft(), errs: FieldErrors{}}
}

// OpenAdd abre el modal vacío (valores por defecto).
func (f *Form) OpenAdd() {
	f.mode = FormAdd
	f.target = ""
	f.values = DefaultDraft()
	f.errs = FieldErrors{}
}

// OpenEdit abre el modal sembrado con los campos editables del registro.
// Mood/adopted/adoption_date nunca pasan al formulario.
func (f *Form) OpenEdit(p PetRecord) error {
	if p.Adopted {
		return ErrReadOnly
	}
	if strings.TrimSpace(p.ID.String()) == "" {
		return ErrNotFound
	}

	d := DefaultDraft()
	if p.Name != "" {
		d.Name = p.Name
	}
	if p.Species != "" {
		d.Species = p.Species
	}
	if p.Age != 0 {
		d.Age = p.Age
	}
	if p.Personality != "" {
		d.Personality = p.Personality
	}

	f.mode = FormEdit
	f.target = p.ID
	f.values = d
	f.errs = FieldErrors{}
	return nil
}

// Cancel descarta todo sin confirmar (botón cancelar o click en el backdrop).
func (f *Form) Cancel() {
	f.mode = FormClosed
	f.target = ""
	f.values = DefaultDraft()
	f.errs = FieldErrors{}
}

func (f *Form) Mode() FormMode { return f.mode }

// Set actualiza un campo con el valor crudo del input y limpia su error.
// age no numérico => 0 (lo rechaza la validación).
func (f *Form) Set(field Field, value string) {
	switch field {
	case FieldName:
		f.values.Name = value
	case FieldSpecies:
		f.values.Species = Species(value)
	case FieldAge:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			n = 0
		}
		f.values.Age = n
	case FieldPersonality:
		f.values.Personality = Personality(value)
	default:
		return
	}
	delete(f.errs, field)
}

// Validate corre las reglas sin emitir nada.
func (f *Form) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.values.Name) == "" {
		errs[FieldName] = requiredField(FieldName, "Name is required")
	}
	if f.values.Age <= 0 {
		errs[FieldAge] = invalidRange(FieldAge, "Age must be greater than 0")
	}
	if !govalidator.IsIn(string(f.values.Species), speciesChoices...) {
		errs[FieldSpecies] = invalidChoice(FieldSpecies, "Choose a species from the list")
	}
	if !govalidator.IsIn(string(f.values.Personality), personalityChoices...) {
		errs[FieldPersonality] = invalidChoice(FieldPersonality, "Choose a personality from the list")
	}

	return errs
}

// Submit valida de forma síncrona. Con errores devuelve FieldErrors y el modal queda abierto;
// sin errores devuelve la Submission. No cierra el modal: lo cierra el page controller
// al arrancar la mutación.
func (f *Form) Submit() (Submission, error) {
	if f.mode == FormClosed {
		return Submission{}, ErrFormClosed
	}

	errs := f.Validate()
	f.errs = errs
	if len(errs) > 0 {
		return Submission{}, errs
	}

	d := f.values
	d.Name = strings.TrimSpace(d.Name)

	s := Submission{Draft: d}
	if f.mode == FormEdit {
		s.ID = f.target
	}
	return s, nil
}

// State copia el estado actual.
func (f *Form) State() FormState {
	errs := make(FieldErrors, len(f.errs))
	for k, v := range f.errs {
		errs[k] = v
	}
	return FormState{
		Mode:      f.mode,
		EditingID: f.target,
		Values:    f.values,
		Errors:    errs,
	}
}

var (
	speciesChoices     = toStrings(AllSpecies)
	personalityChoices = toStrings(AllPersonalities)
)

func toStrings[T ~string](in []T) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, string(v))
	}
	return out
}
