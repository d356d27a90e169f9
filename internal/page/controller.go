package page

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pet-adoption-web/internal/domain/pets"
	"pet-adoption-web/internal/platform/logger"
	"pet-adoption-web/internal/platform/metrics"
)

// ToastDuration es el tiempo que queda visible el mensaje de éxito.
const ToastDuration = 3 * time.Second

// Mensajes genéricos para el usuario. El detalle real va al log.
const (
	MsgLoadFailed   = "Failed to load pets. Please try again."
	MsgSaveFailed   = "Failed to save pet. Please try again."
	MsgAdoptFailed  = "Failed to adopt pet. Please try again."
	MsgDeleteFailed = "Failed to delete pet. Please try again."

	MsgAdopted = "Congratulations on your new adoption! 🎉"
	MsgDeleted = "Pet has been removed from the adoption center."
)

var (
	ErrBusy           = errors.New("another action on this pet is in progress")
	ErrNoConfirmation = errors.New("no pending confirmation")
)

type Confirmation struct {
	Show     bool
	TargetID pets.ID
	Message  string
}

type Toast struct {
	Show    bool
	Message string
}

// State es la foto que consume la vista.
type State struct {
	Loaded  bool // hubo al menos un fetch
	Loading bool
	Error   string

	Pets []pets.PetRecord // ya filtradas

	MoodFilter    *pets.Mood
	AdoptedFilter pets.AdoptedFilter

	Form         pets.FormState
	Confirmation Confirmation
	Toast        Toast
}

// ActiveMood devuelve el filtro de ánimo como string ("" = todos).
func (s State) ActiveMood() string {
	if s.MoodFilter == nil {
		return ""
	}
	return string(*s.MoodFilter)
}

// AfterFunc programa f tras d. Se inyecta para poder testear el auto-cierre del toast.
type AfterFunc func(d time.Duration, f func())

type Options struct {
	API     pets.API
	Effects Effects
	After   AfterFunc

	Logger  logger.Logger
	Metrics metrics.Recorder
}

// Controller orquesta fetch -> filtro -> render y las mutaciones.
// El lock protege solo el estado: las llamadas de red se hacen sin lock.
type Controller struct {
	api     pets.API
	effects Effects
	after   AfterFunc
	log     logger.Logger
	metrics metrics.Recorder

	mu       sync.Mutex
	loaded   bool
	loading  bool
	errMsg   string
	pets     []pets.PetRecord
	mood     *pets.Mood
	adopted  pets.AdoptedFilter
	form     *pets.Form
	confirm  Confirmation
	toast    Toast
	inflight map[pets.ID]struct{}
}

func NewController(opts Options) *Controller {
	eff := opts.Effects
	if eff == nil {
		eff = NoEffects{}
	}
	after := opts.After
	if after == nil {
		after = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	rec := opts.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}

	return &Controller{
		api:      opts.API,
		effects:  eff,
		after:    after,
		log:      log.With(map[string]any{"component": "page"}),
		metrics:  rec,
		pets:     []pets.PetRecord{},
		adopted:  pets.AdoptedAll,
		form:     pets.NewForm(),
		inflight: map[pets.ID]struct{}{},
	}
}

// Snapshot copia el estado actual.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := make([]pets.PetRecord, len(c.pets))
	copy(list, c.pets)

	var mood *pets.Mood
	if c.mood != nil {
		m := *c.mood
		mood = &m
	}

	return State{
		Loaded:        c.loaded,
		Loading:       c.loading,
		Error:         c.errMsg,
		Pets:          list,
		MoodFilter:    mood,
		AdoptedFilter: c.adopted,
		Form:          c.form.State(),
		Confirmation:  c.confirm,
		Toast:         c.toast,
	}
}

// ---------- refresh ----------

// FetchPets trae la lista completa y aplica los filtros actuales en memoria.
// Si falla, la lista previa queda como estaba.
func (c *Controller) FetchPets(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	all, err := c.api.ListAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	c.loaded = true
	if err != nil {
		c.errMsg = MsgLoadFailed
		c.log.Error("fetch pets failed", map[string]any{"error": err})
		c.metrics.RecordUIAction("fetch", metrics.OutcomeError)
		return err
	}

	c.pets = pets.ApplyFilters(all, c.mood, c.adopted)
	c.metrics.RecordUIAction("fetch", metrics.OutcomeOK)
	return nil
}

// SetMoodFilter cambia el filtro (nil = todos) y vuelve a cargar.
func (c *Controller) SetMoodFilter(ctx context.Context, mood *pets.Mood) error {
	c.mu.Lock()
	c.mood = mood
	c.mu.Unlock()
	return c.FetchPets(ctx)
}

// SetAdoptedFilter cambia el filtro tri-estado y vuelve a cargar.
func (c *Controller) SetAdoptedFilter(ctx context.Context, f pets.AdoptedFilter) error {
	c.mu.Lock()
	c.adopted = f
	c.mu.Unlock()
	return c.FetchPets(ctx)
}

// SetFilters cambia ambos filtros con un solo fetch.
func (c *Controller) SetFilters(ctx context.Context, mood *pets.Mood, f pets.AdoptedFilter) error {
	c.mu.Lock()
	c.mood = mood
	c.adopted = f
	c.mu.Unlock()
	return c.FetchPets(ctx)
}

// ---------- formulario ----------

func (c *Controller) OpenAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.OpenAdd()
}

// OpenEdit abre el modal para id. Usa el registro ya cargado y, si no está
// en la lista filtrada, lo pide al backend.
func (c *Controller) OpenEdit(ctx context.Context, id pets.ID) error {
	c.mu.Lock()
	rec, ok := c.find(id)
	c.mu.Unlock()

	if !ok {
		fetched, err := c.api.GetByID(ctx, id)
		if err != nil {
			c.log.Warn("open edit: get pet failed", map[string]any{"pet_id": id, "error": err})
			c.mu.Lock()
			c.errMsg = MsgLoadFailed
			c.mu.Unlock()
			return err
		}
		rec = fetched
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.OpenEdit(rec)
}

// UpdateField pasa un valor crudo del input al formulario abierto.
func (c *Controller) UpdateField(field pets.Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form.Mode() == pets.FormClosed {
		return
	}
	c.form.Set(field, value)
}

func (c *Controller) CancelForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Cancel()
}

// SubmitForm valida y, si pasa, corre create o update según el modo.
// Con errores de validación no hay llamada de red y el modal queda abierto.
func (c *Controller) SubmitForm(ctx context.Context) error {
	c.mu.Lock()
	sub, err := c.form.Submit()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if sub.IsUpdate() {
		if !c.acquire(sub.ID) {
			c.mu.Unlock()
			return ErrBusy
		}
		defer c.release(sub.ID)
	}
	c.beginMutation()
	c.mu.Unlock()

	if sub.IsUpdate() {
		_, err = c.api.Update(ctx, sub.ID, sub.Draft)
		return c.finishMutation(ctx, "update", err, MsgSaveFailed, fmt.Sprintf("%s has been updated!", sub.Draft.Name))
	}
	_, err = c.api.Create(ctx, sub.Draft)
	return c.finishMutation(ctx, "create", err, MsgSaveFailed, fmt.Sprintf("%s has been added!", sub.Draft.Name))
}

// ---------- adopt / delete ----------

// Adopt corre la mutación de adopción y dispara el efecto de celebración.
func (c *Controller) Adopt(ctx context.Context, id pets.ID) error {
	c.mu.Lock()
	if !c.acquire(id) {
		c.mu.Unlock()
		return ErrBusy
	}
	defer c.release(id)
	c.beginMutation()
	c.mu.Unlock()

	adopted, err := c.api.Adopt(ctx, id)
	if err == nil {
		c.effects.Celebrate(adopted)
	}
	return c.finishMutation(ctx, "adopt", err, MsgAdoptFailed, MsgAdopted)
}

// RequestDelete nunca borra: abre la confirmación con el nombre de la mascota.
func (c *Controller) RequestDelete(id pets.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := "this pet"
	if rec, ok := c.find(id); ok && rec.Name != "" {
		name = rec.Name
	}
	c.confirm = Confirmation{
		Show:     true,
		TargetID: id,
		Message:  fmt.Sprintf("Are you sure you want to remove %s from the adoption center?", name),
	}
}

// CancelDelete descarta la confirmación sin efectos.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirm = Confirmation{}
}

// ConfirmDelete cierra la confirmación y corre la mutación de borrado.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if !c.confirm.Show {
		c.mu.Unlock()
		return ErrNoConfirmation
	}
	id := c.confirm.TargetID
	c.confirm = Confirmation{}
	if !c.acquire(id) {
		c.mu.Unlock()
		return ErrBusy
	}
	defer c.release(id)
	c.beginMutation()
	c.mu.Unlock()

	err := c.api.Delete(ctx, id)
	return c.finishMutation(ctx, "delete", err, MsgDeleteFailed, MsgDeleted)
}

// ---------- internos ----------

// beginMutation: loading=true y cierra cualquier modal. Requiere c.mu.
func (c *Controller) beginMutation() {
	c.loading = true
	c.form.Cancel()
}

// finishMutation aplica el resultado: éxito => toast + refetch; fallo => error y sin refetch.
func (c *Controller) finishMutation(ctx context.Context, action string, err error, failMsg, okMsg string) error {
	if err != nil {
		c.mu.Lock()
		c.errMsg = failMsg
		c.loading = false
		c.mu.Unlock()

		c.log.Error("mutation failed", map[string]any{"action": action, "error": err})
		c.metrics.RecordUIAction(action, metrics.OutcomeError)
		return err
	}

	c.metrics.RecordUIAction(action, metrics.OutcomeOK)
	c.showToast(okMsg)

	// El refetch fallido ya deja su propio mensaje; la mutación sí se hizo.
	if ferr := c.FetchPets(ctx); ferr != nil {
		c.log.Warn("refetch after mutation failed", map[string]any{"action": action, "error": ferr})
	}
	return nil
}

// showToast muestra el mensaje y agenda el cierre. No se cancela si llega otro toast:
// el último que escribe gana.
func (c *Controller) showToast(msg string) {
	c.mu.Lock()
	c.toast = Toast{Show: true, Message: msg}
	c.mu.Unlock()

	c.after(ToastDuration, func() {
		c.mu.Lock()
		c.toast = Toast{}
		c.mu.Unlock()
	})
}

// find busca en la lista cargada. Requiere c.mu.
func (c *Controller) find(id pets.ID) (pets.PetRecord, bool) {
	for _, p := range c.pets {
		if p.ID == id {
			return p, true
		}
	}
	return pets.PetRecord{}, false
}

// acquire marca id en vuelo. Requiere c.mu.
func (c *Controller) acquire(id pets.ID) bool {
	if _, busy := c.inflight[id]; busy {
		return false
	}
	c.inflight[id] = struct{}{}
	return true
}

// release se llama sin c.mu tomado.
func (c *Controller) release(id pets.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
}
