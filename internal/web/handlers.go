// Package web sirve la UI de adopción renderizada en servidor.
// Cada POST modifica el controller de la sesión y redirige a "/" (PRG).
package web

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"pet-adoption-web/internal/domain/pets"
	"pet-adoption-web/internal/page"
	"pet-adoption-web/internal/platform/logger"
	"pet-adoption-web/internal/web/templates"

	"github.com/go-chi/chi/v5"
)

const SessionCookie = "petsweb_session"

// Handler tiene las dependencias de la UI.
type Handler struct {
	sessions  *page.Sessions
	templates map[string]*template.Template
	log       logger.Logger
	secure    bool
}

type Options struct {
	Sessions *page.Sessions
	Logger   logger.Logger

	// SecureCookie marca la cookie de sesión como Secure (solo https).
	SecureCookie bool
}

// New parsea los templates embebidos. Entra en pánico si alguno no compila.
func New(opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	shared := []string{"base.html"}
	partials, err := fs.Glob(templates.FS, "partials/*.html")
	if err != nil {
		panic(err)
	}
	shared = append(shared, partials...)

	tmplMap := make(map[string]*template.Template)
	for _, name := range []string{"home.html"} {
		files := make([]string, 0, len(shared)+1)
		files = append(files, shared...)
		files = append(files, name)

		tmplMap[name] = template.Must(template.New(name).ParseFS(templates.FS, files...))
	}

	return &Handler{
		sessions:  opts.Sessions,
		templates: tmplMap,
		log:       log.With(map[string]any{"component": "web"}),
		secure:    opts.SecureCookie,
	}
}

// Routes registra las rutas de la UI en r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Home)

	r.Post("/filters", h.SetFilters)

	r.Route("/form", func(fr chi.Router) {
		fr.Post("/add", h.OpenAdd)
		fr.Post("/edit/{petID}", h.OpenEdit)
		fr.Post("/cancel", h.CancelForm)
		fr.Post("/submit", h.SubmitForm)
	})

	r.Post("/pets/{petID}/adopt", h.Adopt)
	r.Post("/pets/{petID}/delete", h.RequestDelete)

	r.Post("/confirm/delete", h.ConfirmDelete)
	r.Post("/confirm/cancel", h.CancelDelete)
}

// ---------- GET ----------

// Home renderiza la página. Cada visita trae la lista de nuevo, salvo el redirect
// de un POST: ese ya refrescó (o dejó su error) y no hay que pisarlo.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if !sess.TakeActed() || !sess.Controller.Snapshot().Loaded {
		// El error ya queda en el estado; se muestra en el render.
		_ = sess.Controller.FetchPets(r.Context())
	}
	h.render(w, http.StatusOK, sess)
}

// ---------- filtros ----------

func (h *Handler) SetFilters(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	mood, ok := pets.ParseMood(r.PostFormValue("mood"))
	if !ok {
		h.log.Warn("unknown mood filter", map[string]any{"mood": r.PostFormValue("mood")})
	}
	adopted := pets.ParseAdoptedFilter(r.PostFormValue("adopted"))

	_ = sess.Controller.SetFilters(r.Context(), mood, adopted)
	redirectHome(w, r, sess)
}

// ---------- formulario ----------

func (h *Handler) OpenAdd(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.Controller.OpenAdd()
	redirectHome(w, r, sess)
}

func (h *Handler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	id := pets.ID(chi.URLParam(r, "petID"))

	if err := sess.Controller.OpenEdit(r.Context(), id); err != nil {
		h.logAction("open edit", id, err)
	}
	redirectHome(w, r, sess)
}

func (h *Handler) CancelForm(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.Controller.CancelForm()
	redirectHome(w, r, sess)
}

// SubmitForm copia los campos posteados al formulario y lo envía.
// Si la validación falla se re-renderiza con 422 y los errores inline.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	ctrl := sess.Controller
	for _, f := range []pets.Field{pets.FieldName, pets.FieldSpecies, pets.FieldAge, pets.FieldPersonality} {
		if vals, ok := r.PostForm[string(f)]; ok && len(vals) > 0 {
			ctrl.UpdateField(f, vals[0])
		}
	}

	err := ctrl.SubmitForm(r.Context())
	var fieldErrs pets.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		h.render(w, http.StatusUnprocessableEntity, sess)
		return
	case err != nil:
		h.logAction("submit form", "", err)
	}
	redirectHome(w, r, sess)
}

// ---------- adopt / delete ----------

func (h *Handler) Adopt(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	id := pets.ID(chi.URLParam(r, "petID"))

	if err := sess.Controller.Adopt(r.Context(), id); err != nil {
		h.logAction("adopt", id, err)
	}
	redirectHome(w, r, sess)
}

func (h *Handler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.Controller.RequestDelete(pets.ID(chi.URLParam(r, "petID")))
	redirectHome(w, r, sess)
}

func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if err := sess.Controller.ConfirmDelete(r.Context()); err != nil {
		h.logAction("delete", "", err)
	}
	redirectHome(w, r, sess)
}

func (h *Handler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.Controller.CancelDelete()
	redirectHome(w, r, sess)
}

// ---------- helpers ----------

// session recupera (o crea) la sesión de la cookie y la renueva en la respuesta.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *page.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	sess, created := h.sessions.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// logAction deja el detalle en el log; el usuario solo ve el mensaje genérico del estado.
func (h *Handler) logAction(action string, id pets.ID, err error) {
	fields := map[string]any{"action": action, "error": err}
	if id != "" {
		fields["pet_id"] = id
	}

	switch {
	case errors.Is(err, page.ErrBusy), errors.Is(err, page.ErrNoConfirmation),
		errors.Is(err, pets.ErrReadOnly), errors.Is(err, pets.ErrFormClosed):
		h.log.Info("action ignored", fields)
	case errors.Is(err, context.Canceled):
		h.log.Debug("request canceled", fields)
	default:
		// Fallos del backend ya se loguean en el cliente.
		h.log.Debug("action failed", fields)
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, sess *page.Session) {
	tmpl, ok := h.templates["home.html"]
	if !ok {
		http.Error(w, "template home.html not found", http.StatusInternalServerError)
		return
	}

	data := buildHomeView(sess.Controller.Snapshot())
	if name, ok := sess.Celebration.Take(); ok {
		data.Celebration = celebrationView{Show: true, Name: name}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		h.log.Error("render template failed", map[string]any{"template": "home.html", "error": err})
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request, sess *page.Session) {
	sess.MarkActed()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ---------- view models ----------

type homeView struct {
	Title string
	Year  int

	Loading bool
	Error   string

	Filters      filtersView
	Cards        []cardView
	Form         formView
	Confirmation page.Confirmation
	Toast        page.Toast
	Celebration  celebrationView
}

type filtersView struct {
	AllMoods       bool
	Mood           string
	Adopted        string
	Moods          []moodOption
	AdoptedOptions []option
}

type moodOption struct {
	Value  string
	Icon   string
	Class  string
	Active bool
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type badgeView struct {
	Known bool
	Text  string
	Class string
	Icon  string
	Title string
}

type cardView struct {
	ID          string
	Name        string
	Species     string
	Image       string
	Age         string
	Personality string
	Mood        badgeView
	Adopted     bool
	AdoptedOn   string
}

type formView struct {
	Open        bool
	Title       string
	SubmitLabel string

	Name          string
	Age           string
	Species       []option
	Personalities []option

	NameError        string
	AgeError         string
	SpeciesError     string
	PersonalityError string
}

type celebrationView struct {
	Show bool
	Name string
}

func buildHomeView(st page.State) homeView {
	v := homeView{
		Title:        "Virtual Pet Adoption Center",
		Year:         time.Now().Year(),
		Loading:      st.Loading,
		Error:        st.Error,
		Confirmation: st.Confirmation,
		Toast:        st.Toast,
		Form:         buildFormView(st.Form),
	}

	active := st.ActiveMood()
	v.Filters = filtersView{
		AllMoods: active == "",
		Mood:     active,
		Adopted:  string(st.AdoptedFilter),
	}
	for _, m := range pets.AllMoods {
		style, _ := m.Style()
		v.Filters.Moods = append(v.Filters.Moods, moodOption{
			Value:  string(m),
			Icon:   style.Icon,
			Class:  style.Class,
			Active: string(m) == active,
		})
	}
	for _, f := range pets.AllAdoptedFilters {
		v.Filters.AdoptedOptions = append(v.Filters.AdoptedOptions, option{
			Value:    string(f),
			Label:    f.Label(),
			Selected: f == st.AdoptedFilter,
		})
	}

	v.Cards = make([]cardView, 0, len(st.Pets))
	for _, p := range st.Pets {
		v.Cards = append(v.Cards, buildCard(p))
	}
	return v
}

func buildCard(p pets.PetRecord) cardView {
	return cardView{
		ID:          p.ID.String(),
		Name:        p.Name,
		Species:     string(p.Species),
		Image:       p.Species.Image(),
		Age:         p.AgeLabel(),
		Personality: string(p.Personality),
		Mood:        moodBadge(p.Mood),
		Adopted:     p.Adopted,
		AdoptedOn:   p.AdoptionDateLabel(),
	}
}

// moodBadge: moods desconocidos van al badge gris con el texto tal cual.
func moodBadge(m pets.Mood) badgeView {
	style, ok := m.Style()
	if !ok {
		return badgeView{Text: string(m)}
	}
	return badgeView{
		Known: true,
		Text:  string(m),
		Class: style.Class,
		Icon:  style.Icon,
		Title: style.Description,
	}
}

func buildFormView(form pets.FormState) formView {
	v := formView{
		Open:        form.Open(),
		Title:       form.Title(),
		SubmitLabel: form.SubmitLabel(),
		Name:        form.Values.Name,
		Age:         strconv.Itoa(form.Values.Age),

		NameError:        form.Errors.Message(pets.FieldName),
		AgeError:         form.Errors.Message(pets.FieldAge),
		SpeciesError:     form.Errors.Message(pets.FieldSpecies),
		PersonalityError: form.Errors.Message(pets.FieldPersonality),
	}
	for _, s := range pets.AllSpecies {
		v.Species = append(v.Species, option{Value: string(s), Label: string(s), Selected: s == form.Values.Species})
	}
	for _, p := range pets.AllPersonalities {
		v.Personalities = append(v.Personalities, option{Value: string(p), Label: string(p), Selected: p == form.Values.Personality})
	}
	return v
}
