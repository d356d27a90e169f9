package page

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const DefaultSessionTTL = 30 * time.Minute

// maxSweepInterval acota cada cuánto se recorre el mapa buscando sesiones vencidas.
const maxSweepInterval = time.Minute

// Session es el estado de página de un navegador.
type Session struct {
	ID          string
	Controller  *Controller
	Celebration *Celebration

	lastSeen time.Time
	acted    atomic.Bool
}

// MarkActed indica que el próximo GET es el redirect de un POST que ya dejó el
// estado al día.
func (s *Session) MarkActed() { s.acted.Store(true) }

// TakeActed consume la marca de MarkActed.
func (s *Session) TakeActed() bool { return s.acted.Swap(false) }

// Factory construye el controller de una sesión nueva con su efecto de celebración.
type Factory func(effects Effects) *Controller

// Sessions mapea id de cookie -> Session. Las sesiones inactivas expiran tras ttl.
// El barrido completo corre como mucho una vez por sweepEvery.
type Sessions struct {
	mu         sync.Mutex
	byID       map[string]*Session
	ttl        time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	now        func() time.Time
	factory    Factory
}

func NewSessions(ttl time.Duration, factory Factory) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		byID:       map[string]*Session{},
		ttl:        ttl,
		sweepEvery: min(ttl, maxSweepInterval),
		now:        time.Now,
		factory:    factory,
	}
}

// Get devuelve la sesión id si existe y no expiró; si no, crea una nueva.
// created=true indica que el caller debe setear la cookie.
func (s *Sessions) Get(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.sweepEvery {
		s.sweep(now)
		s.lastSweep = now
	}

	id = strings.TrimSpace(id)
	if sess, ok := s.byID[id]; ok && id != "" {
		if !s.expired(sess, now) {
			sess.lastSeen = now
			return sess, false
		}
		delete(s.byID, id)
	}

	cel := &Celebration{}
	sess = &Session{
		ID:          uuid.NewString(),
		Controller:  s.factory(cel),
		Celebration: cel,
		lastSeen:    now,
	}
	s.byID[sess.ID] = sess
	return sess, true
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *Sessions) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.lastSeen) > s.ttl
}

// sweep requiere s.mu.
func (s *Sessions) sweep(now time.Time) {
	for id, sess := range s.byID {
		if s.expired(sess, now) {
			delete(s.byID, id)
		}
	}
}
