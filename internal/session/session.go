package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/pages"
)

const (
	CookieName = "admin_session"

	DefaultMaxSessions = 1000
)

// Workspace is the set of page controllers owned by one browser session.
type Workspace struct {
	Customers    *pages.CustomersPage
	CustomerForm *pages.CustomerForm
	Products     *pages.ProductsPage
	Orders       *pages.OrdersPage
}

// API groups the remote resources a workspace is built on.
type API struct {
	Customers pages.CustomerAPI
	Products  pages.ProductAPI
	Orders    pages.OrderAPI
}

func NewWorkspace(api API) *Workspace {
	return &Workspace{
		Customers:    pages.NewCustomersPage(api.Customers),
		CustomerForm: pages.NewCustomerForm(api.Customers),
		Products:     pages.NewProductsPage(api.Products),
		Orders:       pages.NewOrdersPage(api.Orders, api.Products, api.Customers),
	}
}

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

type Store struct {
	api    API
	ttl    time.Duration
	max    int
	secure bool
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type Option func(*Store)

func WithSecureCookie(secure bool) Option {
	return func(s *Store) { s.secure = secure }
}

// WithMaxSessions bounds the number of live sessions. Starting a session
// beyond the bound evicts the least recently seen one. n <= 0 means no bound.
func WithMaxSessions(n int) Option {
	return func(s *Store) { s.max = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(api API, ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		api:      api,
		ttl:      ttl,
		max:      DefaultMaxSessions,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workspace returns the caller's workspace, starting a new session and
// setting the cookie when the request has none or it has expired.
func (s *Store) Workspace(c echo.Context) *Workspace {
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		if ws, ok := s.touch(ck.Value); ok {
			return ws
		}
	}

	id := uuid.NewString()
	ws := NewWorkspace(s.api)

	s.mu.Lock()
	if s.max > 0 && len(s.sessions) >= s.max {
		s.evictOldestLocked()
	}
	s.sessions[id] = &entry{ws: ws, lastSeen: s.now()}
	s.mu.Unlock()

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	logging.FromContext(c.Request().Context()).Debug("session_started", "session_id", id)
	return ws
}

func (s *Store) touch(id string) (*Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.ws, true
}

func (s *Store) evictOldestLocked() {
	var (
		oldest string
		seen   time.Time
	)
	for id, e := range s.sessions {
		if oldest == "" || e.lastSeen.Before(seen) {
			oldest, seen = id, e.lastSeen
		}
	}
	delete(s.sessions, oldest)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions until ctx is done.
func (s *Store) Run(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}
	interval := s.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}

	l := logging.FromContext(ctx).With("component", "session_janitor")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				l.Info("sessions_expired", "count", n)
			}
		}
	}
}
