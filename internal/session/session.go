package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventKind string

const (
	EventLogin  EventKind = "login"
	EventLogout EventKind = "logout"
)

// Event is delivered to subscribers after a session changes state.
// PreviousID is the id a login replaced.
type Event struct {
	Kind       EventKind
	SessionID  string
	PreviousID string
	User       *domain.User
}

type Listener func(ctx context.Context, ev Event)

// Manager hands out accessors bound to a session id and notifies listeners
// about logins and logouts.
type Manager struct {
	store Store
	log   *zap.Logger

	mu        sync.RWMutex
	listeners []Listener
}

func NewManager(store Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, log: log}
}

func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

func (m *Manager) notify(ctx context.Context, ev Event) {
	m.mu.RLock()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.RUnlock()
	for _, l := range listeners {
		l(ctx, ev)
	}
}

// Accessor returns the accessor for the session identified by id.
func (m *Manager) Accessor(id string) *Accessor {
	return &Accessor{id: id, m: m}
}

// Accessor reads and writes one session. Apart from the id it holds no state:
// every call goes to the store, so decisions are never cached across requests.
// An Accessor belongs to a single request.
type Accessor struct {
	id string
	m  *Manager
}

func (a *Accessor) ID() string { return a.id }

func (a *Accessor) load(ctx context.Context) Values {
	values, err := a.m.store.Load(ctx, a.id)
	if err != nil {
		a.m.log.Error("session load failed", zap.String("session_id", a.id), zap.Error(err))
		return Values{}
	}
	return values
}

// IsAuthenticated is true iff both a token and a user profile are stored.
// Token expiry is left to the backend.
func (a *Accessor) IsAuthenticated(ctx context.Context) bool {
	return a.load(ctx).complete()
}

func (a *Accessor) Token(ctx context.Context) string {
	return a.load(ctx)[KeyToken]
}

// User returns the stored profile, or nil when absent or unreadable.
func (a *Accessor) User(ctx context.Context) *domain.User {
	raw := a.load(ctx)[KeyUser]
	if raw == "" {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		a.m.log.Warn("stored user profile is malformed", zap.String("session_id", a.id), zap.Error(err))
		return nil
	}
	return &u
}

// Login persists token and user in a single write under a freshly issued
// session id and drops the id the browser came in with. ID reports the new
// id afterwards.
func (a *Accessor) Login(ctx context.Context, token string, user *domain.User) error {
	if token == "" || user == nil {
		return ErrIncomplete
	}
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	id := uuid.NewString()
	if err := a.m.store.Save(ctx, id, Values{KeyToken: token, KeyUser: string(profile)}); err != nil {
		return err
	}
	prev := a.id
	if err := a.m.store.Delete(ctx, prev); err != nil {
		a.m.log.Warn("failed to drop replaced session", zap.String("session_id", prev), zap.Error(err))
	}
	a.id = id
	a.m.notify(ctx, Event{Kind: EventLogin, SessionID: id, PreviousID: prev, User: user})
	return nil
}

// Logout clears token and user together.
func (a *Accessor) Logout(ctx context.Context) error {
	user := a.User(ctx)
	if err := a.m.store.Delete(ctx, a.id); err != nil {
		return err
	}
	a.m.notify(ctx, Event{Kind: EventLogout, SessionID: a.id, User: user})
	return nil
}

type ctxKey struct{}

func NewContext(ctx context.Context, a *Accessor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

func FromContext(ctx context.Context) (*Accessor, bool) {
	a, ok := ctx.Value(ctxKey{}).(*Accessor)
	return a, ok && a != nil
}
