package store

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

const themeKey = "theme"

// ThemeStore is the slice of local key-value storage the store needs for the
// theme preference.
type ThemeStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// SessionSource exposes the external auth session: the user signed in right
// now plus a subscription for session changes. A failed or absent session
// yields a nil user.
type SessionSource interface {
	CurrentUser() *models.User
	OnChange(fn func(*models.User)) (unsubscribe func())
}

// Store holds the latest session State and serializes every mutation through
// Dispatch. It is constructed by the composition root and passed by
// reference to consumers; there is no package-level instance.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int

	log       *zap.Logger
	theme     ThemeStore
	unsubAuth func()
}

// Options configures a Store. Theme and Session are optional; Logger falls
// back to a no-op logger.
type Options struct {
	Theme   ThemeStore
	Session SessionSource
	Logger  *zap.Logger
}

// New builds a Store seeded from the theme preference and the current auth
// session, and subscribes to auth-state changes for the store's lifetime.
func New(opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Store{
		state: NewState(),
		subs:  make(map[int]func(State)),
		log:   log,
		theme: opts.Theme,
	}

	if opts.Theme != nil {
		if theme, ok := opts.Theme.Get(themeKey); ok {
			s.state.Theme = theme
		}
	}
	if opts.Session != nil {
		s.state.User = opts.Session.CurrentUser()
		s.unsubAuth = opts.Session.OnChange(func(u *models.User) {
			s.Dispatch(SetUser{User: u})
		})
	}

	return s
}

// Dispatch applies the reducer to the current state strictly in call order
// and notifies subscribers with the resulting snapshot. Subscribers are
// invoked synchronously and must not dispatch from within the callback.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	s.log.Debug("action dispatched", zap.String("action", fmt.Sprintf("%T", a)))

	if t, ok := a.(SetTheme); ok && s.theme != nil {
		s.theme.Set(themeKey, t.Theme)
	}

	for _, fn := range s.subs {
		fn(s.state)
	}
}

// State returns the current state snapshot
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every dispatch. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Close tears down the auth-state subscription
func (s *Store) Close() {
	if s.unsubAuth != nil {
		s.unsubAuth()
		s.unsubAuth = nil
	}
}
