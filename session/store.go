// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/danielhkuo/exam-archive/models"
)

var ErrNoUser = errors.New("no user information received")

const defaultLoginMessage = "Error al iniciar sesión"

// Subscription is a registered auth-state listener
type Subscription interface {
	Unsubscribe()
}

// Remote is the authentication service the store follows
type Remote interface {
	GetSession(ctx context.Context) (*models.Session, error)
	OnAuthStateChange(fn func(event models.AuthEvent, s *models.Session)) Subscription
	SignInWithPassword(ctx context.Context, email, password string) (*models.User, error)
	// SignOut must drop any locally held credentials even when it fails
	SignOut(ctx context.Context) error
}

type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity is the signed-in admin
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func identityOf(u models.User) Identity {
	name := u.Name
	if name == "" {
		name = models.DefaultAdminName
	}
	return Identity{ID: u.ID, Email: u.Email, Name: name}
}

// Store tracks the current admin. After Initialize, the remote's
// auth-state stream is the only writer, except for Logout's failure path.
type Store struct {
	remote Remote

	mu        sync.RWMutex
	state     State
	identity  *Identity
	heard     bool // a stream event arrived
	released  bool
	observers []func(State, *Identity)
}

func NewStore(remote Remote) *Store {
	return &Store{remote: remote}
}

// Initialize subscribes to auth changes and resolves the existing session.
// The returned release func unsubscribes; calling it more than once is safe.
func (s *Store) Initialize(ctx context.Context) (release func()) {
	sub := s.remote.OnAuthStateChange(func(event models.AuthEvent, sess *models.Session) {
		s.apply(sess, sourceEvent)
	})

	var once sync.Once
	release = func() {
		once.Do(func() {
			s.mu.Lock()
			s.released = true
			s.mu.Unlock()
			sub.Unsubscribe()
		})
	}

	sess, err := s.remote.GetSession(ctx)
	if err != nil {
		sess = nil
	}
	s.apply(sess, sourceLookup)

	return release
}

// Login signs in through the remote. State is updated by the resulting
// auth event, not here.
func (s *Store) Login(ctx context.Context, email, password string) (Identity, error) {
	user, err := s.remote.SignInWithPassword(ctx, email, password)
	if err != nil {
		if !hasUpstreamMessage(err) {
			return Identity{}, errors.New(defaultLoginMessage)
		}
		return Identity{}, err
	}
	if user == nil {
		return Identity{}, ErrNoUser
	}
	return identityOf(*user), nil
}

// upstreamError is implemented by remote errors that know whether the
// service sent a message of its own
type upstreamError interface {
	UpstreamMessage() string
}

func hasUpstreamMessage(err error) bool {
	var ue upstreamError
	if errors.As(err, &ue) {
		return ue.UpstreamMessage() != ""
	}
	return err.Error() != ""
}

// Logout signs out through the remote. If that fails the local state is
// cleared anyway and the error is returned.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.remote.SignOut(ctx); err != nil {
		s.apply(nil, sourceLocal)
		return err
	}
	return nil
}

// Current returns the state and, when authenticated, a copy of the identity
func (s *Store) Current() (State, *Identity) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return s.state, nil
	}
	id := *s.identity
	return s.state, &id
}

// IsAdmin is true while someone is signed in
func (s *Store) IsAdmin() bool {
	state, _ := s.Current()
	return state == StateAuthenticated
}

// Loading is true until the first session lookup or event completes
func (s *Store) Loading() bool {
	state, _ := s.Current()
	return state == StateUnknown
}

// Observe registers fn to run after every state change
func (s *Store) Observe(fn func(State, *Identity)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

type source int

const (
	sourceLookup source = iota
	sourceEvent
	sourceLocal
)

func (s *Store) apply(sess *models.Session, from source) {
	s.mu.Lock()
	switch from {
	case sourceLookup:
		// An event that arrived meanwhile is newer than this lookup
		if s.heard || s.released {
			s.mu.Unlock()
			return
		}
	case sourceEvent:
		if s.released {
			s.mu.Unlock()
			return
		}
		s.heard = true
	}

	if sess != nil {
		id := identityOf(sess.User)
		s.state, s.identity = StateAuthenticated, &id
	} else {
		s.state, s.identity = StateAnonymous, nil
	}
	state := s.state
	var identity *Identity
	if s.identity != nil {
		id := *s.identity
		identity = &id
	}
	observers := append([]func(State, *Identity){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(state, identity)
	}
}
