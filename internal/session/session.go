// Package session holds the in-memory authentication state of a running
// client: whether someone is logged in, who, with which role, and the bearer
// token the backend issued.
//
// A Session is constructed explicitly and passed to whatever needs it. It is
// never persisted; a new process always starts logged out.
package session

import "sync"

// Role is the account type returned by the backend.
type Role string

const (
	RoleCoach  Role = "Coach"
	RoleSkater Role = "Skater"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleCoach || r == RoleSkater
}

func (r Role) String() string {
	return string(r)
}

// User identifies the logged-in account.
type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	CoachID  string `json:"coachId,omitempty"`
	SkaterID string `json:"skaterId,omitempty"`
}

// State is a point-in-time copy of a Session.
type State struct {
	Authenticated bool
	User          *User
	Token         string
}

// Session is the single source of truth for who is logged in.
type Session struct {
	mu            sync.RWMutex
	authenticated bool
	user          *User
	token         string

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(State)
}

// New returns an empty, logged-out session.
func New() *Session {
	return &Session{subs: make(map[int]func(State))}
}

// Login stores user and token. Both become visible together.
func (s *Session) Login(user User, token string) {
	u := user
	s.mu.Lock()
	s.authenticated = true
	s.user = &u
	s.token = token
	st := s.stateLocked()
	s.mu.Unlock()

	s.notify(st)
}

// Logout clears the session. Calling it while logged out is a no-op apart
// from notifying subscribers.
func (s *Session) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.user = nil
	s.token = ""
	st := s.stateLocked()
	s.mu.Unlock()

	s.notify(st)
}

// Snapshot returns a copy of the current state. The returned User is a copy
// and may be modified freely.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// stateLocked copies the current state. s.mu must be held.
func (s *Session) stateLocked() State {
	st := State{Authenticated: s.authenticated, Token: s.token}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Token returns the current bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe registers fn to be called with the new state after every Login
// and Logout. The returned function removes the subscription.
func (s *Session) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// notify delivers st, the state captured by the change that triggered it
func (s *Session) notify(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
