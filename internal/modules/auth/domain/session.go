package domain

import "strings"

const (
	RolePatient = "PATIENT"
	RoleDoctor  = "DOCTOR"
	RoleAdmin   = "ADMIN"
)

// Messages surfaced to the user when the backend gives no better one.
const (
	MsgSessionExpired = "Session expired"
	MsgLoginFailed    = "Login failed"
)

type User struct {
	UserID int
	Email  string
	Name   string
	Role   string
}

// HasRole matches on substrings because the backend reports composite role
// strings such as "ROLE_PATIENT,ROLE_ADMIN".
func (u User) HasRole(role string) bool {
	return strings.Contains(u.Role, role)
}

type Phase int

const (
	PhaseUnauthenticated Phase = iota
	PhaseInitializing
	PhaseAuthenticated
	PhaseAuthFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAuthFailed:
		return "auth-failed"
	}
	return "unauthenticated"
}

// State is the session store's value. Transitions are pure; all I/O lives in
// the service and usecase layers.
type State struct {
	User  User
	Token string
	Phase Phase
	Err   string
}

// Initial is the process-start state: loading until a restore attempt
// resolves one way or the other.
func Initial() State {
	return State{Phase: PhaseInitializing}
}

// BeginLoading marks a new init/login attempt. Identity is kept until the
// attempt resolves; a previous error is cleared.
func (s State) BeginLoading() State {
	s.Phase = PhaseInitializing
	s.Err = ""
	return s
}

// Authenticate resolves an attempt with a verified identity.
func (s State) Authenticate(user User, token string) State {
	return State{User: user, Token: token, Phase: PhaseAuthenticated}
}

// Fail resolves an attempt with an error message. Identity and token are
// dropped; the state behaves as unauthenticated for routing purposes.
func (s State) Fail(msg string) State {
	return State{Phase: PhaseAuthFailed, Err: msg}
}

// Reset returns the clean unauthenticated state (logout, or a restore with no
// stored token).
func (s State) Reset() State {
	return State{Phase: PhaseUnauthenticated}
}

// StopLoading clears the loading flag without recording an error. Used when a
// credential exchange fails and the error is surfaced to the caller instead
// of the store.
func (s State) StopLoading() State {
	return State{Phase: PhaseUnauthenticated}
}

func (s State) Authenticated() bool {
	return s.Phase == PhaseAuthenticated
}

func (s State) Loading() bool {
	return s.Phase == PhaseInitializing
}
