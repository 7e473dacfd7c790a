// Package session models what a client is looking at and persists logged-in sessions.
package session

import (
	"errors"
	"fmt"
)

// State is the screen a client is on
type State string

const (
	LoggedOut  State = "logged_out"
	LoginForm  State = "login_form"
	SignupForm State = "signup_form"
	LoggedIn   State = "logged_in"
)

// Event drives a transition between states
type Event string

const (
	ShowLogin         Event = "show_login"
	ShowSignup        Event = "show_signup"
	LoginSucceeded    Event = "login_succeeded"
	RegisterSucceeded Event = "register_succeeded"
	LogoutRequested   Event = "logout_requested"
)

var ErrInvalidTransition = errors.New("invalid session transition")

var transitions = map[State]map[Event]State{
	LoggedOut: {
		ShowLogin:         LoginForm,
		ShowSignup:        SignupForm,
		LoginSucceeded:    LoggedIn,
		RegisterSucceeded: LoginForm,
	},
	LoginForm: {
		ShowSignup:     SignupForm,
		LoginSucceeded: LoggedIn,
	},
	SignupForm: {
		ShowLogin:         LoginForm,
		RegisterSucceeded: LoginForm,
	},
	LoggedIn: {
		LogoutRequested: LoggedOut,
	},
}

// Transition returns the state reached from s on e
func Transition(s State, e Event) (State, error) {
	next, ok := transitions[s][e]
	if !ok {
		return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
	}
	return next, nil
}
