package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from State
		on   Event
		to   State
	}{
		{LoggedOut, ShowLogin, LoginForm},
		{LoggedOut, ShowSignup, SignupForm},
		{LoginForm, ShowSignup, SignupForm},
		{SignupForm, ShowLogin, LoginForm},
		{SignupForm, RegisterSucceeded, LoginForm},
		{LoginForm, LoginSucceeded, LoggedIn},
		{LoggedOut, LoginSucceeded, LoggedIn},
		{LoggedIn, LogoutRequested, LoggedOut},
	}
	for _, tt := range tests {
		got, err := Transition(tt.from, tt.on)
		assert.NoError(t, err, "%s on %s", tt.from, tt.on)
		assert.Equal(t, tt.to, got, "%s on %s", tt.from, tt.on)
	}
}

func TestTransition_Invalid(t *testing.T) {
	invalid := []struct {
		from State
		on   Event
	}{
		{LoggedIn, LoginSucceeded},
		{LoggedIn, ShowSignup},
		{LoggedOut, LogoutRequested},
		{SignupForm, LoginSucceeded},
		{LoginForm, RegisterSucceeded},
	}
	for _, tt := range invalid {
		got, err := Transition(tt.from, tt.on)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, tt.from, got)
	}
}
