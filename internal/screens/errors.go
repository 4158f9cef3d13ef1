package screens

import (
	"errors"
	"fmt"

	"airide/internal/api"
	"airide/internal/config"
)

var (
	// ErrNotSignedIn is returned by actions that need a signed-in user.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrNotRegistered is returned by driver actions before registration.
	ErrNotRegistered = errors.New("no driver registered on this device")
)

// ValidationError is an input problem found before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// Message turns err into the short inline text a screen shows.
func Message(err error) string {
	var (
		ve *ValidationError
		se *api.StatusError
		te *api.TransportError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, api.ErrNotConfigured):
		return "Backend URL " + config.NotSetLabel
	case errors.As(err, &se):
		return se.Error()
	case errors.As(err, &te):
		return te.Op + " failed: network error"
	case errors.Is(err, ErrNotSignedIn):
		return "Please sign in first"
	case errors.Is(err, ErrNotRegistered):
		return "Register as a driver first"
	default:
		return err.Error()
	}
}
