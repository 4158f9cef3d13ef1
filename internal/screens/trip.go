package screens

import (
	"context"

	"airide/internal/models"
	"airide/internal/session"
)

// TripScreen records a completed trip for the registered driver.
type TripScreen struct {
	View

	api     TripAPI
	session *session.Store

	Fare string
}

func NewTripScreen(a TripAPI, s *session.Store) *TripScreen {
	return &TripScreen{api: a, session: s}
}

func (s *TripScreen) Submit() (*models.Trip, error) {
	fare, ok := parseFinite(s.Fare)
	if !ok || fare <= 0 {
		return nil, invalid("fare", "Fare must be a number greater than 0")
	}
	d := s.session.Driver()
	if d == nil {
		return nil, ErrNotRegistered
	}
	return run(&s.View, func(ctx context.Context) (*models.Trip, error) {
		return s.api.CreateTrip(ctx, d.ID, fare)
	}, nil)
}
