package screens

import (
	"context"
	"strings"

	"airide/internal/models"
)

// StatusScreen is the connectivity check page.
type StatusScreen struct {
	View

	api StatusAPI

	ClientName string
}

func NewStatusScreen(a StatusAPI) *StatusScreen {
	return &StatusScreen{api: a}
}

func (s *StatusScreen) Create() (*models.StatusCheck, error) {
	name := strings.TrimSpace(s.ClientName)
	if name == "" {
		return nil, invalid("client_name", "Client name is required")
	}
	return run(&s.View, func(ctx context.Context) (*models.StatusCheck, error) {
		return s.api.CreateStatusCheck(ctx, name)
	}, nil)
}

func (s *StatusScreen) List() ([]models.StatusCheck, error) {
	return run(&s.View, func(ctx context.Context) ([]models.StatusCheck, error) {
		return s.api.ListStatusChecks(ctx)
	}, nil)
}
