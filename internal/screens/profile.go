package screens

import (
	"context"
	"strings"

	"airide/internal/config"
	"airide/internal/models"
	"airide/internal/session"
)

// ProfileScreen shows the signed-in user and the app settings.
type ProfileScreen struct {
	session *session.Store
	backend string
}

func NewProfileScreen(s *session.Store, backendURL string) *ProfileScreen {
	return &ProfileScreen{session: s, backend: strings.TrimSpace(backendURL)}
}

func (p *ProfileScreen) User() *models.User     { return p.session.User() }
func (p *ProfileScreen) Driver() *models.Driver { return p.session.Driver() }

// BackendLabel is the backend origin, or a placeholder when unset.
func (p *ProfileScreen) BackendLabel() string {
	if p.backend == "" {
		return config.NotSetLabel
	}
	return p.backend
}

// SetLanguage switches the UI language. Without a signed-in user nothing
// changes.
func (p *ProfileScreen) SetLanguage(ctx context.Context, code string) error {
	if !models.ValidLanguage(code) {
		return invalid("language", "Choose English or Amharic")
	}
	if !p.session.IsAuthenticated() {
		return ErrNotSignedIn
	}
	p.session.SetLanguage(ctx, code)
	return nil
}

// Logout forgets the user, the driver and the token on this device.
func (p *ProfileScreen) Logout(ctx context.Context) {
	p.session.Clear(ctx)
}
