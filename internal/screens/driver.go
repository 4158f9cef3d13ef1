package screens

import (
	"context"
	"math"
	"strconv"
	"strings"

	"airide/internal/api"
	"airide/internal/models"
	"airide/internal/session"
)

// RegistrationForm holds the raw driver sign-up fields as typed.
type RegistrationForm struct {
	Name  string
	Phone string
	Make  string
	Model string
	Plate string
	Color string
	Year  string
}

// Validate checks the form and builds the request body.
func (f RegistrationForm) Validate() (api.RegisterDriverRequest, error) {
	var req api.RegisterDriverRequest

	name := strings.TrimSpace(f.Name)
	if len([]rune(name)) < 2 {
		return req, invalid("name", "Name must be at least 2 characters")
	}
	phone := strings.TrimSpace(f.Phone)
	if len([]rune(phone)) < 6 {
		return req, invalid("phone", "Phone must be at least 6 characters")
	}
	v := models.Vehicle{
		Make:  strings.TrimSpace(f.Make),
		Model: strings.TrimSpace(f.Model),
		Plate: strings.TrimSpace(f.Plate),
	}
	switch {
	case v.Make == "":
		return req, invalid("make", "Vehicle make is required")
	case v.Model == "":
		return req, invalid("model", "Vehicle model is required")
	case v.Plate == "":
		return req, invalid("plate", "Plate number is required")
	}
	if c := strings.TrimSpace(f.Color); c != "" {
		v.Color = &c
	}
	if y := strings.TrimSpace(f.Year); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year <= 0 {
			return req, invalid("year", "Year must be a number")
		}
		v.Year = &year
	}

	req.Name, req.Phone, req.Vehicle = name, phone, v
	return req, nil
}

// DriverHomeScreen registers the device's driver and then drives the
// online toggle and location reports.
type DriverHomeScreen struct {
	View

	api     DriverAPI
	session *session.Store

	Form RegistrationForm
	Lat  string
	Lng  string

	// online mirrors the toggle as shown, ahead of the server's answer.
	online bool
}

func NewDriverHomeScreen(a DriverAPI, s *session.Store) *DriverHomeScreen {
	h := &DriverHomeScreen{api: a, session: s}
	if d := s.Driver(); d != nil {
		h.online = d.Online
	}
	return h
}

// Online is the toggle state as currently displayed.
func (s *DriverHomeScreen) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *DriverHomeScreen) driverID() (string, error) {
	d := s.session.Driver()
	if d == nil {
		return "", ErrNotRegistered
	}
	return d.ID, nil
}

// Register submits Form and stores the new driver.
func (s *DriverHomeScreen) Register() (*models.Driver, error) {
	req, err := s.Form.Validate()
	if err != nil {
		return nil, err
	}
	return run(&s.View, func(ctx context.Context) (*models.Driver, error) {
		return s.api.RegisterDriver(ctx, req)
	}, s.store)
}

// ToggleOnline flips the displayed state at once and asks the server to
// follow. On failure the display goes back to what it was.
func (s *DriverHomeScreen) ToggleOnline() (*models.Driver, error) {
	return s.SetOnline(!s.Online())
}

// SetOnline is ToggleOnline with an explicit target state.
func (s *DriverHomeScreen) SetOnline(want bool) (*models.Driver, error) {
	id, err := s.driverID()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	prev := s.online
	s.online = want
	s.mu.Unlock()

	d, err := run(&s.View, func(ctx context.Context) (*models.Driver, error) {
		return s.api.SetDriverOnline(ctx, id, want)
	}, s.store)
	if err != nil {
		s.mu.Lock()
		s.online = prev
		s.mu.Unlock()
		return nil, err
	}
	return d, nil
}

// SendLocation reports the fix typed into Lat and Lng.
func (s *DriverHomeScreen) SendLocation() (*models.Driver, error) {
	fix, err := ParseFix(s.Lat, s.Lng)
	if err != nil {
		return nil, err
	}
	return s.SendFix(fix)
}

// ParseFix reads a typed latitude and longitude.
func ParseFix(lat, lng string) (api.LocationUpdate, error) {
	var fix api.LocationUpdate
	v, ok := parseFinite(lat)
	if !ok || v < -90 || v > 90 {
		return fix, invalid("lat", "Latitude must be a number between -90 and 90")
	}
	fix.Lat = v
	if v, ok = parseFinite(lng); !ok || v < -180 || v > 180 {
		return fix, invalid("lng", "Longitude must be a number between -180 and 180")
	}
	fix.Lng = v
	return fix, nil
}

// parseFinite parses a decimal number. NaN and the infinities are refused:
// they cannot be sent as JSON.
func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SendFix reports a fix taken from the device.
func (s *DriverHomeScreen) SendFix(fix api.LocationUpdate) (*models.Driver, error) {
	id, err := s.driverID()
	if err != nil {
		return nil, err
	}
	return run(&s.View, func(ctx context.Context) (*models.Driver, error) {
		return s.api.PostLocation(ctx, id, fix)
	}, s.store)
}

// Refresh reloads the stored driver from the server.
func (s *DriverHomeScreen) Refresh() (*models.Driver, error) {
	id, err := s.driverID()
	if err != nil {
		return nil, err
	}
	return run(&s.View, func(ctx context.Context) (*models.Driver, error) {
		return s.api.GetDriver(ctx, id)
	}, s.store)
}

// store runs with the view lock held.
func (s *DriverHomeScreen) store(ctx context.Context, d *models.Driver) {
	s.session.SetDriver(ctx, *d)
	s.online = d.Online
}
