package screens

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airide/internal/models"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
	return ve.Field
}

func TestRegistrationFormValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*RegistrationForm)
		field string
	}{
		{"short name", func(f *RegistrationForm) { f.Name = "K" }, "name"},
		{"blank name", func(f *RegistrationForm) { f.Name = "   " }, "name"},
		{"short phone", func(f *RegistrationForm) { f.Phone = "09112" }, "phone"},
		{"no make", func(f *RegistrationForm) { f.Make = "" }, "make"},
		{"no model", func(f *RegistrationForm) { f.Model = "" }, "model"},
		{"no plate", func(f *RegistrationForm) { f.Plate = " " }, "plate"},
		{"year not a number", func(f *RegistrationForm) { f.Year = "twenty" }, "year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.edit(&f)
			_, err := f.Validate()
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}
}

func TestRegistrationFormOptionalFields(t *testing.T) {
	f := validForm()
	req, err := f.Validate()
	require.NoError(t, err)
	assert.Nil(t, req.Vehicle.Color)
	assert.Nil(t, req.Vehicle.Year)

	f.Color, f.Year = " white ", "2019"
	req, err = f.Validate()
	require.NoError(t, err)
	require.NotNil(t, req.Vehicle.Color)
	require.NotNil(t, req.Vehicle.Year)
	assert.Equal(t, "white", *req.Vehicle.Color)
	assert.Equal(t, 2019, *req.Vehicle.Year)
}

func TestValidationHappensBeforeAnyRequest(t *testing.T) {
	sess, _ := newSession(t)
	sess.SetDriver(context.Background(), models.Driver{ID: "d-1"})
	fake := newSlowDrivers()
	scr := NewDriverHomeScreen(fake, sess)
	scr.Open(context.Background())
	defer scr.Close()

	scr.Lat, scr.Lng = "north", "38.74"
	_, err := scr.SendLocation()
	assert.Equal(t, "lat", fieldOf(t, err))

	scr.Lat, scr.Lng = "9.03", "200"
	_, err = scr.SendLocation()
	assert.Equal(t, "lng", fieldOf(t, err))

	assert.Empty(t, fake.started, "no request was made")
}

func TestParseFixRejectsNonFinite(t *testing.T) {
	tests := []struct {
		lat, lng string
		field    string
	}{
		{"NaN", "38.74", "lat"},
		{"Inf", "38.74", "lat"},
		{"-Inf", "38.74", "lat"},
		{"91", "38.74", "lat"},
		{"9.03", "NaN", "lng"},
		{"9.03", "+Inf", "lng"},
		{"9.03", "-180.5", "lng"},
	}
	for _, tt := range tests {
		t.Run(tt.lat+","+tt.lng, func(t *testing.T) {
			_, err := ParseFix(tt.lat, tt.lng)
			assert.Equal(t, tt.field, fieldOf(t, err))
		})
	}

	fix, err := ParseFix(" 9.03 ", "38.74")
	require.NoError(t, err)
	assert.Equal(t, 9.03, fix.Lat)
	assert.Equal(t, 38.74, fix.Lng)
}

func TestNonFiniteLocationNeverReachesTheServer(t *testing.T) {
	sess, _ := newSession(t)
	sess.SetDriver(context.Background(), models.Driver{ID: "d-1"})
	fake := newSlowDrivers()
	scr := NewDriverHomeScreen(fake, sess)
	scr.Open(context.Background())
	defer scr.Close()

	scr.Lat, scr.Lng = "NaN", "38.74"
	_, err := scr.SendLocation()
	assert.Equal(t, "lat", fieldOf(t, err))
	assert.Equal(t, "Latitude must be a number between -90 and 90", Message(err))
	assert.Empty(t, fake.started)
}

func TestTripFareValidation(t *testing.T) {
	sess, _ := newSession(t)
	scr := NewTripScreen(nil, sess)
	for _, fare := range []string{"", "abc", "0", "-5", "NaN", "Inf", "+Inf", "-Inf"} {
		scr.Fare = fare
		_, err := scr.Submit()
		assert.Equal(t, "fare", fieldOf(t, err), "fare %q", fare)
	}

	scr.Fare = "100"
	_, err := scr.Submit()
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestAuthInputValidation(t *testing.T) {
	sess, _ := newSession(t)
	scr := NewAuthScreen(nil, sess)

	assert.Equal(t, "phone", fieldOf(t, scr.SendCode()))

	scr.Phone = "+251911000000"
	_, err := scr.Verify()
	assert.Equal(t, "code", fieldOf(t, err))

	ut := NewUserTypeScreen(nil, sess, "+251911000000")
	ut.UserType = "pilot"
	_, err = ut.Submit()
	assert.Equal(t, "userType", fieldOf(t, err))

	ut.UserType, ut.Language = models.UserTypeRider, "fr"
	_, err = ut.Submit()
	assert.Equal(t, "language", fieldOf(t, err))

	ut.Language = models.LanguageAmharic
	_, err = ut.Submit()
	assert.Equal(t, "code", fieldOf(t, err), "sign-up needs a verified phone")
}

func TestProfileScreen(t *testing.T) {
	ctx := context.Background()
	sess, kv := newSession(t)

	p := NewProfileScreen(sess, "")
	assert.Equal(t, "(not set)", p.BackendLabel())
	assert.Equal(t, "http://10.0.2.2:8001", NewProfileScreen(sess, " http://10.0.2.2:8001 ").BackendLabel())

	assert.ErrorIs(t, p.SetLanguage(ctx, models.LanguageAmharic), ErrNotSignedIn)
	assert.Equal(t, "language", fieldOf(t, p.SetLanguage(ctx, "fr")))
	assert.Equal(t, 0, kv.Writes)

	sess.SetUser(ctx, models.User{ID: "u-1", Phone: "+251911000000", UserType: models.UserTypeRider, Language: models.LanguageEnglish})
	require.NoError(t, p.SetLanguage(ctx, models.LanguageAmharic))
	assert.Equal(t, models.LanguageAmharic, p.User().Language)

	p.Logout(ctx)
	assert.Nil(t, p.User())
	assert.False(t, sess.IsAuthenticated())
}

func TestStatusScreenNeedsName(t *testing.T) {
	scr := NewStatusScreen(nil)
	scr.ClientName = "  "
	_, err := scr.Create()
	assert.Equal(t, "client_name", fieldOf(t, err))
}

func TestFormatFare(t *testing.T) {
	assert.Equal(t, "ETB 100.00", FormatFare(100))
	assert.Equal(t, "ETB 12.50", FormatFare(12.5))
}
