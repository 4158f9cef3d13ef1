package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airide/internal/models"
	"airide/internal/storage"
)

func sampleUser() models.User {
	return models.User{
		ID:       "6a1c0c4e-0000-4000-8000-000000000001",
		Phone:    "+251911000000",
		UserType: models.UserTypeRider,
		Language: models.LanguageEnglish,
		Profile:  &models.Profile{Name: "Abebe"},
	}
}

func sampleDriver() models.Driver {
	year := 2019
	speed := 11.5
	ts := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)
	return models.Driver{
		ID:    "6a1c0c4e-0000-4000-8000-000000000002",
		Name:  "Kebede",
		Phone: "+251922000000",
		Vehicle: models.Vehicle{
			Make: "Toyota", Model: "Vitz", Plate: "AA-3-12345", Year: &year,
		},
		Online:         true,
		CreatedAt:      ts,
		UpdatedAt:      ts,
		LatestLocation: &models.LocationFix{Lat: 9.03, Lng: 38.74, Speed: &speed, Timestamp: ts},
	}
}

func openFile(t *testing.T, path string) *storage.SQLite {
	t.Helper()
	kv, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSetUserSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "device.db")

	first := New(openFile(t, path))
	first.Initialize(ctx)
	require.False(t, first.IsAuthenticated())

	u := sampleUser()
	first.SetUser(ctx, u)
	first.SetToken(ctx, "tok")
	require.True(t, first.IsAuthenticated())

	second := New(openFile(t, path))
	second.Initialize(ctx)

	require.True(t, second.IsAuthenticated())
	assert.Equal(t, &u, second.User())
	assert.Equal(t, "tok", second.Token())
}

func TestSetDriverSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	d := sampleDriver()
	New(kv).SetDriver(ctx, d)

	restored := New(kv)
	restored.Initialize(ctx)

	require.True(t, restored.IsRegistered())
	assert.Equal(t, &d, restored.Driver())
}

func TestClearRemovesPersistedRecord(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "device.db")

	s := New(openFile(t, path))
	s.SetUser(ctx, sampleUser())
	s.SetDriver(ctx, sampleDriver())
	s.Clear(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsRegistered())

	fresh := New(openFile(t, path))
	fresh.Initialize(ctx)
	assert.False(t, fresh.IsAuthenticated())
	assert.False(t, fresh.IsRegistered())
	assert.Empty(t, fresh.Token())
}

func TestSetLanguageWithoutUserIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := New(kv)

	assert.NotPanics(t, func() { s.SetLanguage(ctx, models.LanguageAmharic) })
	assert.Equal(t, 0, kv.Writes)
	assert.Nil(t, s.User())
}

func TestSetLanguageMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := New(kv)
	s.SetUser(ctx, sampleUser())

	s.SetLanguage(ctx, models.LanguageAmharic)

	assert.Equal(t, 2, kv.Writes)
	restored := New(kv)
	restored.Initialize(ctx)
	want := sampleUser()
	want.Language = models.LanguageAmharic
	assert.Equal(t, &want, restored.User())
}

func TestMalformedRecordMeansNoSession(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Put(ctx, Key, []byte("{not json")))

	s := New(kv)
	s.Initialize(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, models.Session{}, s.Snapshot())
}

func TestPersistFailureKeepsMemoryValue(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	kv.Fail = assert.AnError
	s := New(kv)

	s.SetUser(ctx, sampleUser())

	assert.True(t, s.IsAuthenticated())
	restored := New(kv)
	restored.Initialize(ctx)
	assert.False(t, restored.IsAuthenticated())
}

func TestAccessorsReturnCopies(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemory())
	s.SetUser(ctx, sampleUser())

	u := s.User()
	u.Language = models.LanguageAmharic
	u.Profile.Name = "changed"

	assert.Equal(t, models.LanguageEnglish, s.User().Language)
	assert.Equal(t, "Abebe", s.User().Profile.Name)

	d := sampleDriver()
	color, heading := "white", 90.0
	d.Vehicle.Color = &color
	d.LatestLocation.Heading = &heading
	s.SetDriver(ctx, d)

	got := s.Driver()
	*got.Vehicle.Year = 1900
	*got.Vehicle.Color = "red"
	*got.LatestLocation.Speed = 0
	*got.LatestLocation.Heading = 180
	got.LatestLocation.Lat = 0

	stored := s.Driver()
	assert.Equal(t, 2019, *stored.Vehicle.Year)
	assert.Equal(t, "white", *stored.Vehicle.Color)
	assert.Equal(t, 11.5, *stored.LatestLocation.Speed)
	assert.Equal(t, 90.0, *stored.LatestLocation.Heading)
	assert.Equal(t, 9.03, stored.LatestLocation.Lat)

	// The caller's own value is not shared either.
	color = "blue"
	assert.Equal(t, "white", *s.Driver().Vehicle.Color)
}

func TestLastWriteWins(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := New(kv)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			d := sampleDriver()
			d.Online = i%2 == 0
			s.SetDriver(ctx, d)
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	restored := New(kv)
	restored.Initialize(ctx)
	assert.Equal(t, s.Driver(), restored.Driver())
}
