package controllers_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airide/internal/backendtest"
	"airide/internal/config"
	"airide/internal/models"
)

func earningsPath(id string, start, end time.Time) string {
	q := url.Values{}
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	return "/api/drivers/" + id + "/earnings?" + q.Encode()
}

func TestCreateTripChargesServiceFee(t *testing.T) {
	r := backendtest.Router(t)
	d := registerDriver(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/drivers/"+d.ID+"/trips", map[string]any{"fare": 100})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	trip := decode[models.Trip](t, w)
	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, d.ID, trip.DriverID)
	assert.Equal(t, 100.0, trip.Fare)
	assert.Equal(t, 15.0, trip.ServiceFee)
}

func TestCreateTripRejectsNonPositiveFare(t *testing.T) {
	r := backendtest.Router(t)
	d := registerDriver(t, r)

	for _, fare := range []any{0, -5, "ten"} {
		w := doJSON(t, r, http.MethodPost, "/api/drivers/"+d.ID+"/trips", map[string]any{"fare": fare})
		assert.Equal(t, http.StatusBadRequest, w.Code, "fare %v", fare)
	}
}

func TestEarningsSummaryWindow(t *testing.T) {
	r := backendtest.Router(t)
	d := registerDriver(t, r)
	other := registerDriver(t, r)

	start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 23, 59, 59, 0, time.UTC)
	trips := []models.Trip{
		{DriverID: d.ID, Fare: 100, ServiceFee: 15, CreatedAt: start.Add(-time.Minute)},
		{DriverID: d.ID, Fare: 100, ServiceFee: 15, CreatedAt: start.Add(2 * time.Hour)},
		{DriverID: d.ID, Fare: 50.5, ServiceFee: 7.58, CreatedAt: start.AddDate(0, 0, 3)},
		{DriverID: other.ID, Fare: 80, ServiceFee: 12, CreatedAt: start.AddDate(0, 0, 1)},
		{DriverID: d.ID, Fare: 70, ServiceFee: 10.5, CreatedAt: end.Add(time.Hour)},
	}
	require.NoError(t, config.DB.Create(&trips).Error)

	w := doJSON(t, r, http.MethodGet, earningsPath(d.ID, start, end), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	s := decode[models.EarningsSummary](t, w)
	assert.Equal(t, d.ID, s.DriverID)
	assert.True(t, s.Start.Equal(start))
	assert.True(t, s.End.Equal(end))
	assert.Equal(t, 2, s.TripCount)
	assert.Equal(t, 150.5, s.TotalFares)
	assert.Equal(t, 22.58, s.TotalServiceFees)
	assert.Equal(t, 127.92, s.NetAmount)
	require.Len(t, s.Trips, 2)
	assert.Equal(t, 100.0, s.Trips[0].Fare)
	assert.Equal(t, 50.5, s.Trips[1].Fare)
}

func TestEarningsEmptyWindow(t *testing.T) {
	r := backendtest.Router(t)
	d := registerDriver(t, r)
	start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	w := doJSON(t, r, http.MethodGet, earningsPath(d.ID, start, start.AddDate(0, 0, 6)), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(mustField(t, w.Body.Bytes(), "trips")))
	assert.Equal(t, 0, decode[models.EarningsSummary](t, w).TripCount)
}

func TestEarningsRejectsBadWindow(t *testing.T) {
	r := backendtest.Router(t)
	d := registerDriver(t, r)
	start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	w := doJSON(t, r, http.MethodGet, earningsPath(d.ID, start, start), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/drivers/"+d.ID+"/earnings?start=yesterday&end=today", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/drivers/"+d.ID+"/earnings", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEarningsUnknownDriver(t *testing.T) {
	r := backendtest.Router(t)
	start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	w := doJSON(t, r, http.MethodGet, earningsPath("nope", start, start.AddDate(0, 0, 6)), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
