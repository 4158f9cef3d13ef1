package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"airide/internal/models"
)

type RegisterDriverRequest struct {
	Name    string         `json:"name"`
	Phone   string         `json:"phone"`
	Vehicle models.Vehicle `json:"vehicle"`
}

// LocationUpdate is the body of a location report.
type LocationUpdate struct {
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Speed   *float64 `json:"speed,omitempty"`
	Heading *float64 `json:"heading,omitempty"`
}

func (c *Client) RegisterDriver(ctx context.Context, in RegisterDriverRequest) (*models.Driver, error) {
	var out models.Driver
	_, err := c.do(ctx, call{
		op:     "Register",
		method: http.MethodPost,
		path:   "/drivers/register",
		body:   in,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetDriverOnline switches the driver online or offline.
func (c *Client) SetDriverOnline(ctx context.Context, driverID string, online bool) (*models.Driver, error) {
	path := "/drivers/{id}/offline"
	if online {
		path = "/drivers/{id}/online"
	}
	var out models.Driver
	_, err := c.do(ctx, call{
		op:     "Status change",
		method: http.MethodPost,
		path:   path,
		params: map[string]string{"id": driverID},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// PostLocation reports a position and returns the driver with the new
// latest_location.
func (c *Client) PostLocation(ctx context.Context, driverID string, loc LocationUpdate) (*models.Driver, error) {
	var out models.Driver
	_, err := c.do(ctx, call{
		op:     "Location",
		method: http.MethodPost,
		path:   "/drivers/{id}/location",
		params: map[string]string{"id": driverID},
		body:   loc,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDriver(ctx context.Context, driverID string) (*models.Driver, error) {
	var out models.Driver
	_, err := c.do(ctx, call{
		op:     "Fetch",
		method: http.MethodGet,
		path:   "/drivers/{id}",
		params: map[string]string{"id": driverID},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDriverTrack returns the driver's reported positions as a GeoJSON geometry.
func (c *Client) GetDriverTrack(ctx context.Context, driverID string) (json.RawMessage, error) {
	var out json.RawMessage
	_, err := c.do(ctx, call{
		op:     "Fetch track",
		method: http.MethodGet,
		path:   "/drivers/{id}/track",
		params: map[string]string{"id": driverID},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetEarnings asks for the summary of trips created in [start, end).
func (c *Client) GetEarnings(ctx context.Context, driverID string, start, end time.Time) (*models.EarningsSummary, error) {
	var out models.EarningsSummary
	_, err := c.do(ctx, call{
		op:     "Earnings",
		method: http.MethodGet,
		path:   "/drivers/{id}/earnings",
		params: map[string]string{"id": driverID},
		query: map[string]string{
			"start": start.UTC().Format(time.RFC3339),
			"end":   end.UTC().Format(time.RFC3339),
		},
		out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTrip(ctx context.Context, driverID string, fare float64) (*models.Trip, error) {
	var out models.Trip
	_, err := c.do(ctx, call{
		op:     "Create trip",
		method: http.MethodPost,
		path:   "/drivers/{id}/trips",
		params: map[string]string{"id": driverID},
		body:   map[string]float64{"fare": fare},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
