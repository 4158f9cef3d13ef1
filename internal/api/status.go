package api

import (
	"context"
	"net/http"

	"airide/internal/models"
)

func (c *Client) ListStatusChecks(ctx context.Context) ([]models.StatusCheck, error) {
	var out []models.StatusCheck
	if _, err := c.do(ctx, call{op: "List status", method: http.MethodGet, path: "/status", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateStatusCheck(ctx context.Context, clientName string) (*models.StatusCheck, error) {
	var out models.StatusCheck
	_, err := c.do(ctx, call{
		op:     "Create status",
		method: http.MethodPost,
		path:   "/status",
		body:   map[string]string{"client_name": clientName},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
