package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airide/internal/backendtest"
	"airide/internal/models"
)

func TestRoot(t *testing.T) {
	r := backendtest.Router(t)

	w := doJSON(t, r, http.MethodGet, "/api/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, w.Body.String())
}

func TestStatusChecks(t *testing.T) {
	r := backendtest.Router(t)

	w := doJSON(t, r, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/status", map[string]string{"client_name": "rider-app"})
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[models.StatusCheck](t, w)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Timestamp.IsZero())

	w = doJSON(t, r, http.MethodGet, "/api/status", nil)
	checks := decode[[]models.StatusCheck](t, w)
	require.Len(t, checks, 1)
	assert.Equal(t, "rider-app", checks[0].ClientName)

	w = doJSON(t, r, http.MethodPost, "/api/status", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
