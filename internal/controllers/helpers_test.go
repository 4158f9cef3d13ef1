package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"airide/internal/models"
)

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doJSONAuth(t, r, method, path, body, "")
}

func doJSONAuth(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func registerDriver(t *testing.T, r *gin.Engine) models.Driver {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/drivers/register", map[string]any{
		"name":  "Kebede",
		"phone": "+251 922 000 000",
		"vehicle": map[string]any{
			"make": "Toyota", "model": "Vitz", "plate": "AA-3-12345", "year": 2019,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Driver](t, w)
}
