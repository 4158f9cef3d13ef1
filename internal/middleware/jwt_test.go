package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("role")})
	})
	return r
}

func TestRequireAuthAcceptsIssuedToken(t *testing.T) {
	token, err := GenerateToken("user-1", "driver")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-1","role":"driver"}`, w.Body.String())
}

func TestRequireAuthRejects(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			authEngine().ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func getWithToken(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerificationTokenOnlyOpensItsRole(t *testing.T) {
	r := authEngine()
	r.GET("/register", RequireAuthWithRole(RolePhoneVerified), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"phone": c.GetString("user_id")})
	})

	verification, err := GenerateVerificationToken("+251911000000")
	require.NoError(t, err)
	account, err := GenerateToken("user-1", "rider")
	require.NoError(t, err)

	w := getWithToken(r, "/register", verification)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"phone":"+251911000000"}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, getWithToken(r, "/register", account).Code)
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "/register", "not-a-jwt").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "/me", verification).Code)
	assert.Equal(t, http.StatusOK, getWithToken(r, "/me", account).Code)
}

func TestEnableCORSPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the router")
	})
	req := httptest.NewRequest(http.MethodOptions, "/api/drivers/register", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	w := httptest.NewRecorder()

	EnableCORS(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:8081", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, TokenHeader, w.Header().Get("Access-Control-Expose-Headers"))
}
