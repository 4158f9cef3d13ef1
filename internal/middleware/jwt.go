package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"airide/internal/config"
)

// TokenHeader carries a freshly issued token on auth responses so the JSON
// bodies keep their documented shape.
const TokenHeader = "X-Auth-Token"

// RolePhoneVerified marks a short-lived token proving a phone passed code
// verification but has no account yet. Its user_id claim is the phone.
const RolePhoneVerified = "phone_verified"

func GenerateToken(userID, role string) (string, error) {
	return signToken(userID, role, config.Settings.TokenTTL)
}

// GenerateVerificationToken is what verify-code hands to a new phone. It
// only opens the register endpoint and lives as long as a code does.
func GenerateVerificationToken(phone string) (string, error) {
	return signToken(phone, RolePhoneVerified, config.Settings.CodeTTL)
}

func signToken(subject, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": subject,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Settings.JWTSecret))
}

func ValidateToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(config.Settings.JWTSecret), nil
	})
}

// RequireAuth ensures a valid account JWT is present
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}
		if c.GetString("role") == RolePhoneVerified {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account token required"})
			return
		}
		c.Next()
	}
}

// RequireAuthWithRole ensures the JWT is valid and carries a specific role
func RequireAuthWithRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}
		if c.GetString("role") != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// authenticate validates the bearer token and stores its claims on c. It
// aborts with 401 and returns false when the token is missing or bad.
func authenticate(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return false
	}

	token, err := ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return false
	}
	userID, err := stringClaim(claims, "user_id")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return false
	}
	role, _ := stringClaim(claims, "role")

	// Store claims in context for downstream handlers
	c.Set("user_id", userID)
	c.Set("role", role)
	return true
}

func stringClaim(claims jwt.MapClaims, key string) (string, error) {
	v, ok := claims[key].(string)
	if !ok || v == "" {
		return "", errors.New("missing claim " + key)
	}
	return v, nil
}
