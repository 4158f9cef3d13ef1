package config

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
)

// Server holds the backend settings that are not database related.
type Server struct {
	Addr           string
	JWTSecret      string
	TokenTTL       time.Duration
	ServiceFeeRate float64
	// DemoCode, when non-empty, is issued instead of a random verification
	// code. There is no SMS gateway, so development builds rely on it.
	DemoCode string
	CodeTTL  time.Duration
}

// Settings is read once by LoadServer and consulted by the controllers.
var Settings = DefaultServer()

func DefaultServer() Server {
	return Server{
		Addr:           "0.0.0.0:8080",
		JWTSecret:      "supersecret",
		TokenTTL:       72 * time.Hour,
		ServiceFeeRate: 0.15,
		DemoCode:       "123456",
		CodeTTL:        10 * time.Minute,
	}
}

// LoadServer fills Settings from the environment. Call it after InitDB so the
// .env file has already been loaded.
func LoadServer() Server {
	s := DefaultServer()
	s.Addr = "0.0.0.0:" + getEnv("PORT", "8080")
	s.JWTSecret = getEnv("JWT_SECRET", s.JWTSecret)
	s.DemoCode = getEnv("AUTH_DEMO_CODE", s.DemoCode)

	if raw := getEnv("SERVICE_FEE_RATE", ""); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 || rate >= 1 {
			logrus.WithField("value", raw).Warn("Ignoring invalid SERVICE_FEE_RATE")
		} else {
			s.ServiceFeeRate = rate
		}
	}
	if raw := getEnv("TOKEN_TTL", ""); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			logrus.WithField("value", raw).Warn("Ignoring invalid TOKEN_TTL")
		} else {
			s.TokenTTL = ttl
		}
	}

	if os.Getenv(gin.EnvGinMode) == gin.ReleaseMode {
		for _, name := range s.DevelopmentDefaults() {
			logrus.WithField("setting", name).Warn("Release mode is using a development default")
		}
	}

	Settings = s
	return s
}

// DevelopmentDefaults names the settings still at values meant only for
// local use.
func (s Server) DevelopmentDefaults() []string {
	def := DefaultServer()
	var names []string
	if s.JWTSecret == def.JWTSecret {
		names = append(names, "JWT_SECRET")
	}
	if s.DemoCode != "" && s.DemoCode == def.DemoCode {
		names = append(names, "AUTH_DEMO_CODE")
	}
	return names
}
