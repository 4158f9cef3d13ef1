// Package backendtest runs the real backend router against a throwaway
// SQLite database for tests.
package backendtest

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"airide/internal/config"
	"airide/internal/middleware"
	"airide/internal/routes"
)

// Setup points config.DB at a fresh database and resets the server settings.
// Everything is restored when the test ends.
func Setup(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(sqlite.Open(filepath.Join(t.TempDir(), "backend.db")))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	prevDB, prevSettings := config.DB, config.Settings
	config.DB = db
	config.Settings = config.DefaultServer()
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		config.DB, config.Settings = prevDB, prevSettings
	})
	return db
}

// Router returns the backend engine wired like cmd/server, minus logging.
func Router(t *testing.T) *gin.Engine {
	t.Helper()
	Setup(t)
	return routes.SetupRouter(gin.Recovery())
}

// Server starts the backend on a local port and returns it.
func Server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(middleware.EnableCORS(Router(t)))
	t.Cleanup(srv.Close)
	return srv
}
