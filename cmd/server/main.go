package main

import (
	"net/http"

	"airide/internal/config"
	"airide/internal/logger"
	"airide/internal/middleware"
	"airide/internal/routes"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
)

func main() {
	// Initialize structured logging to file
	accessLog := logger.Setup(logger.ServerLogFile, logrus.DebugLevel)

	// Connect to the database
	if err := config.InitDB(); err != nil {
		logrus.WithError(err).Fatal("Database initialization failed")
	}
	settings := config.LoadServer()

	r := routes.SetupRouter(
		// Recovery middleware
		gin.Recovery(),
		// Request logging middleware
		ginlog.SetLogger(
			ginlog.WithWriter(accessLog),
			ginlog.WithUTC(true),
		),
	)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	logrus.WithField("addr", settings.Addr).Info("Server running")
	if err := http.ListenAndServe(settings.Addr, handler); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
