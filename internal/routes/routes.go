package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with every route under /api. Middleware is
// installed before the routes so it applies to all of them.
func SetupRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)

	api := r.Group("/api")
	StatusRoutes(api)
	AuthRoutes(api)
	DriverRoutes(api)

	return r
}
