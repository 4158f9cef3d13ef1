package routes

import (
	"airide/internal/controllers"
	"github.com/gin-gonic/gin"
)

func StatusRoutes(r *gin.RouterGroup) {
	r.GET("/", controllers.Root)
	r.GET("/status", controllers.ListStatusChecks)
	r.POST("/status", controllers.CreateStatusCheck)
}
