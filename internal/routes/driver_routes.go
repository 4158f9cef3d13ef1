package routes

import (
	"airide/internal/controllers"
	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.RouterGroup) {
	driver := r.Group("/drivers")
	{
		driver.POST("/register", controllers.RegisterDriver)
		driver.GET("/:id", controllers.GetDriver)
		driver.POST("/:id/online", controllers.GoOnline)
		driver.POST("/:id/offline", controllers.GoOffline)
		driver.POST("/:id/location", controllers.UpdateLocation)
		driver.GET("/:id/track", controllers.GetDriverTrack)
		driver.POST("/:id/trips", controllers.CreateTrip)
		driver.GET("/:id/earnings", controllers.GetEarnings)
	}
}
