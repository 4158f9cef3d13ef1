package routes

import (
	"airide/internal/controllers"
	"airide/internal/middleware"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/send-code", controllers.SendCode)
		auth.POST("/verify-code", controllers.VerifyCode)
		auth.POST("/register", middleware.RequireAuthWithRole(middleware.RolePhoneVerified), controllers.RegisterUser)
		auth.GET("/user/:phone", controllers.GetUserByPhone)
		auth.GET("/me", middleware.RequireAuth(), controllers.Me)
	}
}
