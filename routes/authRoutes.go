package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/controllers"
	"github.com/namvh/foodexpress-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.GET("/profile", middlewares.RequireAuth(), controllers.GetProfile)
		auth.PUT("/profile/:id", middlewares.RequireAuth(), controllers.UpdateProfile)
		auth.PUT("/change-password", middlewares.RequireAuth(), controllers.ChangePassword)

		auth.GET("/customers", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.GetCustomers)
		auth.GET("/customer-stats", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.GetCustomerStats)
	}
}
