package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/controllers"
	"github.com/namvh/foodexpress-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/api/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/users", controllers.GetAllUsers)
		admin.GET("/customers", controllers.GetCustomers)
		admin.GET("/customer-stats", controllers.GetCustomerStats)

		admin.GET("/orders/stats", controllers.GetOrderStats)
		admin.GET("/orders/recent-activities", controllers.GetRecentActivities)
		admin.GET("/orders/detailed-stats", controllers.GetDetailedOrderStats)
		admin.GET("/orders/customer-stats", controllers.GetOrderCustomerStats)
	}
}
