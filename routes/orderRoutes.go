package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/controllers"
	"github.com/namvh/foodexpress-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/api/orders", middlewares.RequireAuth())
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("/user/:userId", controllers.GetOrdersByUser)
		orders.GET("/details/:orderId", controllers.GetOrderDetails)
		orders.PUT("/:orderId/cancel", controllers.CancelOrder)

		admin := orders.Group("", middlewares.RequireAdmin())
		{
			admin.GET("", controllers.GetAllOrders)
			admin.PUT("/:orderId/status", controllers.UpdateOrderStatus)
			admin.GET("/stats", controllers.GetOrderStats)
			admin.GET("/detailed-stats", controllers.GetDetailedOrderStats)
			admin.GET("/recent-activities", controllers.GetRecentActivities)
			admin.GET("/customer-stats", controllers.GetOrderCustomerStats)
		}
	}
}
