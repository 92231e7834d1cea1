package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/controllers"
	"github.com/namvh/foodexpress-api/middlewares"
)

func CouponRoutes(server *gin.Engine) {
	coupons := server.Group("/api/coupons")
	{
		coupons.GET("/public", controllers.GetPublicCoupons)

		coupons.GET("/available", middlewares.RequireAuth(), controllers.GetAvailableCoupons)
		coupons.POST("/validate", middlewares.RequireAuth(), controllers.ValidateCoupon)

		admin := coupons.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.GET("", controllers.GetAllCoupons)
			admin.GET("/:id", controllers.GetCoupon)
			admin.POST("", controllers.CreateCoupon)
			admin.PUT("/:id", controllers.UpdateCoupon)
			admin.PUT("/:id/status", controllers.UpdateCouponStatus)
			admin.DELETE("/:id", controllers.DeleteCoupon)
		}
	}
}
