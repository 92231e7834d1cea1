package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/controllers"
	"github.com/namvh/foodexpress-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/api/cart", middlewares.RequireAuth())
	{
		cart.GET("/:userId", controllers.GetCart)
		cart.POST("", controllers.AddToCart)
		cart.PUT("/:id", controllers.UpdateCartQuantity)
		cart.DELETE("/:id", controllers.RemoveCartItem)
		cart.DELETE("/clear/:userId", controllers.ClearCart)
	}
}
