package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/controllers"
	"github.com/namvh/foodexpress-api/middlewares"
)

func MenuRoutes(server *gin.Engine) {
	menu := server.Group("/api/menu-items")
	{
		menu.GET("", controllers.GetMenuItems)
		menu.GET("/:id", controllers.GetMenuItem)

		admin := menu.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.POST("", controllers.CreateMenuItem)
			admin.PUT("/:id", controllers.UpdateMenuItem)
			admin.DELETE("/:id", controllers.DeleteMenuItem)
			admin.POST("/:id/image", controllers.UploadMenuItemImage)
		}
	}
}
