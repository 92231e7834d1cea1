package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/controllers"
	"github.com/namvh/foodexpress-api/middlewares"
)

func CategoryRoutes(server *gin.Engine) {
	categories := server.Group("/api/categories")
	{
		categories.GET("", controllers.GetCategories)

		admin := categories.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.POST("", controllers.CreateCategory)
			admin.PUT("/:id", controllers.UpdateCategory)
			admin.DELETE("/:id", controllers.DeleteCategory)
		}
	}
}
