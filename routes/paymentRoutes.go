package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/controllers"
	"github.com/namvh/foodexpress-api/middlewares"
	"github.com/namvh/foodexpress-api/payment"
)

func PaymentRoutes(server *gin.Engine, gateway *payment.Gateway, sink payment.ConfirmationSink) {
	payments := server.Group("/api/payment")
	{
		payments.POST("/create-order", middlewares.RequireAuth(), controllers.CreatePaymentOrder(gateway))
		payments.POST("/check-status", middlewares.RequireAuth(), controllers.CheckPaymentStatus(gateway))

		// Inbound from the gateway; authenticated by signature, not bearer token.
		payments.POST("/callback", controllers.PaymentCallback(gateway, sink))
	}
}
