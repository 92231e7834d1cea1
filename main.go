package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/initializers"
	"github.com/namvh/foodexpress-api/models"
	"github.com/namvh/foodexpress-api/payment"
	"github.com/namvh/foodexpress-api/routes"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// The gateway gets its configuration here, once, instead of reading the
	// environment per request.
	gateway := payment.NewGateway(payment.LoadConfig())
	sink := &models.PaymentRecorder{DB: initializers.DB}

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.CategoryRoutes(server)
	routes.MenuRoutes(server)
	routes.CartRoutes(server)
	routes.CouponRoutes(server)
	routes.OrderRoutes(server)
	routes.PaymentRoutes(server, gateway, sink)
	routes.AdminRoutes(server)

	server.Run()
}
