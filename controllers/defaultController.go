package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the FoodExpress API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/register" - Create user account
- POST "/api/auth/login" - Sign in
- GET "/api/auth/profile" - Get own profile
- PUT "/api/auth/profile/:id" - Update profile
- PUT "/api/auth/change-password" - Change password

CATALOG
- GET "/api/categories" - List categories
- GET "/api/menu-items" - List menu items (?admin=true includes unavailable)
- GET "/api/menu-items/:id" - Get menu item by ID

CART
- GET "/api/cart/:userId" - Get a user's cart
- POST "/api/cart" - Add item to cart
- PUT "/api/cart/:id" - Update line quantity
- DELETE "/api/cart/:id" - Remove line
- DELETE "/api/cart/clear/:userId" - Clear cart

ORDERS
- POST "/api/orders" - Place an order from the cart
- GET "/api/orders/user/:userId" - List a user's orders
- GET "/api/orders/details/:orderId" - Order details
- PUT "/api/orders/:orderId/cancel" - Cancel an order

COUPONS
- GET "/api/coupons/public" - Active coupons
- POST "/api/coupons/validate" - Validate a code against an amount

PAYMENT
- POST "/api/payment/create-order" - Initiate a gateway payment
- POST "/api/payment/check-status" - Query payment status
- POST "/api/payment/callback" - Gateway callback (signature-verified)`

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Server is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// NotFound echoes the unmatched path back to the caller.
func NotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, gin.H{
		"message": "Endpoint not found",
		"path":    ctx.Request.URL.Path,
	})
}
