package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/initializers"
	"github.com/namvh/foodexpress-api/middlewares"
	"github.com/namvh/foodexpress-api/models"
	"gorm.io/gorm"
)

const (
	// Flat delivery fee and tax rate applied to every order.
	deliveryFee = 19000.0
	taxRate     = 0.02
)

type createOrderData struct {
	UserID          uint   `json:"user_id" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Notes           string `json:"notes"`
	CouponCode      string `json:"coupon_code"`
}

func computeOrderTotals(subtotal, discount float64) (tax, total float64) {
	tax = math.Round(subtotal * taxRate)
	total = subtotal + deliveryFee + tax - discount
	return tax, total
}

// CreateOrder places an order from the user's current cart. The discount is
// always recomputed server-side from the submitted coupon code; the coupon's
// usage counter is consumed inside the same transaction as the order insert.
func CreateOrder(ctx *gin.Context) {
	var orderData createOrderData
	if err := ctx.ShouldBindJSON(&orderData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	if !authUser.CanAccess(orderData.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	cartLines, err := models.GetCartByUserID(initializers.DB, orderData.UserID)
	if err != nil {
		serverError(ctx, err)
		return
	}
	if len(cartLines) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Cart is empty")
		return
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(cartLines))
	for _, line := range cartLines {
		subtotal += line.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Price:      line.Price,
		})
	}

	var discount float64
	var couponID *uint
	if orderData.CouponCode != "" {
		verdict, err := models.ValidateCoupon(initializers.DB, orderData.CouponCode, subtotal, time.Now())
		if err != nil {
			serverError(ctx, err)
			return
		}
		if !verdict.Valid {
			sendErrorResponse(ctx, http.StatusBadRequest, verdict.Reason.Error())
			return
		}
		discount = verdict.DiscountAmount
		couponID = &verdict.Coupon.ID
	}

	_, total := computeOrderTotals(subtotal, discount)

	order := models.Order{
		UserID:          orderData.UserID,
		TotalAmount:     total,
		PaymentMethod:   orderData.PaymentMethod,
		DeliveryAddress: orderData.DeliveryAddress,
		Notes:           orderData.Notes,
		CouponID:        couponID,
		Discount:        discount,
		Status:          models.OrderPending,
	}

	if err := models.CreateOrderWithItems(initializers.DB, &order, items); err != nil {
		if errors.Is(err, models.ErrCouponUsageExceeded) {
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			return
		}
		serverError(ctx, err)
		return
	}

	// Best-effort cleanup: the order stands even if the cart survives.
	if err := models.ClearCart(initializers.DB, orderData.UserID); err != nil {
		log.Printf("Failed to clear cart for user %d after order %d: %v", orderData.UserID, order.ID, err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":     "Order placed successfully",
		"orderId":     order.ID,
		"totalAmount": total,
	})
}

// GetOrdersByUser lists a user's orders with an items summary. Owner-or-admin.
func GetOrdersByUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	if !authUser.CanAccess(userID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	orders, err := models.GetOrdersByUserID(initializers.DB, userID)
	if err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetAllOrders lists every order with customer info. Admin only.
func GetAllOrders(ctx *gin.Context) {
	orders, err := models.GetAllOrders(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails returns an order's line items. Owner-or-admin.
func GetOrderDetails(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "orderId")
	if !ok {
		return
	}

	order, err := models.FindOrderByID(initializers.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		serverError(ctx, err)
		return
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	if !authUser.CanAccess(order.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	details, err := models.GetOrderDetails(initializers.DB, orderID)
	if err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order, "items": details})
}

// UpdateOrderStatus moves an order along its lifecycle. Admin only; illegal
// transitions are rejected.
func UpdateOrderStatus(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "orderId")
	if !ok {
		return
	}

	var statusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if !models.IsValidStatus(statusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
		return
	}

	order, err := models.FindOrderByID(initializers.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		serverError(ctx, err)
		return
	}

	if !models.CanTransition(order.Status, statusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest,
			"Cannot change status from "+order.Status+" to "+statusData.Status)
		return
	}

	if err := models.UpdateOrderStatus(initializers.DB, orderID, statusData.Status); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully"})
}

// CancelOrder cancels a non-terminal order. Owner-or-admin.
func CancelOrder(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "orderId")
	if !ok {
		return
	}

	order, err := models.FindOrderByID(initializers.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		serverError(ctx, err)
		return
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	if !authUser.CanAccess(order.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	if !models.CanTransition(order.Status, models.OrderCancelled) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order can no longer be cancelled")
		return
	}

	if err := models.UpdateOrderStatus(initializers.DB, orderID, models.OrderCancelled); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order cancelled successfully"})
}

// GetOrderStats returns dashboard aggregates. Admin only.
func GetOrderStats(ctx *gin.Context) {
	stats, err := models.GetOrderStats(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, stats)
}

// GetDetailedOrderStats returns the overview, 7-day dailies and top sellers.
func GetDetailedOrderStats(ctx *gin.Context) {
	overview, daily, topItems, err := models.GetDetailedOrderStats(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"overview":   overview,
		"dailyStats": daily,
		"topItems":   topItems,
	})
}

// GetRecentActivities returns the latest order movements. Admin only.
func GetRecentActivities(ctx *gin.Context) {
	activities, err := models.GetRecentActivities(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"activities": activities})
}

// GetOrderCustomerStats returns customer activity aggregates. Admin only.
func GetOrderCustomerStats(ctx *gin.Context) {
	stats, err := models.GetOrderCustomerStats(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, stats)
}
