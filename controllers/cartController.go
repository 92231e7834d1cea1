package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/initializers"
	"github.com/namvh/foodexpress-api/middlewares"
	"github.com/namvh/foodexpress-api/models"
	"gorm.io/gorm"
)

// GetCart returns a user's cart lines with live menu-item data and subtotals.
// Owner-or-admin only.
func GetCart(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	if !authUser.CanAccess(userID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	lines, err := models.GetCartByUserID(initializers.DB, userID)
	if err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": lines})
}

// AddToCart adds an item to a user's cart, merging into an existing line for
// the same item.
func AddToCart(ctx *gin.Context) {
	var cartData struct {
		UserID     uint `json:"user_id" binding:"required"`
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&cartData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if cartData.Quantity == 0 {
		cartData.Quantity = 1
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	if !authUser.CanAccess(cartData.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	if err := models.AddToCart(initializers.DB, cartData.UserID, cartData.MenuItemID, cartData.Quantity); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Item added to cart"})
}

// UpdateCartQuantity sets a line's quantity; zero or negative removes it.
func UpdateCartQuantity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var quantityData struct {
		Quantity int `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&quantityData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if !cartLineAccessible(ctx, id) {
		return
	}

	if err := models.UpdateCartQuantity(initializers.DB, id, quantityData.Quantity); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Quantity updated"})
}

func RemoveCartItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if !cartLineAccessible(ctx, id) {
		return
	}

	if err := models.RemoveCartItem(initializers.DB, id); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart empties a user's cart. Owner-or-admin only.
func ClearCart(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	if !authUser.CanAccess(userID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return
	}

	if err := models.ClearCart(initializers.DB, userID); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}

// cartLineAccessible loads the line and enforces the owner-or-admin rule,
// writing the error response itself when the check fails.
func cartLineAccessible(ctx *gin.Context, id uint) bool {
	line, err := models.FindCartItemByID(initializers.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
			return false
		}
		serverError(ctx, err)
		return false
	}

	authUser, _ := middlewares.GetAuthUser(ctx)
	if !authUser.CanAccess(line.UserID) {
		sendErrorResponse(ctx, http.StatusForbidden, msgForbidden)
		return false
	}
	return true
}
