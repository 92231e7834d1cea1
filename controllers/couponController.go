package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/initializers"
	"github.com/namvh/foodexpress-api/models"
	"gorm.io/gorm"
)

// GetPublicCoupons lists active, unexpired coupons. No authentication needed.
func GetPublicCoupons(ctx *gin.Context) {
	coupons, err := models.GetPublicCoupons(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"coupons": coupons})
}

// GetAvailableCoupons lists coupons a signed-in user can apply. Per-user
// redemption is not tracked, so this is the public set.
func GetAvailableCoupons(ctx *gin.Context) {
	GetPublicCoupons(ctx)
}

func GetAllCoupons(ctx *gin.Context) {
	coupons, err := models.GetAllCoupons(initializers.DB)
	if err != nil {
		serverError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"coupons": coupons})
}

func GetCoupon(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	coupon, err := models.FindCouponByID(initializers.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Coupon not found")
			return
		}
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, coupon)
}

func CreateCoupon(ctx *gin.Context) {
	var coupon models.Coupon
	if err := ctx.ShouldBindJSON(&coupon); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	_, err := models.FindCouponByCode(initializers.DB, coupon.Code)
	if err == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Coupon code already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(ctx, err)
		return
	}

	coupon.UsedCount = 0
	if err := models.CreateCoupon(initializers.DB, &coupon); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Coupon created successfully",
		"coupon":  coupon,
	})
}

func UpdateCoupon(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := models.FindCouponByID(initializers.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Coupon not found")
			return
		}
		serverError(ctx, err)
		return
	}

	var coupon models.Coupon
	if err := ctx.ShouldBindJSON(&coupon); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := models.UpdateCoupon(initializers.DB, id, coupon); err != nil {
		serverError(ctx, err)
		return
	}

	updated, err := models.FindCouponByID(initializers.DB, id)
	if err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Coupon updated successfully",
		"coupon":  updated,
	})
}

func UpdateCouponStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var statusData struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if _, err := models.FindCouponByID(initializers.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Coupon not found")
			return
		}
		serverError(ctx, err)
		return
	}

	if err := models.UpdateCouponStatus(initializers.DB, id, *statusData.IsActive); err != nil {
		serverError(ctx, err)
		return
	}

	message := "Coupon deactivated successfully"
	if *statusData.IsActive {
		message = "Coupon activated successfully"
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": message})
}

func DeleteCoupon(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := models.FindCouponByID(initializers.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Coupon not found")
			return
		}
		serverError(ctx, err)
		return
	}

	if err := models.DeleteCoupon(initializers.DB, id); err != nil {
		serverError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

// ValidateCoupon computes the discount for a code and order amount. Business
// outcomes are reported with valid=false; only infrastructure failures 500.
func ValidateCoupon(ctx *gin.Context) {
	var validateData struct {
		Code        string  `json:"code" binding:"required"`
		OrderAmount float64 `json:"order_amount" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&validateData); err != nil {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
			"valid": false,
			"error": "Missing coupon code or order amount",
		})
		return
	}

	verdict, err := models.ValidateCoupon(initializers.DB, validateData.Code, validateData.OrderAmount, time.Now())
	if err != nil {
		serverError(ctx, err)
		return
	}

	if !verdict.Valid {
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"valid": false,
			"error": verdict.Reason.Error(),
		})
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"valid":          true,
		"coupon":         verdict.Coupon,
		"discountAmount": verdict.DiscountAmount,
	})
}
