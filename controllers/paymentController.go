package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namvh/foodexpress-api/initializers"
	"github.com/namvh/foodexpress-api/models"
	"github.com/namvh/foodexpress-api/payment"
)

// CreatePaymentOrder initiates a gateway payment for an order and records the
// transaction locally.
func CreatePaymentOrder(gateway *payment.Gateway) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var paymentData struct {
			Amount      int64  `json:"amount" binding:"required"`
			Description string `json:"description"`
			ReturnURL   string `json:"return_url"`
			OrderID     uint   `json:"order_id"`
		}
		if err := ctx.ShouldBindJSON(&paymentData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		result, err := gateway.CreateOrder(payment.CreateOrderRequest{
			Amount:      paymentData.Amount,
			Description: paymentData.Description,
			ReturnURL:   paymentData.ReturnURL,
		})
		if err != nil {
			log.Println("Gateway create order error:", err)
			sendJSONResponse(ctx, http.StatusInternalServerError, gin.H{
				"return_code":    -1,
				"return_message": "Failed to create payment order",
			})
			return
		}

		txn := models.PaymentTransaction{
			OrderID:     paymentData.OrderID,
			AppTransID:  result.AppTransID,
			Amount:      result.Amount,
			Status:      models.PaymentInitiated,
			GatewayData: result.Raw,
		}
		if err := models.CreatePaymentTransaction(initializers.DB, &txn); err != nil {
			log.Printf("Payment %s initiated but not recorded: %v", result.AppTransID, err)
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"return_code":    result.ReturnCode,
			"return_message": result.ReturnMessage,
			"order_url":      result.OrderURL,
			"zp_trans_token": result.ZpTransToken,
			"app_trans_id":   result.AppTransID,
			"amount":         result.Amount,
		})
	}
}

// PaymentCallback verifies the gateway's callback signature. On a valid
// signature the confirmation sink is notified; order state is never updated
// here.
func PaymentCallback(gateway *payment.Gateway, sink payment.ConfirmationSink) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var callbackData struct {
			Data string `json:"data"`
			Mac  string `json:"mac"`
		}
		if err := ctx.ShouldBindJSON(&callbackData); err != nil {
			sendJSONResponse(ctx, http.StatusOK, gin.H{
				"return_code":    0,
				"return_message": err.Error(),
			})
			return
		}

		if !gateway.VerifyCallback(callbackData.Data, callbackData.Mac) {
			sendJSONResponse(ctx, http.StatusOK, gin.H{
				"return_code":    -1,
				"return_message": "mac not equal",
			})
			return
		}

		var payload struct {
			AppTransID string `json:"app_trans_id"`
		}
		if err := json.Unmarshal([]byte(callbackData.Data), &payload); err != nil {
			sendJSONResponse(ctx, http.StatusOK, gin.H{
				"return_code":    0,
				"return_message": err.Error(),
			})
			return
		}

		if sink != nil {
			if err := sink.PaymentConfirmed(payload.AppTransID, []byte(callbackData.Data)); err != nil {
				log.Printf("Payment confirmation sink failed for %s: %v", payload.AppTransID, err)
			}
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"return_code":    1,
			"return_message": "success",
		})
	}
}

// CheckPaymentStatus queries the gateway for a transaction's payment status.
func CheckPaymentStatus(gateway *payment.Gateway) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var statusData struct {
			AppTransID string `json:"app_trans_id" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&statusData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		result, err := gateway.QueryStatus(statusData.AppTransID)
		if err != nil {
			log.Println("Gateway status check error:", err)
			sendJSONResponse(ctx, http.StatusInternalServerError, gin.H{
				"return_code":    -1,
				"return_message": "Failed to check payment status",
			})
			return
		}

		sendJSONResponse(ctx, http.StatusOK, result)
	}
}
