package models

import (
	"encoding/json"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentInitiated = "initiated"
	PaymentPaid      = "paid"
)

// PaymentTransaction records each payment initiation against the gateway,
// keyed by the gateway transaction id. The raw gateway payload is kept for
// auditing.
type PaymentTransaction struct {
	gorm.Model
	OrderID     uint           `json:"order_id"`
	AppTransID  string         `json:"app_trans_id" gorm:"uniqueIndex;size:64"`
	Amount      int64          `json:"amount"`
	Status      string         `json:"status" gorm:"default:initiated"`
	GatewayData datatypes.JSON `json:"gateway_data"`
}

func CreatePaymentTransaction(db *gorm.DB, txn *PaymentTransaction) error {
	return db.Create(txn).Error
}

func MarkPaymentTransactionPaid(db *gorm.DB, appTransID string, payload []byte) error {
	return db.Model(&PaymentTransaction{}).
		Where("app_trans_id = ?", appTransID).
		Updates(map[string]any{
			"status":       PaymentPaid,
			"gateway_data": datatypes.JSON(payload),
		}).Error
}

// PaymentRecorder is the default confirmation sink: it marks the matching
// payment transaction as paid. Order state is deliberately left untouched —
// reconciling payments against orders is a separate collaborator's job.
type PaymentRecorder struct {
	DB *gorm.DB
}

func (r *PaymentRecorder) PaymentConfirmed(appTransID string, payload []byte) error {
	if !json.Valid(payload) {
		log.Printf("Payment %s confirmed with non-JSON payload, storing as-is", appTransID)
	}
	return MarkPaymentTransactionPaid(r.DB, appTransID, payload)
}
