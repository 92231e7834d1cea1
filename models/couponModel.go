package models

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Reasons a coupon fails validation. These are verdicts, not failures: the
// validate endpoint reports them with valid=false while infrastructure errors
// surface separately.
var (
	ErrCouponNotFound      = errors.New("coupon code does not exist")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponUsageExceeded = errors.New("coupon usage limit reached")
	ErrCouponBelowMinimum  = errors.New("order amount below coupon minimum")
)

type Coupon struct {
	gorm.Model
	Code              string    `json:"code" gorm:"uniqueIndex;size:64" binding:"required"`
	Description       string    `json:"description"`
	DiscountType      string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue     float64   `json:"discount_value" binding:"required"`
	MinOrderAmount    float64   `json:"min_order_amount"`
	MaxDiscountAmount *float64  `json:"max_discount_amount"`
	ExpiryDate        time.Time `json:"expiry_date" binding:"required"`
	UsageLimit        int       `json:"usage_limit"`
	UsedCount         int       `json:"used_count"`
	IsActive          bool      `json:"is_active" gorm:"default:true"`
}

// CouponValidation is the verdict for a (code, order amount) pair. When Valid
// is false, Reason holds one of the ErrCoupon sentinels.
type CouponValidation struct {
	Valid          bool    `json:"valid"`
	Coupon         *Coupon `json:"coupon,omitempty"`
	DiscountAmount float64 `json:"discountAmount"`
	Reason         error   `json:"-"`
}

// Evaluate checks the coupon against an order amount at a point in time and
// returns the discount rounded to the nearest currency unit.
func (c *Coupon) Evaluate(orderAmount float64, now time.Time) (float64, error) {
	if now.After(c.ExpiryDate) {
		return 0, ErrCouponExpired
	}
	if c.UsedCount >= c.UsageLimit {
		return 0, ErrCouponUsageExceeded
	}
	if orderAmount < c.MinOrderAmount {
		return 0, ErrCouponBelowMinimum
	}

	var discount float64
	if c.DiscountType == DiscountPercentage {
		discount = orderAmount * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil && discount > *c.MaxDiscountAmount {
			discount = *c.MaxDiscountAmount
		}
	} else {
		discount = c.DiscountValue
	}
	return math.Round(discount), nil
}

// ValidateCoupon resolves a code to a verdict. The second return value is an
// infrastructure error only; every business outcome lands in the verdict.
func ValidateCoupon(db *gorm.DB, code string, orderAmount float64, now time.Time) (CouponValidation, error) {
	coupon, err := FindCouponByCode(db, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CouponValidation{Reason: ErrCouponNotFound}, nil
		}
		return CouponValidation{}, err
	}

	discount, reason := coupon.Evaluate(orderAmount, now)
	if reason != nil {
		return CouponValidation{Reason: reason}, nil
	}
	return CouponValidation{Valid: true, Coupon: &coupon, DiscountAmount: discount}, nil
}

// RedeemCoupon atomically consumes one use. The guard in the WHERE clause
// makes concurrent redemptions of a near-exhausted coupon safe; zero rows
// affected means the limit was already reached.
func RedeemCoupon(db *gorm.DB, id uint) error {
	result := db.Model(&Coupon{}).
		Where("id = ? AND used_count < usage_limit", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCouponUsageExceeded
	}
	return nil
}

func GetPublicCoupons(db *gorm.DB) ([]Coupon, error) {
	var coupons []Coupon
	result := db.Where("is_active = ? AND expiry_date > ?", true, time.Now()).
		Order("created_at DESC").
		Find(&coupons)
	return coupons, result.Error
}

func GetAllCoupons(db *gorm.DB) ([]Coupon, error) {
	var coupons []Coupon
	result := db.Order("created_at DESC").Find(&coupons)
	return coupons, result.Error
}

func FindCouponByID(db *gorm.DB, id uint) (Coupon, error) {
	var coupon Coupon
	result := db.First(&coupon, id)
	return coupon, result.Error
}

func FindCouponByCode(db *gorm.DB, code string) (Coupon, error) {
	var coupon Coupon
	result := db.Where("code = ? AND is_active = ?", code, true).First(&coupon)
	return coupon, result.Error
}

func CreateCoupon(db *gorm.DB, coupon *Coupon) error {
	return db.Create(coupon).Error
}

func UpdateCoupon(db *gorm.DB, id uint, coupon Coupon) error {
	return db.Model(&Coupon{}).Where("id = ?", id).Updates(map[string]any{
		"code":                coupon.Code,
		"description":         coupon.Description,
		"discount_type":       coupon.DiscountType,
		"discount_value":      coupon.DiscountValue,
		"min_order_amount":    coupon.MinOrderAmount,
		"max_discount_amount": coupon.MaxDiscountAmount,
		"expiry_date":         coupon.ExpiryDate,
		"usage_limit":         coupon.UsageLimit,
		"is_active":           coupon.IsActive,
	}).Error
}

func UpdateCouponStatus(db *gorm.DB, id uint, isActive bool) error {
	return db.Model(&Coupon{}).Where("id = ?", id).Update("is_active", isActive).Error
}

func DeleteCoupon(db *gorm.DB, id uint) error {
	return db.Delete(&Coupon{}, id).Error
}
