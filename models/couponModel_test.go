package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestCouponEvaluate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name             string
		coupon           Coupon
		orderAmount      float64
		expectedDiscount float64
		expectedErr      error
	}{
		{
			name: "expired",
			coupon: Coupon{
				DiscountType: DiscountFixed, DiscountValue: 10000,
				ExpiryDate: past, UsageLimit: 100,
			},
			orderAmount: 100000,
			expectedErr: ErrCouponExpired,
		},
		{
			name: "usage_limit_reached",
			coupon: Coupon{
				DiscountType: DiscountFixed, DiscountValue: 10000,
				ExpiryDate: future, UsageLimit: 5, UsedCount: 5,
			},
			orderAmount: 100000,
			expectedErr: ErrCouponUsageExceeded,
		},
		{
			name: "below_minimum_order",
			coupon: Coupon{
				DiscountType: DiscountFixed, DiscountValue: 10000,
				MinOrderAmount: 50000, ExpiryDate: future, UsageLimit: 100,
			},
			orderAmount: 49999,
			expectedErr: ErrCouponBelowMinimum,
		},
		{
			name: "percentage_uncapped",
			coupon: Coupon{
				DiscountType: DiscountPercentage, DiscountValue: 10,
				ExpiryDate: future, UsageLimit: 100,
			},
			orderAmount:      200000,
			expectedDiscount: 20000,
		},
		{
			name: "percentage_capped",
			coupon: Coupon{
				DiscountType: DiscountPercentage, DiscountValue: 10,
				MaxDiscountAmount: floatPtr(5000),
				ExpiryDate:        future, UsageLimit: 100,
			},
			orderAmount:      200000,
			expectedDiscount: 5000,
		},
		{
			name: "percentage_under_cap",
			coupon: Coupon{
				DiscountType: DiscountPercentage, DiscountValue: 10,
				MaxDiscountAmount: floatPtr(50000),
				ExpiryDate:        future, UsageLimit: 100,
			},
			orderAmount:      200000,
			expectedDiscount: 20000,
		},
		{
			name: "percentage_rounds_to_nearest_unit",
			coupon: Coupon{
				DiscountType: DiscountPercentage, DiscountValue: 10,
				ExpiryDate: future, UsageLimit: 100,
			},
			orderAmount:      33333,
			expectedDiscount: 3333,
		},
		{
			name: "fixed_ignores_order_amount",
			coupon: Coupon{
				DiscountType: DiscountFixed, DiscountValue: 15000,
				ExpiryDate: future, UsageLimit: 100,
			},
			orderAmount:      1000000,
			expectedDiscount: 15000,
		},
		{
			name: "minimum_is_inclusive",
			coupon: Coupon{
				DiscountType: DiscountFixed, DiscountValue: 10000,
				MinOrderAmount: 50000, ExpiryDate: future, UsageLimit: 100,
			},
			orderAmount:      50000,
			expectedDiscount: 10000,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			discount, err := testCase.coupon.Evaluate(testCase.orderAmount, now)
			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
				assert.Zero(t, discount)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.expectedDiscount, discount)
			assert.GreaterOrEqual(t, discount, 0.0)
		})
	}
}
