package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrderTotals(t *testing.T) {
	tests := []struct {
		name          string
		subtotal      float64
		discount      float64
		expectedTax   float64
		expectedTotal float64
	}{
		{
			name:     "subtotal_100k_with_10k_discount",
			subtotal: 100000, discount: 10000,
			expectedTax: 2000, expectedTotal: 111000,
		},
		{
			name:     "no_discount",
			subtotal: 100000, discount: 0,
			expectedTax: 2000, expectedTotal: 121000,
		},
		{
			name:     "tax_rounds_to_nearest_unit",
			subtotal: 33333, discount: 0,
			expectedTax: 667, expectedTotal: 53000,
		},
		{
			name:     "zero_subtotal",
			subtotal: 0, discount: 0,
			expectedTax: 0, expectedTotal: 19000,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			tax, total := computeOrderTotals(testCase.subtotal, testCase.discount)
			assert.Equal(t, testCase.expectedTax, tax)
			assert.Equal(t, testCase.expectedTotal, total)
		})
	}
}
