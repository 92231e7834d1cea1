package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderConfirmed, OrderPreparing, true},
		{OrderPreparing, OrderReady, true},
		{OrderReady, OrderDelivered, true},

		{OrderPending, OrderCancelled, true},
		{OrderConfirmed, OrderCancelled, true},
		{OrderPreparing, OrderCancelled, true},
		{OrderReady, OrderCancelled, true},

		// No skipping ahead, no going back.
		{OrderPending, OrderPreparing, false},
		{OrderPending, OrderDelivered, false},
		{OrderConfirmed, OrderPending, false},
		{OrderDelivered, OrderPending, false},

		// Terminal states stay terminal.
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderCancelled, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.from+"_to_"+testCase.to, func(t *testing.T) {
			assert.Equal(t, testCase.allowed, CanTransition(testCase.from, testCase.to))
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled} {
		assert.True(t, IsValidStatus(status), status)
	}
	assert.False(t, IsValidStatus("shipped"))
	assert.False(t, IsValidStatus(""))
}
