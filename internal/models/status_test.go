package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from SubOrderStatus
		to   SubOrderStatus
		want bool
	}{
		{"pending to processing", SubOrderPending, SubOrderProcessing, true},
		{"pending to cancelled", SubOrderPending, SubOrderCancelled, true},
		{"pending to shipped skips processing", SubOrderPending, SubOrderShipped, false},
		{"processing to shipped", SubOrderProcessing, SubOrderShipped, true},
		{"processing to cancelled", SubOrderProcessing, SubOrderCancelled, true},
		{"shipped to delivered", SubOrderShipped, SubOrderDelivered, true},
		{"shipped to cancelled after handoff", SubOrderShipped, SubOrderCancelled, false},
		{"delivered is terminal", SubOrderDelivered, SubOrderPending, false},
		{"cancelled is terminal", SubOrderCancelled, SubOrderProcessing, false},
		{"no self loop", SubOrderPending, SubOrderPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidSubOrderStatus(t *testing.T) {
	assert.True(t, ValidSubOrderStatus(SubOrderShipped))
	assert.False(t, ValidSubOrderStatus(SubOrderStatus("returned")))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(SubOrderDelivered))
	assert.True(t, IsTerminal(SubOrderCancelled))
	assert.False(t, IsTerminal(SubOrderShipped))
}

func TestProjectOrderStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []SubOrderStatus
		want     OrderStatus
	}{
		{"no sub-orders", nil, OrderPending},
		{"all pending", []SubOrderStatus{SubOrderPending, SubOrderPending}, OrderPending},
		{"all delivered", []SubOrderStatus{SubOrderDelivered, SubOrderDelivered}, OrderCompleted},
		{"all cancelled", []SubOrderStatus{SubOrderCancelled, SubOrderCancelled}, OrderCancelled},
		{"delivered plus cancelled is not completed", []SubOrderStatus{SubOrderDelivered, SubOrderCancelled}, OrderPartiallyFulfilled},
		{"cancelled with active siblings", []SubOrderStatus{SubOrderCancelled, SubOrderProcessing}, OrderPartiallyCancelled},
		{"any shipped", []SubOrderStatus{SubOrderShipped, SubOrderPending}, OrderShipped},
		{"any processing", []SubOrderStatus{SubOrderProcessing, SubOrderPending}, OrderProcessing},
		{"single delivered", []SubOrderStatus{SubOrderDelivered}, OrderCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectOrderStatus(tt.statuses))
		})
	}
}
