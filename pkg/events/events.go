package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exchange names
const (
	ExchangeOrders = "orders.events"
)

// Routing keys
const (
	RoutingKeyOrderCreated       = "order.created"
	RoutingKeyOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent is published when an order is created
type OrderCreatedEvent struct {
	Version   string              `json:"version"`
	EventType string              `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	TraceID   string              `json:"trace_id"`
	Payload   OrderCreatedPayload `json:"payload"`
}

// OrderCreatedPayload contains order data
type OrderCreatedPayload struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalItems  int             `json:"total_items"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(id string, totalAmount decimal.Decimal, totalItems int, status string, createdAt time.Time, traceID string) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		Version:   "1.0",
		EventType: "order.created",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderCreatedPayload{
			ID:          id,
			TotalAmount: totalAmount,
			TotalItems:  totalItems,
			Status:      status,
			CreatedAt:   createdAt,
		},
	}
}

// OrderStatusChangedEvent is published when an order changes status
type OrderStatusChangedEvent struct {
	Version   string                    `json:"version"`
	EventType string                    `json:"event_type"`
	Timestamp time.Time                 `json:"timestamp"`
	TraceID   string                    `json:"trace_id"`
	Payload   OrderStatusChangedPayload `json:"payload"`
}

// OrderStatusChangedPayload contains the status transition
type OrderStatusChangedPayload struct {
	ID             string    `json:"id"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(id, previousStatus, status string, updatedAt time.Time, traceID string) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		Version:   "1.0",
		EventType: "order.status_changed",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderStatusChangedPayload{
			ID:             id,
			PreviousStatus: previousStatus,
			Status:         status,
			UpdatedAt:      updatedAt,
		},
	}
}
