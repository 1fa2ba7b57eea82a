package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// ParseStatus validates a wire status value
func ParseStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderStatusPending, OrderStatusCancelled, OrderStatusDelivered:
		return status, nil
	default:
		return "", NewInvalidStatus(s)
	}
}

// Order represents the order domain entity. TotalAmount and TotalItems
// are derived at creation time and never independently mutated; Items
// are created together with the order and immutable afterwards.
type Order struct {
	ID          string
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      OrderStatus
	Paid        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
}

// OrderItem is a line within an order. Price is a snapshot of the
// directory price at creation time, decoupled from later price changes.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Product is a record resolved from the product directory. Never persisted.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}
