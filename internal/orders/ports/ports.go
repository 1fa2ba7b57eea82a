package ports

import (
	"context"

	"go-orders/internal/orders/domain"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create persists an order and its items in a single transaction;
	// on failure no partial state remains
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order with its items
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns a page of orders (without items) for an optional
	// status filter, ordered by creation time
	List(ctx context.Context, status *domain.OrderStatus, offset, limit int) ([]*domain.Order, error)

	// Count counts orders matching an optional status filter
	Count(ctx context.Context, status *domain.OrderStatus) (int64, error)

	// UpdateStatus persists a status change and returns the updated
	// order (without items)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// ProductClient defines the interface for product directory communication
type ProductClient interface {
	// ValidateProducts resolves the given ids to full product records.
	// The directory fails the whole call if any id is unknown; a partial
	// list is never returned silently.
	ValidateProducts(ctx context.Context, ids []string) ([]domain.Product, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// PublishOrderCreated publishes an order created event
	PublishOrderCreated(ctx context.Context, order *domain.Order) error

	// PublishOrderStatusChanged publishes a status transition event
	PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
}
