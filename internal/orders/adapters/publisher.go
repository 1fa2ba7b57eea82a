package adapters

import (
	"context"

	"go-orders/internal/orders/domain"
	"go-orders/pkg/events"
	"go-orders/pkg/logger"
	"go-orders/pkg/rabbitmq"
)

// RabbitMQPublisher implements EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher *rabbitmq.Publisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ event publisher
func NewRabbitMQPublisher(publisher *rabbitmq.Publisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishOrderCreated publishes an order created event
func (p *RabbitMQPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	event := events.NewOrderCreatedEvent(
		order.ID,
		order.TotalAmount,
		order.TotalItems,
		string(order.Status),
		order.CreatedAt,
		logger.GetTraceID(ctx),
	)

	return p.publisher.Publish(ctx, events.RoutingKeyOrderCreated, event)
}

// PublishOrderStatusChanged publishes a status transition event
func (p *RabbitMQPublisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	event := events.NewOrderStatusChangedEvent(
		order.ID,
		string(previous),
		string(order.Status),
		order.UpdatedAt,
		logger.GetTraceID(ctx),
	)

	return p.publisher.Publish(ctx, events.RoutingKeyOrderStatusChanged, event)
}
