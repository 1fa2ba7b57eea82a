package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-orders/internal/orders/domain"
	"go-orders/pkg/db"
	apperrors "go-orders/pkg/errors"
)

// OrderModel is the GORM model for orders (persistence layer)
type OrderModel struct {
	ID          string             `gorm:"primaryKey;size:36"`
	TotalAmount decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	TotalItems  int                `gorm:"not null"`
	Status      domain.OrderStatus `gorm:"size:20;not null;default:'PENDING';index"`
	Paid        bool               `gorm:"not null;default:false"`
	CreatedAt   time.Time          `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time          `gorm:"autoUpdateTime"`
	Items       []OrderItemModel   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM model for order line items
type OrderItemModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	OrderID   string          `gorm:"size:36;index;not null"`
	ProductID string          `gorm:"size:36;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *gorm.DB
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository
func NewPostgresOrderRepository(db *gorm.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Migrate runs auto-migration for the order models
func (r *PostgresOrderRepository) Migrate() error {
	return r.db.AutoMigrate(&OrderModel{}, &OrderItemModel{})
}

// Create persists the order and its items in one transaction
func (r *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	model := toModel(order)

	err := db.Transaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return apperrors.NewInternal("failed to create order", err)
	}

	order.CreatedAt = model.CreatedAt
	order.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID retrieves an order with its items
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var model OrderModel

	result := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewOrderNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get order", result.Error)
	}

	return toDomain(&model), nil
}

// List returns a page of orders without items, oldest first
func (r *PostgresOrderRepository) List(ctx context.Context, status *domain.OrderStatus, offset, limit int) ([]*domain.Order, error) {
	query := r.db.WithContext(ctx).Order("created_at")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var models []OrderModel
	if err := query.Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, apperrors.NewInternal("failed to list orders", err)
	}

	orders := make([]*domain.Order, len(models))
	for i, model := range models {
		orders[i] = toDomain(&model)
	}

	return orders, nil
}

// Count counts orders matching the optional status filter
func (r *PostgresOrderRepository) Count(ctx context.Context, status *domain.OrderStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&OrderModel{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, apperrors.NewInternal("failed to count orders", err)
	}

	return total, nil
}

// UpdateStatus persists a status change and returns the updated order
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	result := r.db.WithContext(ctx).Model(&OrderModel{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.NewOrderNotFound(id)
	}

	var model OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, apperrors.NewInternal("failed to reload order", err)
	}

	return toDomain(&model), nil
}

// toModel converts a domain entity to GORM models
func toModel(order *domain.Order) *OrderModel {
	model := &OrderModel{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Status:      order.Status,
		Paid:        order.Paid,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}

	for _, item := range order.Items {
		model.Items = append(model.Items, OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return model
}

// toDomain converts GORM models to a domain entity
func toDomain(model *OrderModel) *domain.Order {
	order := &domain.Order{
		ID:          model.ID,
		TotalAmount: model.TotalAmount,
		TotalItems:  model.TotalItems,
		Status:      model.Status,
		Paid:        model.Paid,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	for _, item := range model.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return order
}
