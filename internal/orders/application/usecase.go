package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-orders/internal/orders/domain"
	"go-orders/internal/orders/ports"
	"go-orders/pkg/errors"
	"go-orders/pkg/logger"
)

// OrderUseCase handles order business logic
type OrderUseCase struct {
	repo      ports.OrderRepository
	products  ports.ProductClient
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewOrderUseCase creates a new order use case
func NewOrderUseCase(
	repo ports.OrderRepository,
	products ports.ProductClient,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		repo:      repo,
		products:  products,
		publisher: publisher,
		log:       log,
	}
}

// OrderItemView is an order line enriched with the product name
type OrderItemView struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name,omitempty"`
}

// OrderView is the response shape for a single order
type OrderView struct {
	ID          string             `json:"id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalItems  int                `json:"total_items"`
	Status      domain.OrderStatus `json:"status"`
	Paid        bool               `json:"paid"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Items       []OrderItemView    `json:"items,omitempty"`
}

// PageMeta is the pagination metadata returned by FindAll
type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"last_page"`
}

// OrderPage is a page of orders plus pagination metadata
type OrderPage struct {
	Data []*OrderView `json:"data"`
	Meta PageMeta     `json:"meta"`
}

// CreateOrderInput represents the input for creating an order
type CreateOrderInput struct {
	Items []domain.ItemRequest
}

// CreateOrder validates the referenced products against the directory,
// computes the aggregate, persists order and items atomically, and
// returns the order enriched with product names from the validation
// response. Any failure past input validation surfaces as one opaque
// error; the cause is only logged.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderView, error) {
	if err := domain.ValidateItems(input.Items); err != nil {
		return nil, err
	}

	// Confirm the requested ids against the product directory
	ids := domain.DistinctProductIDs(input.Items)
	products, err := uc.products.ValidateProducts(ctx, ids)
	if err != nil {
		uc.log.WithContext(ctx).Error("product validation failed",
			zap.Strings("product_ids", ids),
			zap.Error(err),
		)
		return nil, domain.ErrCreateFailed
	}

	order, err := domain.BuildOrder(input.Items, products)
	if err != nil {
		// A lookup miss after a successful validate call means the
		// validation and aggregation steps disagree; log it apart
		// from ordinary validation failures.
		uc.log.WithContext(ctx).Error("order aggregate inconsistency",
			zap.Strings("product_ids", ids),
			zap.Error(err),
		)
		return nil, domain.ErrCreateFailed
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		uc.log.WithContext(ctx).Error("failed to persist order",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		return nil, domain.ErrCreateFailed
	}

	// Publish event (async, don't fail on error)
	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCreated(ctx, order); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order created event",
				zap.Error(err),
				zap.String("order_id", order.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order created",
		zap.String("order_id", order.ID),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.Int("total_items", order.TotalItems),
	)

	return newOrderView(order, products), nil
}

// FindAllInput represents the pagination and filter input for FindAll
type FindAllInput struct {
	Status *domain.OrderStatus
	Page   int
	Limit  int
}

// FindAll returns a page of orders plus pagination metadata
func (uc *OrderUseCase) FindAll(ctx context.Context, input FindAllInput) (*OrderPage, error) {
	page, limit := input.Page, input.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := uc.repo.Count(ctx, input.Status)
	if err != nil {
		return nil, err
	}

	orders, err := uc.repo.List(ctx, input.Status, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	views := make([]*OrderView, len(orders))
	for i, order := range orders {
		views[i] = newOrderView(order, nil)
	}

	lastPage := int((total + int64(limit) - 1) / int64(limit))

	return &OrderPage{
		Data: views,
		Meta: PageMeta{
			Total:    total,
			Page:     page,
			LastPage: lastPage,
		},
	}, nil
}

// FindOne retrieves an order by id, enriched with product names resolved
// from the directory. The not-found check runs before the remote call so
// a missing order never costs a network round trip.
func (uc *OrderUseCase) FindOne(ctx context.Context, id string) (*OrderView, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refs := make([]domain.ItemRequest, len(order.Items))
	for i, item := range order.Items {
		refs[i] = domain.ItemRequest{ProductID: item.ProductID}
	}

	products, err := uc.products.ValidateProducts(ctx, domain.DistinctProductIDs(refs))
	if err != nil {
		uc.log.WithContext(ctx).Error("product resolution failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "failed to resolve products for order")
	}

	return newOrderView(order, products), nil
}

// ChangeStatusInput represents the input for a status transition
type ChangeStatusInput struct {
	ID     string
	Status domain.OrderStatus
}

// ChangeStatus transitions an order to a new status. Requesting the
// current status is a no-op that returns the order unchanged.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, input ChangeStatusInput) (*OrderView, error) {
	view, err := uc.FindOne(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if view.Status == input.Status {
		return view, nil
	}

	previous := view.Status
	updated, err := uc.repo.UpdateStatus(ctx, input.ID, input.Status)
	if err != nil {
		return nil, err
	}

	view.Status = updated.Status
	view.UpdatedAt = updated.UpdatedAt

	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderStatusChanged(ctx, updated, previous); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order status changed event",
				zap.Error(err),
				zap.String("order_id", updated.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order status changed",
		zap.String("order_id", updated.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(updated.Status)),
	)

	return view, nil
}

// newOrderView re-joins product names from the directory response onto
// the order's items. A nil product list yields items without names.
func newOrderView(order *domain.Order, products []domain.Product) *OrderView {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	view := &OrderView{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Status:      order.Status,
		Paid:        order.Paid,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}

	for _, item := range order.Items {
		view.Items = append(view.Items, OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      names[item.ProductID],
		})
	}

	return view
}
