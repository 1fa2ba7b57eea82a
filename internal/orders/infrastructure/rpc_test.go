package infrastructure

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"go-orders/internal/orders/application"
	"go-orders/internal/orders/domain"
	"go-orders/pkg/errors"
	"go-orders/pkg/logger"
)

type stubRepo struct {
	orders map[string]*domain.Order
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: make(map[string]*domain.Order)}
}

func (s *stubRepo) Create(ctx context.Context, order *domain.Order) error {
	s.orders[order.ID] = order
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, domain.NewOrderNotFound(id)
	}
	return order, nil
}

func (s *stubRepo) List(ctx context.Context, status *domain.OrderStatus, offset, limit int) ([]*domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) Count(ctx context.Context, status *domain.OrderStatus) (int64, error) {
	return 0, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, domain.NewOrderNotFound(id)
	}
	order.Status = status
	return order, nil
}

type stubProducts struct{}

func (stubProducts) ValidateProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	products := make([]domain.Product, len(ids))
	for i, id := range ids {
		products[i] = domain.Product{ID: id, Name: "Product " + id, Price: decimal.NewFromInt(7)}
	}
	return products, nil
}

func newTestHandler() *RPCHandler {
	useCase := application.NewOrderUseCase(newStubRepo(), stubProducts{}, nil, logger.New("test", "error"))
	return NewRPCHandler(useCase)
}

func TestCreateOrder_DecodesPayload(t *testing.T) {
	handler := newTestHandler()

	payload := []byte(`{"items":[{"product_id":"A","quantity":2},{"product_id":"B","quantity":1}]}`)
	result, err := handler.CreateOrder(context.Background(), payload)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	view, ok := result.(*application.OrderView)
	if !ok {
		t.Fatalf("expected *application.OrderView, got %T", result)
	}
	if !view.TotalAmount.Equal(decimal.NewFromInt(21)) {
		t.Errorf("expected total 21, got %s", view.TotalAmount)
	}
	if view.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", view.TotalItems)
	}
}

func TestCreateOrder_MalformedPayload(t *testing.T) {
	handler := newTestHandler()

	_, err := handler.CreateOrder(context.Background(), []byte(`{"items":`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestFindAllOrders_EmptyPayload(t *testing.T) {
	handler := newTestHandler()

	result, err := handler.FindAllOrders(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	page, ok := result.(*application.OrderPage)
	if !ok {
		t.Fatalf("expected *application.OrderPage, got %T", result)
	}
	if page.Meta.Page != 1 {
		t.Errorf("expected default page 1, got %d", page.Meta.Page)
	}
}

func TestFindAllOrders_UnknownStatus(t *testing.T) {
	handler := newTestHandler()

	_, err := handler.FindAllOrders(context.Background(), []byte(`{"status":"SHIPPED"}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestFindOneOrder_RequiresID(t *testing.T) {
	handler := newTestHandler()

	_, err := handler.FindOneOrder(context.Background(), []byte(`{}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestChangeOrderStatus_UnknownStatus(t *testing.T) {
	handler := newTestHandler()

	_, err := handler.ChangeOrderStatus(context.Background(), []byte(`{"id":"x","status":"SHIPPED"}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
