package infrastructure

import (
	"context"
	"encoding/json"

	"go-orders/internal/orders/application"
	"go-orders/internal/orders/domain"
	"go-orders/pkg/errors"
	"go-orders/pkg/natsrpc"
)

// Subjects served by the orders service
const (
	SubjectCreateOrder       = "orders.create"
	SubjectFindAllOrders     = "orders.find_all"
	SubjectFindOneOrder      = "orders.find_one"
	SubjectChangeOrderStatus = "orders.change_status"
)

// RPCHandler translates inbound bus requests into use case calls
type RPCHandler struct {
	useCase *application.OrderUseCase
}

// NewRPCHandler creates a new RPC handler
func NewRPCHandler(useCase *application.OrderUseCase) *RPCHandler {
	return &RPCHandler{useCase: useCase}
}

// Register subscribes all order subjects on the server
func (h *RPCHandler) Register(server *natsrpc.Server) error {
	handlers := map[string]natsrpc.HandlerFunc{
		SubjectCreateOrder:       h.CreateOrder,
		SubjectFindAllOrders:     h.FindAllOrders,
		SubjectFindOneOrder:      h.FindOneOrder,
		SubjectChangeOrderStatus: h.ChangeOrderStatus,
	}

	for subject, handler := range handlers {
		if err := server.Handle(subject, handler); err != nil {
			return err
		}
	}
	return nil
}

// OrderItemRequest is a single requested order line
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the payload for orders.create
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// FindAllOrdersRequest is the payload for orders.find_all
type FindAllOrdersRequest struct {
	Status string `json:"status,omitempty"`
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// FindOneOrderRequest is the payload for orders.find_one
type FindOneOrderRequest struct {
	ID string `json:"id"`
}

// ChangeOrderStatusRequest is the payload for orders.change_status
type ChangeOrderStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateOrder handles orders.create
func (h *RPCHandler) CreateOrder(ctx context.Context, data []byte) (interface{}, error) {
	var req CreateOrderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.NewValidation("invalid request payload", err.Error())
	}

	items := make([]domain.ItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return h.useCase.CreateOrder(ctx, application.CreateOrderInput{Items: items})
}

// FindAllOrders handles orders.find_all
func (h *RPCHandler) FindAllOrders(ctx context.Context, data []byte) (interface{}, error) {
	var req FindAllOrdersRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, errors.NewValidation("invalid request payload", err.Error())
		}
	}

	input := application.FindAllInput{
		Page:  req.Page,
		Limit: req.Limit,
	}

	if req.Status != "" {
		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		input.Status = &status
	}

	return h.useCase.FindAll(ctx, input)
}

// FindOneOrder handles orders.find_one
func (h *RPCHandler) FindOneOrder(ctx context.Context, data []byte) (interface{}, error) {
	var req FindOneOrderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.NewValidation("invalid request payload", err.Error())
	}
	if req.ID == "" {
		return nil, errors.NewValidation("id is required", nil)
	}

	return h.useCase.FindOne(ctx, req.ID)
}

// ChangeOrderStatus handles orders.change_status
func (h *RPCHandler) ChangeOrderStatus(ctx context.Context, data []byte) (interface{}, error) {
	var req ChangeOrderStatusRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.NewValidation("invalid request payload", err.Error())
	}
	if req.ID == "" {
		return nil, errors.NewValidation("id is required", nil)
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	return h.useCase.ChangeStatus(ctx, application.ChangeStatusInput{
		ID:     req.ID,
		Status: status,
	})
}
