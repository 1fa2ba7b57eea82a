package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemRequest is a client-supplied order line before pricing
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// ValidateItems checks client input before any remote call is made
func ValidateItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, item := range items {
		if item.ProductID == "" {
			return ErrProductIDRequired
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// DistinctProductIDs returns the deduplicated product ids of the request
// items, preserving first-seen order
func DistinctProductIDs(items []ItemRequest) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// BuildOrder computes the order aggregate from the request items and the
// resolved product snapshot: each line captures the directory price, and
// TotalAmount/TotalItems are summed without losing precision. Pure, no I/O.
func BuildOrder(items []ItemRequest, products []Product) (*Order, error) {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	now := time.Now()
	order := &Order{
		ID:        uuid.New().String(),
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	totalAmount := decimal.Zero
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			// The resolved snapshot is guaranteed to cover every
			// requested id; a miss here is a broken invariant
			// between validation and aggregation, not a user error.
			return nil, NewProductLookupFault(item.ProductID)
		}

		order.Items = append(order.Items, OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})

		totalAmount = totalAmount.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		order.TotalItems += item.Quantity
	}

	order.TotalAmount = totalAmount
	return order, nil
}
