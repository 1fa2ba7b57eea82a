package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-orders/pkg/errors"
)

func TestBuildOrder(t *testing.T) {
	items := []ItemRequest{
		{ProductID: "A", Quantity: 2},
		{ProductID: "B", Quantity: 1},
	}
	products := []Product{
		{ID: "A", Name: "Widget", Price: decimal.NewFromInt(10)},
		{ID: "B", Name: "Gadget", Price: decimal.NewFromInt(5)},
	}

	order, err := BuildOrder(items, products)
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(25)), "total amount %s", order.TotalAmount)
	assert.Equal(t, 3, order.TotalItems)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.False(t, order.Paid)
	assert.NotEmpty(t, order.ID)

	require.Len(t, order.Items, 2)
	for i, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.Equal(t, items[i].ProductID, item.ProductID)
		assert.Equal(t, items[i].Quantity, item.Quantity)
		assert.NotEmpty(t, item.ID)
	}
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(10)))
	assert.True(t, order.Items[1].Price.Equal(decimal.NewFromInt(5)))
}

func TestBuildOrder_PreservesPrecision(t *testing.T) {
	// 0.1 * 3 must be exactly 0.3, not a float artifact
	items := []ItemRequest{{ProductID: "A", Quantity: 3}}
	products := []Product{{ID: "A", Name: "Penny", Price: decimal.RequireFromString("0.1")}}

	order, err := BuildOrder(items, products)
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("0.3")), "total amount %s", order.TotalAmount)
}

func TestBuildOrder_LookupMissIsInternalFault(t *testing.T) {
	items := []ItemRequest{{ProductID: "Z", Quantity: 1}}

	_, err := BuildOrder(items, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInternal), "got %v", err)
	assert.Contains(t, err.Error(), "Z")
}

func TestValidateItems(t *testing.T) {
	assert.ErrorIs(t, ValidateItems(nil), ErrNoItems)
	assert.ErrorIs(t, ValidateItems([]ItemRequest{{ProductID: "", Quantity: 1}}), ErrProductIDRequired)
	assert.ErrorIs(t, ValidateItems([]ItemRequest{{ProductID: "A", Quantity: 0}}), ErrInvalidQuantity)
	assert.ErrorIs(t, ValidateItems([]ItemRequest{{ProductID: "A", Quantity: -2}}), ErrInvalidQuantity)
	assert.NoError(t, ValidateItems([]ItemRequest{{ProductID: "A", Quantity: 1}}))
}

func TestDistinctProductIDs(t *testing.T) {
	items := []ItemRequest{
		{ProductID: "A", Quantity: 1},
		{ProductID: "B", Quantity: 1},
		{ProductID: "A", Quantity: 2},
	}

	assert.Equal(t, []string{"A", "B"}, DistinctProductIDs(items))
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "CANCELLED", "DELIVERED"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(valid), status)
	}

	_, err := ParseStatus("SHIPPED")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeValidation), "got %v", err)
}
