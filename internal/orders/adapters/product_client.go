package adapters

import (
	"context"

	"github.com/shopspring/decimal"

	"go-orders/internal/orders/domain"
	"go-orders/pkg/natsrpc"
)

// SubjectValidateProducts is the product directory's validation subject
const SubjectValidateProducts = "products.validate"

// NATSProductClient implements ProductClient over the message bus
type NATSProductClient struct {
	client  *natsrpc.Client
	subject string
}

// NewNATSProductClient creates a client for the product directory service
func NewNATSProductClient(client *natsrpc.Client) *NATSProductClient {
	return &NATSProductClient{
		client:  client,
		subject: SubjectValidateProducts,
	}
}

type productRecord struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ValidateProducts resolves the given ids against the product directory.
// The directory replies with an error for any unknown id, which the RPC
// client surfaces as a failure of the whole call.
func (c *NATSProductClient) ValidateProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	var records []productRecord
	if err := c.client.Request(ctx, c.subject, ids, &records); err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(records))
	for i, rec := range records {
		products[i] = domain.Product{
			ID:    rec.ID,
			Name:  rec.Name,
			Price: rec.Price,
		}
	}

	return products, nil
}
