package interfaces

import (
	"context"

	"cobre_payment_plug/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Create has no idempotency guard of its own; the reconciliation flow only
// reaches it after an exclusive terminal-state transition plus an exclusive
// allocation, which already enforce at-most-once.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
}
