package interfaces

import (
	"context"

	"cobre_payment_plug/internal/domain/entities"
)

// IInventoryRepository abstracts DynamoDB persistence for InventoryUnit.
//
// AllocateUnit atomically reserves one AVAILABLE unit matching the product
// reference and the exact expected price, transitioning it to SOLD in the
// same conditional update. A zero-value unit (ID == "") with a nil error
// means nothing was eligible: out of stock or price drift, which the caller
// turns into the waitlist path, never a retry.

type IInventoryRepository interface {
	Create(ctx context.Context, u entities.InventoryUnit) (entities.InventoryUnit, error)
	GetByID(ctx context.Context, id string) (entities.InventoryUnit, error)
	AllocateUnit(ctx context.Context, productReference string, expectedPrice float64) (entities.InventoryUnit, error)
}
