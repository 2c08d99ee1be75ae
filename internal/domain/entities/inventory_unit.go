package entities

import "time"

// InventoryUnitStatus is the sellable state of a unit.

type InventoryUnitStatus string

const (
	InventoryUnitStatusAvailable InventoryUnitStatus = "AVAILABLE"
	InventoryUnitStatusSold      InventoryUnitStatus = "SOLD"
)

// InventoryUnit is one sellable unit persisted in DynamoDB.
//
// Storage model:
//   - PK: id
//   - GSI1 (product_reference-index): product_reference
//
// ProductReference is not unique by itself: several units may carry the same
// reference (stock of one SKU). The AVAILABLE -> SOLD transition only happens
// through the allocation path, which is a conditional update so at most one
// transaction ever sells a given unit.

type InventoryUnit struct {
	ID                     string              `json:"id"`
	ProductReference       string              `json:"product_reference"`
	Name                   string              `json:"name"`
	PriceAmount            float64             `json:"price_amount"`
	ActivationKey          string              `json:"activation_key,omitempty"`
	ActivationInstructions string              `json:"activation_instructions,omitempty"`
	SellerMail             string              `json:"seller_mail,omitempty"`
	Status                 InventoryUnitStatus `json:"status"`
	CreatedAt              time.Time           `json:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at"`
}
