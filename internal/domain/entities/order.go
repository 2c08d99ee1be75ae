package entities

import "time"

// Order is the fulfillment record linking a completed transaction to the
// inventory unit allocated for it.
//
// Storage model (DynamoDB):
//   - PK: id
//
// It references the unit and the transaction by identity only and is written
// exactly once, immediately after a successful allocation. Its existence is
// the durable proof that allocation and notification were initiated.

type Order struct {
	ID               string    `json:"id"`
	InventoryUnitID  string    `json:"inventory_unit_id"`
	EmailToSend      string    `json:"email_to_send"`
	PaymentReference string    `json:"payment_reference"`
	CreatedAt        time.Time `json:"created_at"`
}
