package entities

import "time"

// TransactionStatus represents the lifecycle of a payment attempt.
//
// Transitions are monotonic: PENDING -> COMPLETED or PENDING -> FAILED,
// driven by the Cobre webhook confirmation. There is no transition out of a
// terminal state.

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// IsTerminal reports whether the status admits no further transition.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// Transaction is one payment attempt persisted in DynamoDB.
//
// Storage model:
//   - PK: payment_reference (issued by Cobre as cashInNoveltyDetailUuid)
//
// PaymentReference uniquely identifies at most one Transaction; the create
// path enforces this with a conditional put, and the terminal transition is a
// single conditional update so duplicate webhook delivery stays idempotent.

type Transaction struct {
	PaymentReference string            `json:"payment_reference"`
	Amount           float64           `json:"amount"`
	Currency         string            `json:"currency"`
	Status           TransactionStatus `json:"status"`
	FullName         string            `json:"full_name"`
	Email            string            `json:"email"`
	CellPhone        string            `json:"cell_phone,omitempty"`
	Document         string            `json:"document,omitempty"`
	DocumentType     string            `json:"document_type,omitempty"`
	Description      string            `json:"description,omitempty"`
	ProductReference string            `json:"product_reference"`
	PaymentMethod    string            `json:"payment_method"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
