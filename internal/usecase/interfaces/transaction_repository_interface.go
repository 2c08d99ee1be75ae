package interfaces

import (
	"context"
	"errors"

	"cobre_payment_plug/internal/domain/entities"
)

var (
	// ErrDuplicatePaymentReference is returned when a transaction with the
	// same payment reference already exists.
	ErrDuplicatePaymentReference = errors.New("duplicate payment reference")
	// ErrInvalidStatusTransition is returned when a terminal transaction is
	// asked to move to a different terminal status.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// ITransactionRepository abstracts DynamoDB persistence for Transaction.
//
// MarkTerminal must be a single atomic conditional update keyed on the
// current PENDING status, never a read followed by a separate write:
//   - changed == true  -> this call performed the PENDING -> status move
//   - changed == false -> the transaction was already in status (harmless
//     replay of the same confirmation)
//   - ErrInvalidStatusTransition -> already terminal with a different status
//
// Exactly one of N concurrent callers observes changed == true.

type ITransactionRepository interface {
	Create(ctx context.Context, t entities.Transaction) (entities.Transaction, error)
	GetByReference(ctx context.Context, paymentReference string) (entities.Transaction, error)
	MarkTerminal(ctx context.Context, paymentReference string, status entities.TransactionStatus) (changed bool, err error)
}
