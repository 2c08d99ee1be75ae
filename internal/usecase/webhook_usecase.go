package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"cobre_payment_plug/internal/domain/entities"
	"cobre_payment_plug/internal/usecase/interfaces"
	"cobre_payment_plug/pkg"

	"github.com/google/uuid"
)

var (
	ErrInvalidChecksum     = errors.New("invalid webhook checksum")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// WebhookConfirmation is the authenticated content of a Cobre confirmation.
// NoveltyDetailUUID is the payment reference issued at link creation.
type WebhookConfirmation struct {
	NoveltyUUID       string
	NoveltyDetailUUID string
	TransactionResult string
	Checksum          string
}

type ConfirmationOutcome string

const (
	OutcomeFulfilled  ConfirmationOutcome = "fulfilled"
	OutcomeWaitlisted ConfirmationOutcome = "waitlisted"
	OutcomeFailed     ConfirmationOutcome = "failed"
	OutcomeReplayed   ConfirmationOutcome = "replayed"
)

// ConfirmationResult reports how a confirmation was resolved. Notified is
// false when the buyer email could not be dispatched; the allocation and
// order stay committed either way.
type ConfirmationResult struct {
	Status   entities.TransactionStatus
	Outcome  ConfirmationOutcome
	OrderID  string
	Notified bool
}

// IWebhookUseCase is the reconciliation state machine: it converts a
// checksum-verified confirmation into a terminal transaction state and, for a
// newly completed payment, exactly one allocation + order + notification.

type IWebhookUseCase interface {
	ProcessConfirmation(ctx context.Context, c WebhookConfirmation) (ConfirmationResult, error)
}

type WebhookUseCase struct {
	txRepo        interfaces.ITransactionRepository
	inventoryRepo interfaces.IInventoryRepository
	orderRepo     interfaces.IOrderRepository
	dispatcher    interfaces.INotificationDispatcher
	webhookSecret string
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(
	txRepo interfaces.ITransactionRepository,
	inventoryRepo interfaces.IInventoryRepository,
	orderRepo interfaces.IOrderRepository,
	dispatcher interfaces.INotificationDispatcher,
	webhookSecret string,
) *WebhookUseCase {
	return &WebhookUseCase{
		txRepo:        txRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		dispatcher:    dispatcher,
		webhookSecret: webhookSecret,
	}
}

// ProcessConfirmation implements the confirmation flow:
//
//  1. verify the checksum (sole trust boundary, nothing mutates on mismatch)
//  2. map transactionResult: "PAID" -> COMPLETED, anything else -> FAILED
//  3. load the transaction by payment reference
//  4. mark it terminal via the repository's conditional update
//  5. only when this call moved it to COMPLETED: allocate a unit, record the
//     order and email the buyer (or the waitlist mail when nothing matched)
//
// A replayed confirmation stops after step 4 with zero side effects. A
// notification failure after the order committed is logged and reported in
// the result but does not fail the confirmation.
func (u *WebhookUseCase) ProcessConfirmation(ctx context.Context, c WebhookConfirmation) (ConfirmationResult, error) {
	if !pkg.VerifyChecksum(c.NoveltyUUID, c.NoveltyDetailUUID, u.webhookSecret, c.Checksum) {
		log.Printf("[webhook][usecase] checksum mismatch novelty_detail_uuid=%s", c.NoveltyDetailUUID)
		return ConfirmationResult{}, ErrInvalidChecksum
	}

	status := entities.TransactionStatusFailed
	if c.TransactionResult == "PAID" {
		status = entities.TransactionStatusCompleted
	}
	log.Printf("[webhook][usecase] confirmation start payment_reference=%s result=%s status=%s", c.NoveltyDetailUUID, c.TransactionResult, status)

	tx, err := u.txRepo.GetByReference(ctx, c.NoveltyDetailUUID)
	if err != nil {
		return ConfirmationResult{}, err
	}
	if tx.PaymentReference == "" {
		log.Printf("[webhook][usecase] transaction not found payment_reference=%s", c.NoveltyDetailUUID)
		return ConfirmationResult{}, ErrTransactionNotFound
	}

	changed, err := u.txRepo.MarkTerminal(ctx, tx.PaymentReference, status)
	if err != nil {
		log.Printf("[webhook][usecase] mark terminal failed payment_reference=%s status=%s err=%v", tx.PaymentReference, status, err)
		return ConfirmationResult{}, err
	}
	if !changed {
		// Redelivery of a confirmation already applied. Ack with no side
		// effects: the allocation/order/email ran (or was skipped) the first
		// time around.
		log.Printf("[webhook][usecase] confirmation replayed payment_reference=%s status=%s", tx.PaymentReference, status)
		return ConfirmationResult{Status: status, Outcome: OutcomeReplayed, Notified: true}, nil
	}

	if status != entities.TransactionStatusCompleted {
		log.Printf("[webhook][usecase] transaction failed payment_reference=%s result=%s", tx.PaymentReference, c.TransactionResult)
		return ConfirmationResult{Status: status, Outcome: OutcomeFailed, Notified: true}, nil
	}

	unit, err := u.inventoryRepo.AllocateUnit(ctx, tx.ProductReference, tx.Amount)
	if err != nil {
		return ConfirmationResult{}, err
	}

	if unit.ID == "" {
		// Out of stock or price drift: not an error, the buyer goes on the
		// waitlist.
		log.Printf("[webhook][usecase] no eligible unit payment_reference=%s product_reference=%s amount=%.2f", tx.PaymentReference, tx.ProductReference, tx.Amount)
		notified := u.dispatchWaitlist(ctx, tx)
		return ConfirmationResult{Status: status, Outcome: OutcomeWaitlisted, Notified: notified}, nil
	}

	order := entities.Order{
		ID:               uuid.NewString(),
		InventoryUnitID:  unit.ID,
		EmailToSend:      tx.Email,
		PaymentReference: tx.PaymentReference,
		CreatedAt:        time.Now().UTC(),
	}
	if _, err := u.orderRepo.Create(ctx, order); err != nil {
		log.Printf("[webhook][usecase] order create failed payment_reference=%s unit_id=%s err=%v", tx.PaymentReference, unit.ID, err)
		return ConfirmationResult{}, err
	}
	log.Printf("[webhook][usecase] order created order_id=%s unit_id=%s payment_reference=%s", order.ID, unit.ID, tx.PaymentReference)

	notified := u.dispatchFulfillment(ctx, tx, unit)
	return ConfirmationResult{Status: status, Outcome: OutcomeFulfilled, OrderID: order.ID, Notified: notified}, nil
}

func (u *WebhookUseCase) dispatchFulfillment(ctx context.Context, tx entities.Transaction, unit entities.InventoryUnit) bool {
	err := u.dispatcher.SendFulfillment(ctx, interfaces.FulfillmentNotification{
		Email:                  tx.Email,
		ProductName:            unit.Name,
		ActivationKey:          unit.ActivationKey,
		ActivationInstructions: unit.ActivationInstructions,
		SupportContact:         unit.SellerMail,
	})
	if err != nil {
		// The unit is sold and the order recorded; resending the email is an
		// operational concern, not a reason to fail the webhook.
		log.Printf("[webhook][usecase] fulfillment email failed payment_reference=%s email=%s err=%v", tx.PaymentReference, tx.Email, err)
		return false
	}
	return true
}

func (u *WebhookUseCase) dispatchWaitlist(ctx context.Context, tx entities.Transaction) bool {
	if err := u.dispatcher.SendWaitlisted(ctx, tx.Email); err != nil {
		log.Printf("[webhook][usecase] waitlist email failed payment_reference=%s email=%s err=%v", tx.PaymentReference, tx.Email, err)
		return false
	}
	return true
}
