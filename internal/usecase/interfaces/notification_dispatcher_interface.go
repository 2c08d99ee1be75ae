package interfaces

import "context"

// FulfillmentNotification is the data emailed to a buyer after allocation.
type FulfillmentNotification struct {
	Email                  string
	ProductName            string
	ActivationKey          string
	ActivationInstructions string
	SupportContact         string
}

// INotificationDispatcher abstracts the transactional-email provider.
//
// Failures must be surfaced to the caller; they never unwind an allocation
// or order that already committed.
type INotificationDispatcher interface {
	SendFulfillment(ctx context.Context, n FulfillmentNotification) error
	SendWaitlisted(ctx context.Context, email string) error
}
