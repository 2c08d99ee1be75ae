package request

import "cobre_payment_plug/internal/usecase"

// WebhookConfirmationRequest is the payload Cobre posts to /webhook.
type WebhookConfirmationRequest struct {
	NoveltyUUID       string `json:"noveltyUuid" binding:"required"`
	NoveltyDetailUUID string `json:"noveltyDetailUuid" binding:"required"`
	TransactionResult string `json:"transactionResult" binding:"required"`
	Checksum          string `json:"checksum" binding:"required"`
}

func (r WebhookConfirmationRequest) ToConfirmation() usecase.WebhookConfirmation {
	return usecase.WebhookConfirmation{
		NoveltyUUID:       r.NoveltyUUID,
		NoveltyDetailUUID: r.NoveltyDetailUUID,
		TransactionResult: r.TransactionResult,
		Checksum:          r.Checksum,
	}
}
