package interfaces

import (
	"context"
	"encoding/json"
)

// PaymentLinkRequest carries the buyer and product data sent to Cobre when
// creating a payment link.
type PaymentLinkRequest struct {
	ProductReference string
	Amount           float64
	Currency         string
	Email            string
	FullName         string
	CellPhone        string
	Document         string
	DocumentType     string
	Description      string
}

// PaymentLink is the relevant subset of Cobre's payment creation response.
// PaymentReference is the cashInNoveltyDetailUuid later echoed back as the
// webhook's noveltyDetailUuid.
type PaymentLink struct {
	LinkURL          string
	PaymentReference string
}

// IPaymentGateway abstracts the Cobre payment processor.
//
// All operations are pass-through: non-2xx responses and network errors
// propagate to the caller unmodified, with no retries inside this layer.
// RegisterWebhook is one-time setup, not part of the hot path.
type IPaymentGateway interface {
	GetAccessToken(ctx context.Context) (string, error)
	CreatePaymentLink(ctx context.Context, token string, req PaymentLinkRequest) (PaymentLink, error)
	GetPaymentLinkInfo(ctx context.Context, token, paymentReference string) (json.RawMessage, error)
	RegisterWebhook(ctx context.Context, endpointURL, secret string) error
}
