package request

import (
	"strings"

	"cobre_payment_plug/internal/usecase/interfaces"
)

// ProcessPaymentRequest is the payload for POST /process-payment. Field names
// follow the Cobre integration contract (mixed snake/camel case is theirs).
type ProcessPaymentRequest struct {
	ProductReference string  `json:"product_reference" binding:"required"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	Email            string  `json:"email" binding:"required,email"`
	FullName         string  `json:"fullName" binding:"required"`
	CellPhone        string  `json:"cellPhone"`
	Document         string  `json:"document"`
	DocumentType     string  `json:"documentType"`
	Description      string  `json:"description"`
	Currency         string  `json:"currency"`
}

func (r ProcessPaymentRequest) ToPaymentLinkRequest() interfaces.PaymentLinkRequest {
	return interfaces.PaymentLinkRequest{
		ProductReference: strings.TrimSpace(r.ProductReference),
		Amount:           r.Amount,
		Currency:         strings.TrimSpace(r.Currency),
		Email:            strings.TrimSpace(r.Email),
		FullName:         strings.TrimSpace(r.FullName),
		CellPhone:        r.CellPhone,
		Document:         r.Document,
		DocumentType:     r.DocumentType,
		Description:      r.Description,
	}
}
