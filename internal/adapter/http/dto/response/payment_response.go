package response

import "cobre_payment_plug/internal/usecase"

// PaymentInitiatedResponse mirrors the contract the storefront already
// consumes, message included.
type PaymentInitiatedResponse struct {
	Message          string `json:"message"`
	LinkURL          string `json:"linkUrl"`
	PaymentReference string `json:"paymentReference"`
}

func FromPaymentInitiation(p usecase.PaymentInitiation) PaymentInitiatedResponse {
	return PaymentInitiatedResponse{
		Message:          "Pago iniciado exitosamente",
		LinkURL:          p.LinkURL,
		PaymentReference: p.PaymentReference,
	}
}
