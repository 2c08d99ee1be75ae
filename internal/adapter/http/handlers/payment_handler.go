package handlers

import (
	"errors"
	"log"
	"net/http"

	"cobre_payment_plug/internal/adapter/http/dto/request"
	"cobre_payment_plug/internal/adapter/http/dto/response"
	"cobre_payment_plug/internal/usecase"
	"cobre_payment_plug/internal/usecase/interfaces"
	"cobre_payment_plug/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment initiation requests.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// ProcessPayment creates a Cobre payment link and records the PENDING
// transaction.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req request.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[payment][handler] invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	initiated, err := h.usecase.InitiatePayment(c.Request.Context(), req.ToPaymentLinkRequest())
	if err != nil {
		log.Printf("[payment][handler] initiate failed product_reference=%s err=%v", req.ProductReference, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] initiate success payment_reference=%s", initiated.PaymentReference)

	c.JSON(http.StatusOK, response.FromPaymentInitiation(initiated))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrDuplicatePaymentReference):
		return pkg.NewDomainErrorSimple("DUPLICATE_PAYMENT_REFERENCE", "Payment reference already registered", http.StatusConflict)
	default:
		// Gateway and persistence failures alike: the caller gets a generic
		// error, internal detail stays in the logs.
		return pkg.NewDomainError("PAYMENT_PROCESSING_ERROR", "Error procesando el pago", err, http.StatusInternalServerError)
	}
}
