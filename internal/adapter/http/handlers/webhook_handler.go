package handlers

import (
	"errors"
	"log"
	"net/http"

	"cobre_payment_plug/internal/adapter/http/dto/request"
	"cobre_payment_plug/internal/usecase"
	"cobre_payment_plug/internal/usecase/interfaces"
	"cobre_payment_plug/pkg"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives Cobre confirmation callbacks.

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleConfirmation processes one webhook delivery. The response is always
// a definitive status: 200 "OK" on success (idempotent replays included),
// 400 on a bad or unauthenticated payload, 409 on a conflicting redelivery,
// 500 on anomalies and persistence failures.
func (h *WebhookHandler) HandleConfirmation(c *gin.Context) {
	var req request.WebhookConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[webhook][handler] invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] confirmation received novelty_detail_uuid=%s result=%s", req.NoveltyDetailUUID, req.TransactionResult)

	result, err := h.usecase.ProcessConfirmation(c.Request.Context(), req.ToConfirmation())
	if err != nil {
		log.Printf("[webhook][handler] confirmation failed novelty_detail_uuid=%s err=%v", req.NoveltyDetailUUID, err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[webhook][handler] confirmation processed novelty_detail_uuid=%s outcome=%s notified=%t", req.NoveltyDetailUUID, result.Outcome, result.Notified)

	c.String(http.StatusOK, "OK")
}

func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidChecksum):
		return pkg.NewDomainErrorSimple("INVALID_CHECKSUM", "Checksum inválido", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Transaction already resolved with a different result", http.StatusConflict)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		// A confirmation for a payment we never initiated is an upstream
		// anomaly, not a client mistake: surface it loudly.
		return pkg.NewDomainError("TRANSACTION_NOT_FOUND", "Transacción no encontrada para procesar la orden", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
