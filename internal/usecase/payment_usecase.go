package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cobre_payment_plug/internal/domain/entities"
	"cobre_payment_plug/internal/usecase/interfaces"
)

var (
	ErrInvalidPaymentRequest = errors.New("invalid payment request")
)

// PaymentInitiation is what the caller gets back after a payment link was
// created and the PENDING transaction recorded.
type PaymentInitiation struct {
	LinkURL          string
	PaymentReference string
}

// IPaymentUseCase encapsulates payment initiation: create a Cobre payment
// link and record the attempt as a PENDING transaction keyed by the
// processor-issued reference. The webhook flow later resolves it.

type IPaymentUseCase interface {
	InitiatePayment(ctx context.Context, req interfaces.PaymentLinkRequest) (PaymentInitiation, error)
}

type PaymentUseCase struct {
	txRepo  interfaces.ITransactionRepository
	gateway interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(txRepo interfaces.ITransactionRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{txRepo: txRepo, gateway: gateway}
}

func (u *PaymentUseCase) InitiatePayment(ctx context.Context, req interfaces.PaymentLinkRequest) (PaymentInitiation, error) {
	req.ProductReference = strings.TrimSpace(req.ProductReference)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.ProductReference == "" || req.Email == "" || req.FullName == "" {
		log.Printf("[payment][usecase] missing required fields product_reference=%q email=%q", req.ProductReference, req.Email)
		return PaymentInitiation{}, ErrInvalidPaymentRequest
	}
	if req.Amount <= 0 {
		log.Printf("[payment][usecase] non-positive amount amount=%v", req.Amount)
		return PaymentInitiation{}, ErrInvalidPaymentRequest
	}
	if req.Currency == "" {
		req.Currency = "COP"
	}

	log.Printf("[payment][usecase] initiate start product_reference=%s amount=%.2f", req.ProductReference, req.Amount)

	token, err := u.gateway.GetAccessToken(ctx)
	if err != nil {
		log.Printf("[payment][usecase] token acquisition failed err=%v", err)
		return PaymentInitiation{}, err
	}

	link, err := u.gateway.CreatePaymentLink(ctx, token, req)
	if err != nil {
		log.Printf("[payment][usecase] payment link creation failed product_reference=%s err=%v", req.ProductReference, err)
		return PaymentInitiation{}, err
	}

	now := time.Now().UTC()
	t := entities.Transaction{
		PaymentReference: link.PaymentReference,
		Amount:           req.Amount,
		Currency:         req.Currency,
		Status:           entities.TransactionStatusPending,
		FullName:         req.FullName,
		Email:            req.Email,
		CellPhone:        req.CellPhone,
		Document:         req.Document,
		DocumentType:     req.DocumentType,
		Description:      req.Description,
		ProductReference: req.ProductReference,
		PaymentMethod:    "cobre",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := u.txRepo.Create(ctx, t); err != nil {
		log.Printf("[payment][usecase] transaction create failed payment_reference=%s err=%v", link.PaymentReference, err)
		return PaymentInitiation{}, err
	}

	log.Printf("[payment][usecase] initiate success payment_reference=%s link=%s", link.PaymentReference, link.LinkURL)
	return PaymentInitiation{LinkURL: link.LinkURL, PaymentReference: link.PaymentReference}, nil
}
