package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cobre_payment_plug/internal/adapter/http/handlers/mocks"
	"cobre_payment_plug/internal/usecase"
	"cobre_payment_plug/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const validPaymentBody = `{
	"product_reference": "prod-1",
	"amount": 50000,
	"email": "buyer@test.com",
	"fullName": "Buyer Test",
	"cellPhone": "3001234567"
}`

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_ProcessPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/process-payment", h.ProcessPayment)

		w := postJSON(r, "/process-payment", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/process-payment", h.ProcessPayment)

		w := postJSON(r, "/process-payment", `{"amount": 100}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/process-payment", h.ProcessPayment)

		w := postJSON(r, "/process-payment", `{"product_reference":"prod-1","amount":100,"email":"not-an-email","fullName":"X"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/process-payment", h.ProcessPayment)

		uc.EXPECT().InitiatePayment(gomock.Any(), gomock.AssignableToTypeOf(interfaces.PaymentLinkRequest{})).DoAndReturn(
			func(_ context.Context, req interfaces.PaymentLinkRequest) (usecase.PaymentInitiation, error) {
				if req.ProductReference != "prod-1" || req.Amount != 50000 {
					t.Fatalf("unexpected request: %+v", req)
				}
				return usecase.PaymentInitiation{LinkURL: "https://pay/x", PaymentReference: "abc"}, nil
			},
		)

		w := postJSON(r, "/process-payment", validPaymentBody)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["message"] != "Pago iniciado exitosamente" {
			t.Fatalf("unexpected message: %s", w.Body.String())
		}
		if body["linkUrl"] != "https://pay/x" || body["paymentReference"] != "abc" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("duplicate reference maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/process-payment", h.ProcessPayment)

		uc.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(usecase.PaymentInitiation{}, interfaces.ErrDuplicatePaymentReference)

		w := postJSON(r, "/process-payment", validPaymentBody)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("gateway failure maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/process-payment", h.ProcessPayment)

		uc.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(usecase.PaymentInitiation{}, errors.New("cobre down"))

		w := postJSON(r, "/process-payment", validPaymentBody)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["message"] != "Error procesando el pago" {
			t.Fatalf("internal detail must not leak: %s", w.Body.String())
		}
	})
}

func TestMapPaymentError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidPaymentRequest, http.StatusBadRequest},
		{interfaces.ErrDuplicatePaymentReference, http.StatusConflict},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapPaymentError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
