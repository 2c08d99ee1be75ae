package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cobre_payment_plug/internal/infrastructure/config"
	"cobre_payment_plug/internal/usecase/interfaces"
)

func testDispatcher(apiURL string) *BrevoDispatcher {
	d := NewBrevoDispatcher(config.Config{
		BrevoAPIKey:  "brevo-key",
		SenderName:   "Innovate Learning",
		SenderEmail:  "sender@test.com",
		SupportEmail: "support@test.com",
	})
	d.apiURL = apiURL
	return d
}

func TestBrevoDispatcher_SendFulfillment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var captured brevoEmail
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("api-key") != "brevo-key" {
				t.Fatalf("missing api-key header")
			}
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		d := testDispatcher(srv.URL)
		err := d.SendFulfillment(context.Background(), interfaces.FulfillmentNotification{
			Email:                  "buyer@test.com",
			ProductName:            "Curso de Excel",
			ActivationKey:          "KEY-123",
			ActivationInstructions: "Ingresa la clave en la plataforma.",
			SupportContact:         "seller@test.com",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if captured.Sender.Email != "sender@test.com" || captured.To[0].Email != "buyer@test.com" {
			t.Fatalf("unexpected addressing: %+v", captured)
		}
		if !strings.Contains(captured.HTMLContent, "KEY-123") {
			t.Fatalf("activation key missing from body")
		}
		if !strings.Contains(captured.HTMLContent, "seller@test.com") {
			t.Fatalf("seller support contact missing from body")
		}
	})

	t.Run("defaults when unit has no instructions or seller", func(t *testing.T) {
		var captured brevoEmail
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&captured)
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		d := testDispatcher(srv.URL)
		err := d.SendFulfillment(context.Background(), interfaces.FulfillmentNotification{
			Email:         "buyer@test.com",
			ProductName:   "Curso",
			ActivationKey: "KEY-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(captured.HTMLContent, "No hay instrucciones de activación.") {
			t.Fatalf("expected default instructions, body: %s", captured.HTMLContent)
		}
		if !strings.Contains(captured.HTMLContent, "support@test.com") {
			t.Fatalf("expected configured support fallback, body: %s", captured.HTMLContent)
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		d := testDispatcher(srv.URL)
		err := d.SendFulfillment(context.Background(), interfaces.FulfillmentNotification{Email: "buyer@test.com"})
		if !errors.Is(err, ErrSendEmail) {
			t.Fatalf("expected ErrSendEmail, got %v", err)
		}
	})
}

func TestBrevoDispatcher_SendWaitlisted(t *testing.T) {
	var captured brevoEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	d := testDispatcher(srv.URL)
	if err := d.SendWaitlisted(context.Background(), "buyer@test.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.To[0].Email != "buyer@test.com" {
		t.Fatalf("unexpected recipient: %+v", captured.To)
	}
	if !strings.Contains(captured.HTMLContent, "lista de espera") {
		t.Fatalf("expected waitlist body, got: %s", captured.HTMLContent)
	}
	if !strings.Contains(captured.HTMLContent, whatsappLink) {
		t.Fatalf("expected whatsapp link in body")
	}
}
