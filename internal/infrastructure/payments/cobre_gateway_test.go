package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cobre_payment_plug/internal/infrastructure/config"
	"cobre_payment_plug/internal/usecase/interfaces"
	"cobre_payment_plug/pkg"
)

func testGateway(cfg config.Config) *CobreGateway {
	cfg.APIKey = "api-key"
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = "https://store/thanks"
	}
	return NewCobreGateway(cfg)
}

func TestCobreGateway_GetAccessToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Fatalf("expected POST, got %s", r.Method)
			}
			if r.Header.Get("X-API-KEY") != "api-key" {
				t.Fatalf("missing api key header")
			}
			if r.Header.Get("Authorization") != "Basic "+pkg.EncodeCredentials("client-id", "client-secret") {
				t.Fatalf("unexpected authorization header: %s", r.Header.Get("Authorization"))
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			if r.PostForm.Get("grant_type") != "client_credentials" {
				t.Fatalf("expected client_credentials grant, got %s", r.PostForm.Get("grant_type"))
			}
			_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
		}))
		defer srv.Close()

		g := testGateway(config.Config{TokensURL: srv.URL})
		token, err := g.GetAccessToken(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "tok-1" {
			t.Fatalf("expected tok-1, got %s", token)
		}
	})

	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		g := testGateway(config.Config{TokensURL: srv.URL})
		_, err := g.GetAccessToken(context.Background())
		if !errors.Is(err, ErrAccessToken) {
			t.Fatalf("expected ErrAccessToken, got %v", err)
		}
	})

	t.Run("empty token in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		g := testGateway(config.Config{TokensURL: srv.URL})
		_, err := g.GetAccessToken(context.Background())
		if !errors.Is(err, ErrAccessToken) {
			t.Fatalf("expected ErrAccessToken, got %v", err)
		}
	})
}

func TestCobreGateway_CreatePaymentLink(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-APIGW-AUTH") != "Bearer tok-1" {
				t.Fatalf("unexpected auth header: %s", r.Header.Get("X-APIGW-AUTH"))
			}
			if r.Header.Get("X-CORRELATION-ID") == "" {
				t.Fatalf("missing correlation id")
			}

			var payload map[string]any
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			if payload["product_reference"] != "prod-1" || payload["customProductReference"] != "prod-1" {
				t.Fatalf("unexpected product references: %+v", payload)
			}
			if payload["currency"] != "COP" {
				t.Fatalf("expected COP default, got %v", payload["currency"])
			}
			if payload["redirectUrl"] != "https://store/thanks" {
				t.Fatalf("expected redirect url, got %v", payload["redirectUrl"])
			}
			refs, ok := payload["references"].([]any)
			if !ok || len(refs) != 1 || refs[0] == "" {
				t.Fatalf("expected one generated reference, got %v", payload["references"])
			}

			_, _ = w.Write([]byte(`{"linkUrl":"https://pay/x","cashInNoveltyDetailUuid":"abc"}`))
		}))
		defer srv.Close()

		g := testGateway(config.Config{PaymentsURL: srv.URL})
		link, err := g.CreatePaymentLink(context.Background(), "tok-1", interfaces.PaymentLinkRequest{
			ProductReference: "prod-1",
			Amount:           50000,
			Email:            "buyer@test.com",
			FullName:         "Buyer Test",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if link.LinkURL != "https://pay/x" || link.PaymentReference != "abc" {
			t.Fatalf("unexpected link: %+v", link)
		}
	})

	t.Run("missing payment reference in response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"linkUrl":"https://pay/x"}`))
		}))
		defer srv.Close()

		g := testGateway(config.Config{PaymentsURL: srv.URL})
		_, err := g.CreatePaymentLink(context.Background(), "tok-1", interfaces.PaymentLinkRequest{ProductReference: "prod-1", Amount: 1})
		if !errors.Is(err, ErrPaymentLink) {
			t.Fatalf("expected ErrPaymentLink, got %v", err)
		}
	})

	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		g := testGateway(config.Config{PaymentsURL: srv.URL})
		_, err := g.CreatePaymentLink(context.Background(), "tok-1", interfaces.PaymentLinkRequest{ProductReference: "prod-1", Amount: 1})
		if !errors.Is(err, ErrPaymentLink) {
			t.Fatalf("expected ErrPaymentLink, got %v", err)
		}
	})
}

func TestCobreGateway_GetPaymentLinkInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/info/abc" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"PAID"}`))
	}))
	defer srv.Close()

	g := testGateway(config.Config{PaymentLinkInfoURL: srv.URL + "/info/"})
	raw, err := g.GetPaymentLinkInfo(context.Background(), "tok-1", "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"status":"PAID"}` {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestCobreGateway_RegisterWebhook(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/tokens", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"access_token":"tok-1"}`))
		})
		mux.HandleFunc("/webhooks", func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]any
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			if payload["endpoint"] != "https://plug/webhook" || payload["secret"] != "s3cret" {
				t.Fatalf("unexpected payload: %+v", payload)
			}
			statuses, _ := payload["statuses"].([]any)
			if len(statuses) != 3 {
				t.Fatalf("expected three statuses, got %v", payload["statuses"])
			}
			w.WriteHeader(http.StatusCreated)
		})

		g := testGateway(config.Config{TokensURL: srv.URL + "/tokens", RegisterWebhookURL: srv.URL + "/webhooks"})
		if err := g.RegisterWebhook(context.Background(), "https://plug/webhook", "s3cret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("token failure aborts registration", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		g := testGateway(config.Config{TokensURL: srv.URL, RegisterWebhookURL: srv.URL})
		err := g.RegisterWebhook(context.Background(), "https://plug/webhook", "s3cret")
		if !errors.Is(err, ErrAccessToken) {
			t.Fatalf("expected ErrAccessToken, got %v", err)
		}
	})
}
