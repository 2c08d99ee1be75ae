package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cobre_payment_plug/internal/infrastructure/config"
	"cobre_payment_plug/internal/usecase/interfaces"
	"cobre_payment_plug/pkg"

	"github.com/google/uuid"
)

var (
	ErrAccessToken     = errors.New("could not obtain cobre access token")
	ErrPaymentLink     = errors.New("could not create cobre payment link")
	ErrPaymentLinkInfo = errors.New("could not fetch cobre payment link info")
	ErrWebhookRegister = errors.New("could not register cobre webhook")
)

// CobreGateway talks to the Cobre payment processor over its REST API.
//
// The gateway is pass-through on failure: non-2xx responses and network
// errors are wrapped with the operation sentinel and returned; no retries
// happen here.

type CobreGateway struct {
	httpClient *http.Client
	cfg        config.Config
}

var _ interfaces.IPaymentGateway = (*CobreGateway)(nil)

func NewCobreGateway(cfg config.Config) *CobreGateway {
	return &CobreGateway{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
	}
}

// requestHeaders builds the header set Cobre expects on authenticated calls.
// Every call carries a fresh correlation id.
func (g *CobreGateway) requestHeaders(token string) http.Header {
	h := http.Header{}
	h.Set("X-API-KEY", g.cfg.APIKey)
	if token != "" {
		h.Set("X-APIGW-AUTH", "Bearer "+token)
	}
	h.Set("X-CORRELATION-ID", uuid.NewString())
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	return h
}

func (g *CobreGateway) GetAccessToken(ctx context.Context) (string, error) {
	log.Printf("[cobre][gateway] token request start")

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.TokensURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAccessToken, err)
	}
	req.Header.Set("X-API-KEY", g.cfg.APIKey)
	req.Header.Set("Authorization", "Basic "+pkg.EncodeCredentials(g.cfg.ClientID, g.cfg.ClientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := g.do(req, ErrAccessToken)
	if err != nil {
		return "", err
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAccessToken, err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access_token in response", ErrAccessToken)
	}
	log.Printf("[cobre][gateway] token request success")
	return parsed.AccessToken, nil
}

type paymentLinkPayload struct {
	ProductReference       string   `json:"product_reference"`
	CustomProductReference string   `json:"customProductReference"`
	Amount                 float64  `json:"amount"`
	Email                  string   `json:"email"`
	FullName               string   `json:"fullName"`
	CellPhone              string   `json:"cellPhone,omitempty"`
	Document               string   `json:"document,omitempty"`
	DocumentType           string   `json:"documentType,omitempty"`
	Description            string   `json:"description,omitempty"`
	References             []string `json:"references"`
	Currency               string   `json:"currency"`
	RedirectURL            string   `json:"redirectUrl"`
}

func (g *CobreGateway) CreatePaymentLink(ctx context.Context, token string, linkReq interfaces.PaymentLinkRequest) (interfaces.PaymentLink, error) {
	currency := linkReq.Currency
	if currency == "" {
		currency = "COP"
	}

	payload := paymentLinkPayload{
		ProductReference:       linkReq.ProductReference,
		CustomProductReference: linkReq.ProductReference,
		Amount:                 linkReq.Amount,
		Email:                  linkReq.Email,
		FullName:               linkReq.FullName,
		CellPhone:              linkReq.CellPhone,
		Document:               linkReq.Document,
		DocumentType:           linkReq.DocumentType,
		Description:            linkReq.Description,
		References:             []string{uuid.NewString()},
		Currency:               currency,
		RedirectURL:            g.cfg.RedirectURL,
	}
	log.Printf("[cobre][gateway] create payment link start product_reference=%s amount=%.2f", linkReq.ProductReference, linkReq.Amount)

	body, err := g.postJSON(ctx, g.cfg.PaymentsURL, token, payload, ErrPaymentLink)
	if err != nil {
		return interfaces.PaymentLink{}, err
	}

	var parsed struct {
		LinkURL                 string `json:"linkUrl"`
		CashInNoveltyDetailUUID string `json:"cashInNoveltyDetailUuid"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return interfaces.PaymentLink{}, fmt.Errorf("%w: %v", ErrPaymentLink, err)
	}
	if parsed.CashInNoveltyDetailUUID == "" {
		return interfaces.PaymentLink{}, fmt.Errorf("%w: missing cashInNoveltyDetailUuid in response", ErrPaymentLink)
	}
	log.Printf("[cobre][gateway] create payment link success payment_reference=%s", parsed.CashInNoveltyDetailUUID)

	return interfaces.PaymentLink{
		LinkURL:          parsed.LinkURL,
		PaymentReference: parsed.CashInNoveltyDetailUUID,
	}, nil
}

func (g *CobreGateway) GetPaymentLinkInfo(ctx context.Context, token, paymentReference string) (json.RawMessage, error) {
	log.Printf("[cobre][gateway] payment link info start payment_reference=%s", paymentReference)

	infoURL := strings.TrimRight(g.cfg.PaymentLinkInfoURL, "/") + "/" + paymentReference
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, infoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentLinkInfo, err)
	}
	req.Header = g.requestHeaders(token)

	body, err := g.do(req, ErrPaymentLinkInfo)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// RegisterWebhook is one-time setup: it acquires its own token and registers
// the confirmation endpoint for the statuses Cobre reports.
func (g *CobreGateway) RegisterWebhook(ctx context.Context, endpointURL, secret string) error {
	token, err := g.GetAccessToken(ctx)
	if err != nil {
		return err
	}

	payload := map[string]any{
		"endpoint": endpointURL,
		"secret":   secret,
		"statuses": []string{"PAID", "EXPIRED", "REJECTED"},
	}
	if _, err := g.postJSON(ctx, g.cfg.RegisterWebhookURL, token, payload, ErrWebhookRegister); err != nil {
		return err
	}
	log.Printf("[cobre][gateway] webhook registered endpoint=%s", endpointURL)
	return nil
}

func (g *CobreGateway) postJSON(ctx context.Context, rawURL, token string, payload any, opErr error) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", opErr, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", opErr, err)
	}
	req.Header = g.requestHeaders(token)
	return g.do(req, opErr)
}

func (g *CobreGateway) do(req *http.Request, opErr error) ([]byte, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[cobre][gateway] request failed url=%s err=%v", req.URL, err)
		return nil, fmt.Errorf("%w: %v", opErr, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", opErr, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[cobre][gateway] non-2xx response url=%s status=%d body=%s", req.URL, resp.StatusCode, body)
		return nil, fmt.Errorf("%w: status=%d", opErr, resp.StatusCode)
	}
	return body, nil
}
