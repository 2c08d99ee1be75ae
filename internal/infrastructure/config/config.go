package config

import (
	"os"
	"strings"
)

// Config is the immutable runtime configuration, loaded once at startup and
// injected into the components that need it. Core logic never reads env vars
// directly.
//
// Supported env vars (local-friendly defaults where harmless):
//   - COBRE_API_KEY, CLIENT_ID, CLIENT_SECRET
//   - COBRE_URL_TOKENS, COBRE_URL_PAYMENTS, COBRE_URL_REGISTER_WEBHOOK,
//     COBRE_URL_PAYMENT_LINK_INFO
//   - REDIRECT_URL, WEBHOOK_URL, WEBHOOK_SECRET, REGISTER_WEBHOOK
//   - BREVO_API_KEY, SENDER_NAME, SENDER_EMAIL, SUPPORT_EMAIL
//   - ALLOWED_ORIGIN (comma-separated list)
//   - PORT (default: 8080)

type Config struct {
	APIKey       string
	ClientID     string
	ClientSecret string

	TokensURL          string
	PaymentsURL        string
	RegisterWebhookURL string
	PaymentLinkInfoURL string

	RedirectURL     string
	WebhookURL      string
	WebhookSecret   string
	RegisterWebhook bool

	BrevoAPIKey  string
	SenderName   string
	SenderEmail  string
	SupportEmail string

	AllowedOrigins []string
	Port           string
}

func Load() Config {
	return Config{
		APIKey:       os.Getenv("COBRE_API_KEY"),
		ClientID:     os.Getenv("CLIENT_ID"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),

		TokensURL:          os.Getenv("COBRE_URL_TOKENS"),
		PaymentsURL:        os.Getenv("COBRE_URL_PAYMENTS"),
		RegisterWebhookURL: os.Getenv("COBRE_URL_REGISTER_WEBHOOK"),
		PaymentLinkInfoURL: os.Getenv("COBRE_URL_PAYMENT_LINK_INFO"),

		RedirectURL:     os.Getenv("REDIRECT_URL"),
		WebhookURL:      os.Getenv("WEBHOOK_URL"),
		WebhookSecret:   os.Getenv("WEBHOOK_SECRET"),
		RegisterWebhook: parseBool(os.Getenv("REGISTER_WEBHOOK")),

		BrevoAPIKey:  os.Getenv("BREVO_API_KEY"),
		SenderName:   getenvDefault("SENDER_NAME", "Innovate Learning"),
		SenderEmail:  getenvDefault("SENDER_EMAIL", "administrativo@innovatelearning.com.co"),
		SupportEmail: getenvDefault("SUPPORT_EMAIL", "administrativo@innovatelearning.com.co"),

		AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGIN")),
		Port:           getenvDefault("PORT", "8080"),
	}
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			origins = append(origins, v)
		}
	}
	return origins
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
