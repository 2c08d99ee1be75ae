package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"cobre_payment_plug/internal/infrastructure/config"
	"cobre_payment_plug/internal/usecase/interfaces"
)

const (
	defaultBrevoAPIURL = "https://api.brevo.com/v3/smtp/email"
	whatsappLink       = "https://wa.link/b6dl4y"
)

var ErrSendEmail = errors.New("could not send transactional email")

// BrevoDispatcher sends buyer notifications through the Brevo transactional
// email API. Sending is best-effort from the reconciliation flow's point of
// view: errors are returned for the caller to surface, never to roll back
// committed state.

type BrevoDispatcher struct {
	httpClient *http.Client
	apiURL     string
	cfg        config.Config
}

var _ interfaces.INotificationDispatcher = (*BrevoDispatcher)(nil)

func NewBrevoDispatcher(cfg config.Config) *BrevoDispatcher {
	return &BrevoDispatcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     defaultBrevoAPIURL,
		cfg:        cfg,
	}
}

type brevoParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoEmail struct {
	Sender      brevoParty   `json:"sender"`
	To          []brevoParty `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
}

func (d *BrevoDispatcher) SendFulfillment(ctx context.Context, n interfaces.FulfillmentNotification) error {
	support := n.SupportContact
	if support == "" {
		support = d.cfg.SupportEmail
	}
	instructions := n.ActivationInstructions
	if instructions == "" {
		instructions = "No hay instrucciones de activación."
	}

	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h1>Gracias por tu compra</h1>
        <p>Producto: <strong>%s</strong></p>
        <p>Clave de activación: <strong>%s</strong></p>
        <p>Instrucciones: %s</p>
        <p>En caso de dudas, quejas, peticiones o reclamos, puedes contactarnos a través de <a href="mailto:%s">%s</a>. | También puedes escribirnos por <a href="%s">WhatsApp</a>.</p>
      </div>`,
		n.ProductName, n.ActivationKey, instructions, support, support, whatsappLink)

	msg := brevoEmail{
		Sender:      brevoParty{Name: d.cfg.SenderName, Email: d.cfg.SenderEmail},
		To:          []brevoParty{{Email: n.Email}},
		Subject:     fmt.Sprintf("Tu producto %s está listo", n.ProductName),
		HTMLContent: body,
	}

	if err := d.send(ctx, msg); err != nil {
		log.Printf("[email][dispatcher] fulfillment send failed email=%s err=%v", n.Email, err)
		return err
	}
	log.Printf("[email][dispatcher] fulfillment sent email=%s product=%s", n.Email, n.ProductName)
	return nil
}

func (d *BrevoDispatcher) SendWaitlisted(ctx context.Context, to string) error {
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h1>Has sido agregado a nuestra lista de espera</h1>
        <p>Actualmente no tenemos disponibilidad del producto, pero te hemos agregado a nuestra lista de espera.</p>
        <p>Te notificaremos tan pronto como tengamos disponibilidad.</p>
        <p>En caso de dudas, quejas, peticiones o reclamos, puedes contactarnos a través de <a href="mailto:%s">%s</a>. | También puedes escribirnos por <a href="%s">WhatsApp</a>.</p>
      </div>`,
		d.cfg.SupportEmail, d.cfg.SupportEmail, whatsappLink)

	msg := brevoEmail{
		Sender:      brevoParty{Name: d.cfg.SenderName, Email: d.cfg.SenderEmail},
		To:          []brevoParty{{Email: to}},
		Subject:     "Estás en la lista de espera",
		HTMLContent: body,
	}

	if err := d.send(ctx, msg); err != nil {
		log.Printf("[email][dispatcher] waitlist send failed email=%s err=%v", to, err)
		return err
	}
	log.Printf("[email][dispatcher] waitlist sent email=%s", to)
	return nil
}

func (d *BrevoDispatcher) send(ctx context.Context, msg brevoEmail) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendEmail, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.apiURL, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendEmail, err)
	}
	req.Header.Set("api-key", d.cfg.BrevoAPIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendEmail, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status=%d body=%s", ErrSendEmail, resp.StatusCode, body)
	}
	return nil
}
