package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/auracommerce/storefront/internal/domain"
)

// DefaultEmailEndpoint is the transactional email API the store submits
// order confirmations to.
const DefaultEmailEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

const DefaultTimeout = 10 * time.Second

// Dispatcher delivers order notifications to the configured external
// endpoints. Delivery is at-most-once and fire-and-forget: the two channels
// run independently, neither blocks the caller, and a failure on one never
// cancels the other. Failures are logged and swallowed, there are no retries.
type Dispatcher struct {
	client        *http.Client
	emailEndpoint string
}

func NewDispatcher(timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		client:        &http.Client{Timeout: timeout},
		emailEndpoint: DefaultEmailEndpoint,
	}
}

// WithEmailEndpoint overrides the email API address. Test seam.
func (d *Dispatcher) WithEmailEndpoint(endpoint string) *Dispatcher {
	d.emailEndpoint = endpoint
	return d
}

// Dispatch fires both delivery attempts and returns immediately. The client
// timeout bounds each attempt; the original imposed none.
func (d *Dispatcher) Dispatch(order domain.Order, settings domain.Settings) {
	go d.sendEmail(order, settings)
	go d.sendWebhook(order, settings)
}

type emailPayload struct {
	ServiceID      string      `json:"service_id"`
	TemplateID     string      `json:"template_id"`
	UserID         string      `json:"user_id"`
	TemplateParams emailParams `json:"template_params"`
}

type emailParams struct {
	OrderID       string `json:"order_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
	Items         string `json:"items"`
	TotalAmount   string `json:"total_amount"`
	StoreName     string `json:"store_name"`
}

func (d *Dispatcher) sendEmail(order domain.Order, settings domain.Settings) {
	if !settings.EmailConfigured() {
		// Not an error, delivery is simply disabled.
		return
	}

	payload := emailPayload{
		ServiceID:  settings.EmailServiceID,
		TemplateID: settings.EmailTemplateID,
		UserID:     settings.EmailPublicKey,
		TemplateParams: emailParams{
			OrderID:       order.ID,
			CustomerName:  order.CustomerName,
			CustomerEmail: order.CustomerEmail,
			CustomerPhone: order.CustomerPhone,
			Address:       order.Address,
			PaymentMethod: string(order.PaymentMethod),
			Items:         FormatItems(order.Items),
			TotalAmount:   fmt.Sprintf("$%.2f", order.Total),
			StoreName:     settings.StoreName,
		},
	}

	if err := d.post(d.emailEndpoint, payload); err != nil {
		log.Printf("email delivery failed for order %s: %v", order.ID, err)
	}
}

func (d *Dispatcher) sendWebhook(order domain.Order, settings domain.Settings) {
	url := settings.WebhookURL()
	if url == "" {
		return
	}

	if err := d.post(url, order); err != nil {
		log.Printf("webhook delivery failed for order %s: %v", order.ID, err)
	}
}

// TestWebhook posts a fixed synthetic record to url so the admin can verify
// connectivity. Only transport-level failures are reported; the remote
// response is not inspected.
func (d *Dispatcher) TestWebhook(ctx context.Context, url string) error {
	sample := map[string]interface{}{
		"id":            "TEST-123",
		"customerName":  "Test User",
		"customerEmail": "test@example.com",
		"total":         99.99,
		"items":         "1x Test Product",
		"address":       "123 Testing Lane",
	}

	body, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("marshal test payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build test request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post test webhook: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (d *Dispatcher) post(url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := d.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to %s: %w", url, err)
	}
	// The remote status and body are deliberately ignored, the contract is
	// at-most-once fire-and-forget.
	resp.Body.Close()
	return nil
}

// FormatItems renders order items the way the email template expects:
// "2x Watch, 1x Tee".
func FormatItems(items []domain.CartItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%dx %s", item.Quantity, item.Name)
	}
	return strings.Join(parts, ", ")
}
