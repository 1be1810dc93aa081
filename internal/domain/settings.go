package domain

// Settings is the store-wide configuration record. A single instance lives in
// the slot store; admin edits are read-modify-write of the whole record.
type Settings struct {
	StoreName          string `json:"storeName"`
	EmailWebhook       string `json:"emailWebhook"`
	SpreadsheetWebhook string `json:"spreadsheetWebhook"`
	AdminPassword      string `json:"adminPassword"`
	GpayID             string `json:"gpayId"`
	GpayQRURL          string `json:"gpayQrUrl"`
	EmailServiceID     string `json:"emailjsServiceId"`
	EmailTemplateID    string `json:"emailjsTemplateId"`
	EmailPublicKey     string `json:"emailjsPublicKey"`
}

// WebhookURL returns the configured order webhook: the email webhook wins,
// the spreadsheet webhook is the fallback. Empty means no webhook configured.
func (s Settings) WebhookURL() string {
	if s.EmailWebhook != "" {
		return s.EmailWebhook
	}
	return s.SpreadsheetWebhook
}

// EmailConfigured reports whether all three transactional email credentials
// are present. A partial configuration disables email delivery entirely.
func (s Settings) EmailConfigured() bool {
	return s.EmailServiceID != "" && s.EmailTemplateID != "" && s.EmailPublicKey != ""
}
