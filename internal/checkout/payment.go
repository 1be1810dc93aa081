package checkout

import (
	"fmt"
	"net/url"

	"github.com/auracommerce/storefront/internal/domain"
)

// PaymentURI builds the UPI deep link the online payment flow opens or
// renders as a QR code.
func PaymentURI(settings domain.Settings, amount float64) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=USD",
		settings.GpayID, url.QueryEscape(settings.StoreName), amount)
}

// QRImageURL returns the image to show for an online payment: the admin's
// uploaded QR if set, otherwise one generated from the payment URI by the
// external QR service.
func QRImageURL(settings domain.Settings, amount float64) string {
	if settings.GpayQRURL != "" {
		return settings.GpayQRURL
	}
	return fmt.Sprintf("https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=%s",
		url.QueryEscape(PaymentURI(settings, amount)))
}
