// internal/domain/payment/entity.go
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrInvalidAmount    = errors.New("payment: invalid amount")
	ErrInvalidSignature = errors.New("payment: signature verification failed")
)

// GatewayOrder is the gateway's order-creation response, relayed to the
// client verbatim: id, amount in minor units (paise), currency.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

// Completion is the hosted checkout's success callback payload.
type Completion struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifySignature checks the gateway's completion signature:
// hex(HMAC-SHA256("<order_id>|<payment_id>", keySecret)).
// A completion that does not verify must create no order record.
func VerifySignature(c Completion, keySecret string) error {
	orderID := strings.TrimSpace(c.OrderID)
	paymentID := strings.TrimSpace(c.PaymentID)
	sig := strings.TrimSpace(c.Signature)
	if orderID == "" || paymentID == "" || sig == "" {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	want := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(want), []byte(sig)) {
		return ErrInvalidSignature
	}
	return nil
}
