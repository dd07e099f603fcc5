package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_OK(t *testing.T) {
	c := Completion{
		OrderID:   "order_123",
		PaymentID: "pay_456",
		Signature: sign("order_123", "pay_456", "secret"),
	}
	require.NoError(t, VerifySignature(c, "secret"))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	c := Completion{
		OrderID:   "order_123",
		PaymentID: "pay_456",
		Signature: sign("order_123", "pay_456", "other"),
	}
	assert.ErrorIs(t, VerifySignature(c, "secret"), ErrInvalidSignature)
}

func TestVerifySignature_TamperedOrder(t *testing.T) {
	c := Completion{
		OrderID:   "order_999",
		PaymentID: "pay_456",
		Signature: sign("order_123", "pay_456", "secret"),
	}
	assert.ErrorIs(t, VerifySignature(c, "secret"), ErrInvalidSignature)
}

func TestVerifySignature_MissingFields(t *testing.T) {
	assert.ErrorIs(t, VerifySignature(Completion{}, "secret"), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature(Completion{OrderID: "o", PaymentID: "p"}, "secret"), ErrInvalidSignature)
}
