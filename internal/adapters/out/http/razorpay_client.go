// internal/adapters/out/http/razorpay_client.go
package httpout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	paymentdom "sristi/internal/domain/payment"
)

const razorpayBaseURL = "https://api.razorpay.com"

// RazorpayClient implements payment.Gateway against the Razorpay Orders API.
//
// - POST {base}/v1/orders with basic auth keyId:keySecret
// - amount is sent in paise (rupees * 100), currency fixed to INR
// - receipt is a fresh uuid per order
type RazorpayClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

// NewRazorpayClient targets the production API. baseURL is overridable for
// tests via WithBaseURL.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		baseURL:   razorpayBaseURL,
		keyID:     strings.TrimSpace(keyID),
		keySecret: strings.TrimSpace(keySecret),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client at a different endpoint (httptest servers).
func (c *RazorpayClient) WithBaseURL(baseURL string) *RazorpayClient {
	c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return c
}

type razorpayOrderRequest struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers a gateway order for the given amount in rupees and
// returns the gateway order id the client app hands to the Razorpay SDK.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int) (*paymentdom.GatewayOrder, error) {
	if c == nil {
		return nil, fmt.Errorf("razorpay client is nil")
	}
	if c.keyID == "" || c.keySecret == "" {
		return nil, fmt.Errorf("razorpay client credentials are empty")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("razorpay order amount must be positive, got %d", amount)
	}

	payload := razorpayOrderRequest{
		Amount:   amount * 100, // rupees -> paise
		Currency: "INR",
		Receipt:  "receipt_" + uuid.NewString(),
	}

	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var apiErr razorpayErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay order create failed status=%d code=%s: %s",
				res.StatusCode, apiErr.Error.Code, apiErr.Error.Description)
		}
		return nil, fmt.Errorf("razorpay order create failed status=%d body=%s",
			res.StatusCode, strings.TrimSpace(string(body)))
	}

	var out razorpayOrderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("razorpay order create: decode response: %w", err)
	}
	if strings.TrimSpace(out.ID) == "" {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}

	log.Printf("[razorpay_client] order created id=%s amount=%d currency=%s", out.ID, out.Amount, out.Currency)

	return &paymentdom.GatewayOrder{
		ID:       out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
	}, nil
}
