// internal/adapters/in/http/store/handler/payment_handler.go
package storeHandler

import (
	"log"
	"net/http"

	paymentdom "sristi/internal/domain/payment"
)

// PaymentOrderHandler serves POST /payments/orders: the gateway-order relay
// the client app calls so the key secret never ships in the app binary.
// Gateway failures are a 502 — the checkout has not opened yet and nothing
// has been written.
type PaymentOrderHandler struct {
	gateway paymentdom.Gateway
}

func NewPaymentOrderHandler(gateway paymentdom.Gateway) http.Handler {
	return &PaymentOrderHandler{gateway: gateway}
}

type paymentOrderRequest struct {
	Amount int `json:"amount"` // rupees
}

func (h *PaymentOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.gateway == nil {
		writeErr(w, http.StatusServiceUnavailable, "payment gateway is not configured")
		return
	}

	var req paymentOrderRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Amount <= 0 {
		writeErr(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	order, err := h.gateway.CreateOrder(r.Context(), req.Amount)
	if err != nil {
		log.Printf("[payment_order_handler] gateway order failed amount=%d err=%v", req.Amount, err)
		writeErr(w, http.StatusBadGateway, "payment gateway error")
		return
	}

	writeJSON(w, http.StatusOK, order)
}
