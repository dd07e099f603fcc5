// internal/adapters/in/http/store/handler/checkout_handler.go
package storeHandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"sristi/internal/adapters/in/http/middleware"
	usecase "sristi/internal/application/usecase"
)

// CheckoutHandler serves the checkout flow:
// - GET  /store/checkout/preview?source=   (order summary, nothing written)
// - POST /store/checkout                   (COD places; Razorpay opens intent)
// - POST /store/checkout/confirm           (hosted checkout success callback)
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/checkout/preview"):
		source := r.URL.Query().Get("source")
		if strings.TrimSpace(source) == "" {
			source = usecase.SourceCart
		}
		res, err := h.uc.Preview(r.Context(), uid, source)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/checkout"):
		var in usecase.CheckoutInput
		if err := readJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		res, err := h.uc.Checkout(r.Context(), uid, in)
		if err != nil {
			log.Printf("[store_checkout_handler] checkout failed uid=%s method=%s err=%v elapsed=%s",
				uid, in.PaymentMethod, err, time.Since(start))
			writeUsecaseErr(w, err)
			return
		}
		log.Printf("[store_checkout_handler] checkout ok uid=%s method=%s orderId=%s intent=%t elapsed=%s",
			uid, in.PaymentMethod, res.OrderID, res.Payment != nil, time.Since(start))
		writeJSON(w, http.StatusOK, res)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/checkout/confirm"):
		var in usecase.ConfirmInput
		if err := readJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		res, err := h.uc.ConfirmPayment(r.Context(), uid, in)
		if err != nil {
			log.Printf("[store_checkout_handler] confirm failed uid=%s gatewayOrderId=%s err=%v elapsed=%s",
				uid, in.Completion.OrderID, err, time.Since(start))
			writeUsecaseErr(w, err)
			return
		}
		log.Printf("[store_checkout_handler] confirm ok uid=%s orderId=%s elapsed=%s",
			uid, res.OrderID, time.Since(start))
		writeJSON(w, http.StatusCreated, res)

	default:
		writeErr(w, http.StatusNotFound, "not_found")
	}
}
