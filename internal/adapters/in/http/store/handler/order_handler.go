// internal/adapters/in/http/store/handler/order_handler.go
package storeHandler

import (
	"net/http"
	"strings"

	"sristi/internal/adapters/in/http/middleware"
	usecase "sristi/internal/application/usecase"
	orderdom "sristi/internal/domain/order"
)

// OrderHandler serves order history and tracking:
// - GET /store/me/orders     (newest first)
// - GET /store/orders/{id}   (owner only; includes stage progress)
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{uc: uc}
}

// orderPayload decorates the stored order with the fixed stage list and the
// current position in it, so the client renders the tracker directly.
type orderPayload struct {
	*orderdom.Order
	Stages     []string `json:"stages"`
	StageIndex int      `json:"stageIndex"`
}

func toOrderPayload(o *orderdom.Order) orderPayload {
	return orderPayload{
		Order:      o,
		Stages:     orderdom.Stages,
		StageIndex: orderdom.StageIndex(o.Status),
	}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	if strings.HasSuffix(path, "/me/orders") {
		orders, err := h.uc.ListForUser(r.Context(), uid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		out := make([]orderPayload, 0, len(orders))
		for i := range orders {
			out = append(out, toOrderPayload(&orders[i]))
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": out})
		return
	}

	// /store/orders/{id}
	if i := strings.Index(path, "/orders/"); i >= 0 {
		orderID := path[i+len("/orders/"):]
		if orderID == "" || strings.Contains(orderID, "/") {
			writeErr(w, http.StatusNotFound, "not_found")
			return
		}
		o, err := h.uc.Get(r.Context(), uid, orderID)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderPayload(o))
		return
	}

	writeErr(w, http.StatusNotFound, "not_found")
}
