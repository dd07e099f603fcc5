// internal/adapters/in/http/store/handler/cart_handler.go
package storeHandler

import (
	"net/http"
	"strings"

	"sristi/internal/adapters/in/http/middleware"
	usecase "sristi/internal/application/usecase"
)

// CartHandler serves the authenticated cart:
// - GET    /store/me/cart        (current lines)
// - DELETE /store/me/cart        (clear)
// - POST   /store/me/cart/items  (add / increment)
// - PUT    /store/me/cart/items  (set qty; qty <= 0 removes the line)
// - DELETE /store/me/cart/items  (remove line)
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	onItems := strings.HasSuffix(path, "/cart/items")

	switch {
	case r.Method == http.MethodGet && !onItems:
		items, err := h.uc.Get(r.Context(), uid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cart": items})

	case r.Method == http.MethodDelete && !onItems:
		u, err := h.uc.Clear(r.Context(), uid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cart": u.Cart})

	case r.Method == http.MethodPost && onItems:
		req, ok := h.readItem(w, r)
		if !ok {
			return
		}
		u, err := h.uc.AddItem(r.Context(), uid, req.ProductID, req.Qty)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cart": u.Cart})

	case r.Method == http.MethodPut && onItems:
		req, ok := h.readItem(w, r)
		if !ok {
			return
		}
		u, err := h.uc.SetItemQty(r.Context(), uid, req.ProductID, req.Qty)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cart": u.Cart})

	case r.Method == http.MethodDelete && onItems:
		req, ok := h.readItem(w, r)
		if !ok {
			return
		}
		u, err := h.uc.RemoveItem(r.Context(), uid, req.ProductID)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"cart": u.Cart})

	default:
		methodNotAllowed(w)
	}
}

func (h *CartHandler) readItem(w http.ResponseWriter, r *http.Request) (cartItemRequest, bool) {
	var req cartItemRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return cartItemRequest{}, false
	}
	if strings.TrimSpace(req.ProductID) == "" {
		writeErr(w, http.StatusBadRequest, "productId is required")
		return cartItemRequest{}, false
	}
	return req, true
}
