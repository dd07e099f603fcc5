// internal/adapters/in/http/store/handler/catalog_handler.go
package storeHandler

import (
	"net/http"
	"strings"

	"sristi/internal/adapters/in/http/middleware"
	usecase "sristi/internal/application/usecase"
)

// CatalogHandler serves the product catalog and its review subtree:
// - GET  /store/products                 (?q= server-side name filter)
// - GET  /store/products/{id}
// - GET  /store/products/{id}/reviews
// - POST /store/products/{id}/reviews    (authenticated)
//
// Catalog reads are public; the register layer applies auth only to POST.
type CatalogHandler struct {
	catalog *usecase.CatalogUsecase
	reviews *usecase.ReviewUsecase
	users   *usecase.UserUsecase // resolves reviewer display name
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase, reviews *usecase.ReviewUsecase, users *usecase.UserUsecase) http.Handler {
	return &CatalogHandler{catalog: catalog, reviews: reviews, users: users}
}

type reviewRequest struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}

	// /store/products[/{id}[/reviews]]
	path := strings.TrimRight(r.URL.Path, "/")
	rest := ""
	if i := strings.Index(path, "/products"); i >= 0 {
		rest = strings.TrimPrefix(path[i+len("/products"):], "/")
	}

	switch {
	case rest == "":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.handleList(w, r)

	case strings.HasSuffix(rest, "/reviews"):
		productID := strings.TrimSuffix(rest, "/reviews")
		switch r.Method {
		case http.MethodGet:
			h.handleListReviews(w, r, productID)
		case http.MethodPost:
			h.handleAddReview(w, r, productID)
		default:
			methodNotAllowed(w)
		}

	case !strings.Contains(rest, "/"):
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.handleGet(w, r, rest)

	default:
		writeErr(w, http.StatusNotFound, "not_found")
	}
}

func (h *CatalogHandler) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *CatalogHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) handleListReviews(w http.ResponseWriter, r *http.Request, productID string) {
	if h.reviews == nil {
		writeErr(w, http.StatusInternalServerError, "review handler is not configured")
		return
	}
	reviews, err := h.reviews.ListByProduct(r.Context(), productID)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *CatalogHandler) handleAddReview(w http.ResponseWriter, r *http.Request, productID string) {
	if h.reviews == nil {
		writeErr(w, http.StatusInternalServerError, "review handler is not configured")
		return
	}

	uid, email, ok := middleware.CurrentUserUIDAndEmail(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req reviewRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	username, _ := middleware.CurrentUserName(r)
	if username == "" && h.users != nil {
		if u, err := h.users.EnsureUser(r.Context(), uid, email); err == nil && u != nil {
			username = u.Username
		}
	}

	rv, err := h.reviews.Add(r.Context(), productID, uid, username, req.Comment, req.Rating)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}
