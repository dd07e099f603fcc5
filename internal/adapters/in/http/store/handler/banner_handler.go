// internal/adapters/in/http/store/handler/banner_handler.go
package storeHandler

import (
	"net/http"

	bannerdom "sristi/internal/domain/banner"
)

// BannerHandler serves GET /store/banners/home (public).
type BannerHandler struct {
	repo bannerdom.Repository
}

func NewBannerHandler(repo bannerdom.Repository) http.Handler {
	return &BannerHandler{repo: repo}
}

func (h *BannerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if h.repo == nil {
		writeErr(w, http.StatusInternalServerError, "banner handler is not configured")
		return
	}

	b, err := h.repo.GetHome(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, b)
}
