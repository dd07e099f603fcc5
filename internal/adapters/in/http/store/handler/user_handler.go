// internal/adapters/in/http/store/handler/user_handler.go
package storeHandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"sristi/internal/adapters/in/http/middleware"
	usecase "sristi/internal/application/usecase"
)

// SignupHandler serves POST /store/signup (public: no bearer token yet).
type SignupHandler struct {
	uc *usecase.UserUsecase
}

func NewSignupHandler(uc *usecase.UserUsecase) http.Handler {
	return &SignupHandler{uc: uc}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "signup handler is not configured")
		return
	}

	var req signupRequest
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	u, err := h.uc.SignUp(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		log.Printf("[store_user_handler] signup failed email=%s err=%v elapsed=%s",
			strings.TrimSpace(req.Email), err, time.Since(start))
		writeUsecaseErr(w, err)
		return
	}

	log.Printf("[store_user_handler] signup ok uid=%s elapsed=%s", u.ID, time.Since(start))
	writeJSON(w, http.StatusCreated, u)
}

// MeHandler serves the authenticated user record:
// - GET  /store/me                   (self-healing load)
// - PUT  /store/me/contact           (partial contact update)
// - POST /store/me/wishlist/toggle   (membership flip)
type MeHandler struct {
	uc *usecase.UserUsecase
}

func NewMeHandler(uc *usecase.UserUsecase) http.Handler {
	return &MeHandler{uc: uc}
}

type contactRequest struct {
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
}

type wishlistToggleRequest struct {
	ProductID string `json:"productId"`
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "me handler is not configured")
		return
	}

	uid, email, ok := middleware.CurrentUserUIDAndEmail(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/me"):
		u, err := h.uc.EnsureUser(r.Context(), uid, email)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)

	case r.Method == http.MethodPut && strings.HasSuffix(path, "/me/contact"):
		var req contactRequest
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		u, err := h.uc.UpdateContactInfo(r.Context(), uid, trimPtr(req.Address), trimPtr(req.PhoneNumber))
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/me/wishlist/toggle"):
		var req wishlistToggleRequest
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		u, err := h.uc.ToggleWishlist(r.Context(), uid, req.ProductID)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)

	default:
		writeErr(w, http.StatusNotFound, "not_found")
	}
}
