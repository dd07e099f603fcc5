// internal/adapters/in/http/store/handler/helper_handler.go
package storeHandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	usecase "sristi/internal/application/usecase"
	paymentdom "sristi/internal/domain/payment"
	reviewdom "sristi/internal/domain/review"
	userdom "sristi/internal/domain/user"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": strings.TrimSpace(msg)})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeUsecaseErr maps application-layer sentinels onto HTTP statuses.
// Anything unrecognized is a remote I/O failure and stays a 500.
func writeUsecaseErr(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, usecase.ErrUserInvalidArgument),
		errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, usecase.ErrCatalogInvalidArgument),
		errors.Is(err, usecase.ErrOrderInvalidArgument),
		errors.Is(err, usecase.ErrReviewInvalidArgument),
		errors.Is(err, usecase.ErrCheckoutInvalidArgument),
		errors.Is(err, usecase.ErrCheckoutContactRequired),
		errors.Is(err, usecase.ErrCheckoutEmptyOrder),
		errors.Is(err, paymentdom.ErrInvalidSignature):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, userdom.ErrNotFound),
		errors.Is(err, usecase.ErrProductNotFound),
		errors.Is(err, usecase.ErrOrderNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrOrderForbidden):
		writeErr(w, http.StatusForbidden, err.Error())
	case errors.Is(err, reviewdom.ErrAlreadyReviewed):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrCheckoutGatewayFailed):
		writeErr(w, http.StatusBadGateway, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// trimPtr normalizes an optional string field; a nil pointer stays nil
// (field absent = leave as-is).
func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}
