// internal/adapters/in/http/middleware/user_auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias for the firebase auth client so DI code can
// pass *middleware.FirebaseAuthClient around.
type FirebaseAuthClient = fbauth.Client

// TokenVerifier is the slice of the firebase client the middleware needs.
// Tests substitute a fake; production wires *FirebaseAuthClient directly.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// context keys are private struct keys (no string-key collisions)
type ctxKey struct{ name string }

var (
	ctxKeyUID   = ctxKey{name: "uid"}
	ctxKeyEmail = ctxKey{name: "email"}
	ctxKeyName  = ctxKey{name: "name"}
)

// UserAuthMiddleware verifies the Firebase ID token (buyer side) and stores
// uid/email/name in the request context. Every /store route sits behind it.
type UserAuthMiddleware struct {
	Verifier TokenVerifier
}

func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			http.Error(w, "user auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		// email / name are optional claims
		email := stringClaim(token.Claims, "email")
		name := stringClaim(token.Claims, "name")

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		if email != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, email)
		}
		if name != "" {
			ctx = context.WithValue(ctx, ctxKeyName, name)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func stringClaim(claims map[string]interface{}, key string) string {
	if claims == nil {
		return ""
	}
	if raw, ok := claims[key]; ok {
		if s, ok2 := raw.(string); ok2 {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// CurrentUserUID returns the authenticated buyer's Firebase UID.
func CurrentUserUID(r *http.Request) (string, bool) {
	v := r.Context().Value(ctxKeyUID)
	u, ok := v.(string)
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return strings.TrimSpace(u), true
}

// CurrentUserUIDAndEmail returns uid/email (email can be empty).
func CurrentUserUIDAndEmail(r *http.Request) (uid string, email string, ok bool) {
	uid, ok = CurrentUserUID(r)
	if !ok {
		return "", "", false
	}

	if v := r.Context().Value(ctxKeyEmail); v != nil {
		if e, okEmail := v.(string); okEmail {
			email = strings.TrimSpace(e)
		}
	}

	return uid, email, true
}

// CurrentUserName returns the display name claim if present.
func CurrentUserName(r *http.Request) (string, bool) {
	v := r.Context().Value(ctxKeyName)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// WithTestUser injects identity into the context the same way Handler does.
// Handler tests use it to exercise routes without real tokens.
func WithTestUser(ctx context.Context, uid, email, name string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUID, uid)
	if email != "" {
		ctx = context.WithValue(ctx, ctxKeyEmail, email)
	}
	if name != "" {
		ctx = context.WithValue(ctx, ctxKeyName, name)
	}
	return ctx
}
