// internal/platform/di/shared/auth_adapter.go
package shared

import (
	"context"
	"errors"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthProvider adapts the Firebase Auth Admin SDK to the usecase's
// identity-provider port (account creation at sign-up).
type FirebaseAuthProvider struct {
	Client *firebaseauth.Client
}

func NewFirebaseAuthProvider(client *firebaseauth.Client) *FirebaseAuthProvider {
	return &FirebaseAuthProvider{Client: client}
}

// CreateUser registers an email/password credential and returns its uid.
// Provider errors (EMAIL_EXISTS etc.) pass through unchanged.
func (p *FirebaseAuthProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	if p == nil || p.Client == nil {
		return "", errors.New("shared.auth: firebase auth client is nil")
	}

	params := (&firebaseauth.UserToCreate{}).
		Email(strings.TrimSpace(email)).
		Password(password)

	rec, err := p.Client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}
	return rec.UID, nil
}
