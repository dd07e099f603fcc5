// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	userdom "sristi/internal/domain/user"
)

var (
	ErrUserInvalidArgument = errors.New("user_usecase: invalid argument")

	// ErrUserNotFound aliases the domain sentinel so repository adapters and
	// usecases report the same value.
	ErrUserNotFound = userdom.ErrNotFound
)

// AuthProvider is the identity-provider port (Firebase Auth Admin SDK).
// Credential verification itself happens in the HTTP middleware; the usecase
// only needs account creation at sign-up.
type AuthProvider interface {
	// CreateUser registers an email/password credential and returns its uid.
	// Duplicate emails surface the provider's error unchanged.
	CreateUser(ctx context.Context, email, password string) (string, error)
}

// UserUsecase coordinates the user record: sign-up seeding, self-healing
// load, contact info and wishlist.
type UserUsecase struct {
	repo  userdom.Repository
	auth  AuthProvider
	clock Clock
}

func NewUserUsecase(repo userdom.Repository, auth AuthProvider) *UserUsecase {
	return &UserUsecase{repo: repo, auth: auth, clock: systemClock{}}
}

// NewUserUsecaseWithClock is useful for tests.
func NewUserUsecaseWithClock(repo userdom.Repository, auth AuthProvider, clock Clock) *UserUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &UserUsecase{repo: repo, auth: auth, clock: clock}
}

// SignUp creates the identity-provider credential, then seeds users/{uid}
// with an empty cart/wishlist/orders record.
func (uc *UserUsecase) SignUp(ctx context.Context, email, password, username string) (*userdom.User, error) {
	em := strings.TrimSpace(email)
	if em == "" || strings.TrimSpace(password) == "" {
		return nil, ErrUserInvalidArgument
	}
	if uc.auth == nil {
		return nil, errors.New("user_usecase: auth provider is not configured")
	}

	uid, err := uc.auth.CreateUser(ctx, em, password)
	if err != nil {
		return nil, err
	}

	u, err := userdom.NewUser(uid, em, username, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureUser fetches users/{uid}; if the record is absent it synthesizes and
// persists a default-shaped one (self-healing for identity-provider accounts
// with no profile yet).
func (uc *UserUsecase) EnsureUser(ctx context.Context, uid, email string) (*userdom.User, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrUserInvalidArgument
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	u, err = userdom.NewUser(id, email, "", uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateContactInfo writes only the fields provided (nil = leave as-is).
func (uc *UserUsecase) UpdateContactInfo(ctx context.Context, uid string, address, phone *string) (*userdom.User, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrUserInvalidArgument
	}
	if address == nil && phone == nil {
		return nil, ErrUserInvalidArgument
	}

	if err := uc.repo.UpdateContactInfo(ctx, id, address, phone); err != nil {
		return nil, err
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ToggleWishlist flips membership for productID: removes if present, adds if
// absent. Both directions use the store's atomic array operators, so a toggle
// pair restores the original state and a single toggle adds exactly one
// occurrence even under concurrency.
func (uc *UserUsecase) ToggleWishlist(ctx context.Context, uid, productID string) (*userdom.User, error) {
	id := strings.TrimSpace(uid)
	pid := strings.TrimSpace(productID)
	if id == "" || pid == "" {
		return nil, ErrUserInvalidArgument
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if u.InWishlist(pid) {
		err = uc.repo.RemoveWishlist(ctx, id, pid)
	} else {
		err = uc.repo.AddWishlist(ctx, id, pid)
	}
	if err != nil {
		return nil, err
	}

	return uc.repo.GetByID(ctx, id)
}
