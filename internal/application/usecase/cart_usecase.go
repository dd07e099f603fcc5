// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	userdom "sristi/internal/domain/user"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// CartUsecase coordinates cart mutations on the user record.
//
// Every mutator runs through Repository.MutateCart, which applies the change
// to a freshly-read record inside a per-record transaction and returns the
// committed state. Rapid back-to-back mutations therefore serialize instead
// of overwriting each other's whole-array write.
type CartUsecase struct {
	repo userdom.Repository
}

func NewCartUsecase(repo userdom.Repository) *CartUsecase {
	return &CartUsecase{repo: repo}
}

// Get returns the user's cart (empty slice when the user has no lines).
func (uc *CartUsecase) Get(ctx context.Context, uid string) ([]userdom.CartItem, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrCartInvalidArgument
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.Cart == nil {
		return []userdom.CartItem{}, nil
	}
	return u.Cart, nil
}

// AddItem increments qty for productID (default 1), appending a new line if
// absent. Returns the updated record.
func (uc *CartUsecase) AddItem(ctx context.Context, uid, productID string, qty int) (*userdom.User, error) {
	id := strings.TrimSpace(uid)
	pid := strings.TrimSpace(productID)
	if id == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, ErrCartInvalidArgument
	}

	return uc.repo.MutateCart(ctx, id, func(u *userdom.User) error {
		return u.AddToCart(pid, qty)
	})
}

// RemoveItem drops the line regardless of quantity.
func (uc *CartUsecase) RemoveItem(ctx context.Context, uid, productID string) (*userdom.User, error) {
	id := strings.TrimSpace(uid)
	pid := strings.TrimSpace(productID)
	if id == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	return uc.repo.MutateCart(ctx, id, func(u *userdom.User) error {
		return u.RemoveFromCart(pid)
	})
}

// SetItemQty sets the line's qty; qty <= 0 removes the line.
func (uc *CartUsecase) SetItemQty(ctx context.Context, uid, productID string, qty int) (*userdom.User, error) {
	id := strings.TrimSpace(uid)
	pid := strings.TrimSpace(productID)
	if id == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	return uc.repo.MutateCart(ctx, id, func(u *userdom.User) error {
		return u.SetCartQty(pid, qty)
	})
}

// Clear empties the cart.
func (uc *CartUsecase) Clear(ctx context.Context, uid string) (*userdom.User, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrCartInvalidArgument
	}

	return uc.repo.MutateCart(ctx, id, func(u *userdom.User) error {
		u.ClearCart()
		return nil
	})
}
