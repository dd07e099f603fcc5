// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidUser      = errors.New("user: invalid")
	ErrNotFound         = errors.New("user: not found")
	ErrInvalidProductID = errors.New("user: invalid productId")
	ErrInvalidQty       = errors.New("user: invalid qty")
)

// CartItem is one line item on the user record.
// Uniqueness is defined by ProductID (at most one line per product).
type CartItem struct {
	ProductID string `json:"productId" firestore:"productId"`
	Qty       int    `json:"qty" firestore:"qty"`
}

// User represents "a users/{uid} document".
//   - docId = Firebase Auth UID
//   - Cart / Wishlist / Orders are arrays on the record itself; the record is
//     the source of truth and callers reload it after every mutation.
type User struct {
	ID          string     `json:"id" firestore:"id"`
	Email       string     `json:"email" firestore:"email"`
	Username    string     `json:"username" firestore:"username"`
	ProfilePic  string     `json:"profilePic" firestore:"profilePic"`
	Address     string     `json:"address" firestore:"address"`
	PhoneNumber string     `json:"phoneNumber" firestore:"phoneNumber"`
	Cart        []CartItem `json:"cart" firestore:"cart"`
	Wishlist    []string   `json:"wishlist" firestore:"wishlist"`
	Orders      []string   `json:"orders" firestore:"orders"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
}

// NewUser creates a default-shaped user record: empty cart/wishlist/orders,
// blank contact fields. Used at sign-up and by the self-healing load path.
func NewUser(uid, email, username string, now time.Time) (*User, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrInvalidUser
	}

	u := &User{
		ID:          id,
		Email:       strings.TrimSpace(email),
		Username:    strings.TrimSpace(username),
		ProfilePic:  "",
		Address:     "",
		PhoneNumber: "",
		Cart:        []CartItem{},
		Wishlist:    []string{},
		Orders:      []string{},
		CreatedAt:   now,
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// AddToCart increments qty for productID, or appends a new line.
// qty must be >= 1. Guarantees no duplicate line for the same product.
func (u *User) AddToCart(productID string, qty int) error {
	if u == nil {
		return ErrInvalidUser
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidProductID
	}
	if qty <= 0 {
		return ErrInvalidQty
	}

	if u.Cart == nil {
		u.Cart = []CartItem{}
	}

	idx := findCartIndex(u.Cart, pid)
	if idx >= 0 {
		u.Cart[idx].Qty += qty
	} else {
		u.Cart = append(u.Cart, CartItem{ProductID: pid, Qty: qty})
	}
	return u.validateCart()
}

// RemoveFromCart drops the line entirely regardless of quantity.
// Removing a product that is not in the cart is a no-op.
func (u *User) RemoveFromCart(productID string) error {
	if u == nil {
		return ErrInvalidUser
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidProductID
	}

	idx := findCartIndex(u.Cart, pid)
	if idx >= 0 {
		// preserve order
		u.Cart = append(u.Cart[:idx], u.Cart[idx+1:]...)
	}
	return u.validateCart()
}

// SetCartQty sets the line's qty. qty <= 0 removes the line instead of
// keeping a non-positive entry. A missing line is left as-is (no-op).
func (u *User) SetCartQty(productID string, qty int) error {
	if u == nil {
		return ErrInvalidUser
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ErrInvalidProductID
	}

	idx := findCartIndex(u.Cart, pid)
	if idx < 0 {
		return nil
	}
	if qty <= 0 {
		u.Cart = append(u.Cart[:idx], u.Cart[idx+1:]...)
		return u.validateCart()
	}
	u.Cart[idx].Qty = qty
	return u.validateCart()
}

// ClearCart empties the cart (order placed).
func (u *User) ClearCart() {
	if u == nil {
		return
	}
	u.Cart = []CartItem{}
}

// InWishlist reports wishlist membership.
func (u *User) InWishlist(productID string) bool {
	if u == nil {
		return false
	}
	pid := strings.TrimSpace(productID)
	for _, w := range u.Wishlist {
		if w == pid {
			return true
		}
	}
	return false
}

func (u *User) validate() error {
	if u == nil || strings.TrimSpace(u.ID) == "" {
		return ErrInvalidUser
	}
	return u.validateCart()
}

// validateCart enforces the cart invariants: at most one line per productId,
// qty >= 1 on every line.
func (u *User) validateCart() error {
	seen := map[string]bool{}
	for _, it := range u.Cart {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" {
			return ErrInvalidProductID
		}
		if it.Qty <= 0 {
			return ErrInvalidQty
		}
		if seen[pid] {
			return ErrInvalidUser
		}
		seen[pid] = true
	}
	return nil
}

func findCartIndex(items []CartItem, pid string) int {
	for i := range items {
		if items[i].ProductID == pid {
			return i
		}
	}
	return -1
}
