// internal/domain/user/repository_port.go
package user

import "context"

// CartMutation is applied to the freshly-read record inside the repository's
// per-record transaction, so that concurrent cart writes serialize instead of
// overwriting each other (the original read-modify-write of the whole cart
// array raced between back-to-back mutations).
type CartMutation func(u *User) error

// Repository is a persistence port for the users collection.
//
// Storage (Firestore):
// - collection: users
// - docId: Firebase Auth UID
// - fields: id, email, username, profilePic, address, phoneNumber,
//   cart(array), wishlist(array), orders(array), createdAt
type Repository interface {
	// GetByID returns (nil, nil) if the record does not exist.
	GetByID(ctx context.Context, uid string) (*User, error)

	// Create persists a new record (sign-up / self-healing load).
	Create(ctx context.Context, u *User) error

	// MutateCart runs fn against the current record inside a transaction and
	// returns the updated record (the post-write resync read).
	MutateCart(ctx context.Context, uid string, fn CartMutation) (*User, error)

	// AddWishlist / RemoveWishlist use the store's atomic array-union /
	// array-removal operators (no read-modify-write window).
	AddWishlist(ctx context.Context, uid, productID string) error
	RemoveWishlist(ctx context.Context, uid, productID string) error

	// UpdateContactInfo writes only the provided fields (nil = leave as-is).
	UpdateContactInfo(ctx context.Context, uid string, address, phoneNumber *string) error
}
