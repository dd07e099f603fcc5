// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "sristi/internal/domain/user"
)

// UserRepositoryFS implements user.Repository using Firestore.
//
// Collection design:
// - collection: users
// - docId: Firebase Auth UID ✅ (docId is the source of truth)
// - fields: id, email, username, profilePic, address, phoneNumber,
//   cart(array), wishlist(array), orders(array), createdAt
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *UserRepositoryFS) GetByID(ctx context.Context, uid string) (*userdom.User, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, errors.New("user_repository_fs: uid is empty")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	u := doc.toDomain()
	// docId is source of truth even when the stored id field drifts.
	u.ID = id
	return u, nil
}

// Create persists a new record. Creating an already-existing record is
// treated as success so concurrent self-healing loads stay idempotent.
func (r *UserRepositoryFS) Create(ctx context.Context, u *userdom.User) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}
	if u == nil {
		return errors.New("user_repository_fs: user is nil")
	}

	id := strings.TrimSpace(u.ID)
	if id == "" {
		return errors.New("user_repository_fs: Create requires user.ID (= uid) as docId")
	}

	_, err := r.col().Doc(id).Create(ctx, userDocFromDomain(u))
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	return err
}

// MutateCart applies fn to the freshly-read record inside a transaction and
// writes back only the cart field. Returns the committed record.
func (r *UserRepositoryFS) MutateCart(ctx context.Context, uid string, fn userdom.CartMutation) (*userdom.User, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("user_repository_fs: firestore client is nil")
	}
	if fn == nil {
		return nil, errors.New("user_repository_fs: mutation is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, errors.New("user_repository_fs: uid is empty")
	}

	ref := r.col().Doc(id)

	var out *userdom.User
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return userdom.ErrNotFound
			}
			return err
		}

		var doc userDoc
		if err := snap.DataTo(&doc); err != nil {
			return err
		}

		u := doc.toDomain()
		u.ID = id

		if err := fn(u); err != nil {
			return err
		}

		if err := tx.Update(ref, []firestore.Update{
			{Path: "cart", Value: cartDocsFromDomain(u.Cart)},
		}); err != nil {
			return err
		}

		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddWishlist uses the store's atomic array-union operator: no duplicates,
// no read-modify-write window.
func (r *UserRepositoryFS) AddWishlist(ctx context.Context, uid, productID string) error {
	return r.updateWishlist(ctx, uid, productID, true)
}

// RemoveWishlist uses the atomic array-removal operator. Removing an id that
// is not present is a no-op.
func (r *UserRepositoryFS) RemoveWishlist(ctx context.Context, uid, productID string) error {
	return r.updateWishlist(ctx, uid, productID, false)
}

func (r *UserRepositoryFS) updateWishlist(ctx context.Context, uid, productID string, add bool) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(uid)
	pid := strings.TrimSpace(productID)
	if id == "" {
		return errors.New("user_repository_fs: uid is empty")
	}
	if pid == "" {
		return errors.New("user_repository_fs: productID is empty")
	}

	var op any = firestore.ArrayUnion(pid)
	if !add {
		op = firestore.ArrayRemove(pid)
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "wishlist", Value: op},
	})
	if status.Code(err) == codes.NotFound {
		return userdom.ErrNotFound
	}
	return err
}

// UpdateContactInfo writes only the provided fields (nil = leave as-is).
// Both nil is a no-op.
func (r *UserRepositoryFS) UpdateContactInfo(ctx context.Context, uid string, address, phoneNumber *string) error {
	if r == nil || r.Client == nil {
		return errors.New("user_repository_fs: firestore client is nil")
	}

	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("user_repository_fs: uid is empty")
	}

	updates := make([]firestore.Update, 0, 2)
	if address != nil {
		updates = append(updates, firestore.Update{Path: "address", Value: strings.TrimSpace(*address)})
	}
	if phoneNumber != nil {
		updates = append(updates, firestore.Update{Path: "phoneNumber", Value: strings.TrimSpace(*phoneNumber)})
	}
	if len(updates) == 0 {
		return nil
	}

	_, err := r.col().Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return userdom.ErrNotFound
	}
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type userDoc struct {
	ID          string        `firestore:"id"`
	Email       string        `firestore:"email"`
	Username    string        `firestore:"username"`
	ProfilePic  string        `firestore:"profilePic"`
	Address     string        `firestore:"address"`
	PhoneNumber string        `firestore:"phoneNumber"`
	Cart        []cartItemDoc `firestore:"cart"`
	Wishlist    []string      `firestore:"wishlist"`
	Orders      []string      `firestore:"orders"`

	// serverTimestamp: populated by Firestore at write when zero.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

type cartItemDoc struct {
	ProductID string `firestore:"productId"`
	Qty       int    `firestore:"qty"`
}

func userDocFromDomain(u *userdom.User) userDoc {
	if u == nil {
		return userDoc{Cart: []cartItemDoc{}, Wishlist: []string{}, Orders: []string{}}
	}
	return userDoc{
		ID:          strings.TrimSpace(u.ID),
		Email:       strings.TrimSpace(u.Email),
		Username:    strings.TrimSpace(u.Username),
		ProfilePic:  strings.TrimSpace(u.ProfilePic),
		Address:     strings.TrimSpace(u.Address),
		PhoneNumber: strings.TrimSpace(u.PhoneNumber),
		Cart:        cartDocsFromDomain(u.Cart),
		Wishlist:    append([]string{}, u.Wishlist...),
		Orders:      append([]string{}, u.Orders...),
	}
}

func cartDocsFromDomain(items []userdom.CartItem) []cartItemDoc {
	out := make([]cartItemDoc, 0, len(items))
	for _, it := range items {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" || it.Qty <= 0 {
			continue
		}
		out = append(out, cartItemDoc{ProductID: pid, Qty: it.Qty})
	}
	return out
}

func (d userDoc) toDomain() *userdom.User {
	cart := make([]userdom.CartItem, 0, len(d.Cart))
	for _, it := range d.Cart {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" || it.Qty <= 0 {
			continue
		}
		cart = append(cart, userdom.CartItem{ProductID: pid, Qty: it.Qty})
	}

	wishlist := d.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}
	orders := d.Orders
	if orders == nil {
		orders = []string{}
	}

	return &userdom.User{
		ID:          strings.TrimSpace(d.ID),
		Email:       strings.TrimSpace(d.Email),
		Username:    strings.TrimSpace(d.Username),
		ProfilePic:  strings.TrimSpace(d.ProfilePic),
		Address:     strings.TrimSpace(d.Address),
		PhoneNumber: strings.TrimSpace(d.PhoneNumber),
		Cart:        cart,
		Wishlist:    wishlist,
		Orders:      orders,
		CreatedAt:   d.CreatedAt,
	}
}
