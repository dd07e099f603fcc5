// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "sristi/internal/domain/order"
	userdom "sristi/internal/domain/user"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - collection: orders
// - docId: generated
//
// Place also clears users/{uid}.cart and appends the new order id to
// users/{uid}.orders; all three writes commit in one transaction so a
// half-written checkout can never be observed.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

func (r *OrderRepositoryFS) userDoc(uid string) *firestore.DocumentRef {
	return r.Client.Collection("users").Doc(uid)
}

// Place persists the order, clears the user's cart and appends the order id
// to the user's order list atomically. Returns the generated order id.
func (r *OrderRepositoryFS) Place(ctx context.Context, o *orderdom.Order) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("order_repository_fs: firestore client is nil")
	}
	if o == nil {
		return "", errors.New("order_repository_fs: order is nil")
	}

	uid := strings.TrimSpace(o.UserID)
	if uid == "" {
		return "", errors.New("order_repository_fs: order.UserID is empty")
	}

	orderRef := r.col().NewDoc()
	userRef := r.userDoc(uid)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// read first: transactions require all reads before writes, and a
		// missing user record should fail the whole checkout.
		usnap, err := tx.Get(userRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return userdom.ErrNotFound
			}
			return err
		}
		if usnap == nil || !usnap.Exists() {
			return userdom.ErrNotFound
		}

		if err := tx.Create(orderRef, orderDocFromDomain(o)); err != nil {
			return err
		}

		return tx.Update(userRef, []firestore.Update{
			{Path: "cart", Value: []cartItemDoc{}},
			{Path: "orders", Value: firestore.ArrayUnion(orderRef.ID)},
		})
	})
	if err != nil {
		return "", err
	}

	log.Printf("[order_repository_fs] placed orderId=%s userId=%s items=%d total=%d method=%s",
		orderRef.ID, uid, len(o.Items), o.TotalCost, o.PaymentMethod)
	return orderRef.ID, nil
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (*orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	oid := strings.TrimSpace(id)
	if oid == "" {
		return nil, errors.New("order_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc orderDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	o := doc.toDomain()
	o.ID = oid
	return o, nil
}

// ListByIDs resolves the user's order-id list, newest first.
// Missing or malformed ids are skipped.
func (r *OrderRepositoryFS) ListByIDs(ctx context.Context, ids []string) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		oid := strings.TrimSpace(id)
		if oid == "" {
			continue
		}
		refs = append(refs, r.col().Doc(oid))
	}
	if len(refs) == 0 {
		return []orderdom.Order{}, nil
	}

	snaps, err := r.Client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	out := make([]orderdom.Order, 0, len(snaps))
	for _, snap := range snaps {
		if snap == nil || !snap.Exists() {
			continue
		}
		var doc orderDoc
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("[order_repository_fs] skip malformed doc id=%s err=%v", snap.Ref.ID, err)
			continue
		}
		o := doc.toDomain()
		o.ID = snap.Ref.ID
		out = append(out, *o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type orderDoc struct {
	UserID        string        `firestore:"userId"`
	Items         []cartItemDoc `firestore:"items"`
	TotalCost     int           `firestore:"totalCost"`
	Status        string        `firestore:"status"`
	PaymentMethod string        `firestore:"paymentMethod"`
	Address       string        `firestore:"address"`
	PhoneNumber   string        `firestore:"phoneNumber"`

	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

func orderDocFromDomain(o *orderdom.Order) orderDoc {
	return orderDoc{
		UserID:        strings.TrimSpace(o.UserID),
		Items:         cartDocsFromDomain(o.Items),
		TotalCost:     o.TotalCost,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Address:       strings.TrimSpace(o.Address),
		PhoneNumber:   strings.TrimSpace(o.PhoneNumber),
	}
}

func (d orderDoc) toDomain() *orderdom.Order {
	items := make([]userdom.CartItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, userdom.CartItem{ProductID: it.ProductID, Qty: it.Qty})
	}

	return &orderdom.Order{
		UserID:        d.UserID,
		Items:         items,
		TotalCost:     d.TotalCost,
		Status:        d.Status,
		PaymentMethod: d.PaymentMethod,
		Address:       d.Address,
		PhoneNumber:   d.PhoneNumber,
		CreatedAt:     d.CreatedAt,
	}
}
