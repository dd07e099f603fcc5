// internal/domain/order/repository_port.go
package order

import "context"

// Repository is a persistence port for the orders collection.
//
// Storage (Firestore):
// - collection: orders
// - docId: generated
// - order creation also clears the user's cart and appends the new order id
//   to users/{uid}.orders; Place performs both in one transaction so a
//   half-written checkout cannot be observed.
type Repository interface {
	// Place persists the order, clears the user's cart and appends the
	// order id to the user's order list atomically. Returns the order id.
	Place(ctx context.Context, o *Order) (string, error)

	// GetByID returns (nil, nil) if the order does not exist.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByIDs resolves the user's order-id list, newest first.
	// Missing ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]Order, error)
}
