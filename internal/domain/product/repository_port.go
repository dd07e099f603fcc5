// internal/domain/product/repository_port.go
package product

import "context"

// Repository is a read-only port for the products collection.
//
// Storage (Firestore):
// - collection: products
// - ordering: createdAt desc (newest first)
type Repository interface {
	// List returns the full product list ordered by createdAt desc.
	List(ctx context.Context) ([]Product, error)

	// GetByID returns (nil, nil) if the product does not exist.
	GetByID(ctx context.Context, id string) (*Product, error)

	// Subscribe streams the full re-read list on every snapshot change.
	// The returned stop function tears the listener down; the channel is
	// closed when the listener stops.
	Subscribe(ctx context.Context) (<-chan []Product, func(), error)
}
