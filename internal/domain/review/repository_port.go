// internal/domain/review/repository_port.go
package review

import "context"

// Repository is a persistence port for product review subcollections.
//
// Storage (Firestore):
// - collection: products/{productId}/reviews
// - docId: reviewer userId (uniqueness per (productId, userId) by key)
// - createdAt: server timestamp
type Repository interface {
	// ListByProductID returns all reviews ordered by createdAt desc.
	ListByProductID(ctx context.Context, productID string) ([]Review, error)

	// Create inserts the review. Returns ErrAlreadyReviewed if a review by
	// the same user already exists for the product.
	Create(ctx context.Context, r *Review) error
}
