// internal/domain/review/entity.go
package review

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidReview   = errors.New("review: invalid")
	ErrAlreadyReviewed = errors.New("review: user has already reviewed this product")
)

// Rating bounds (star scale).
const (
	MinRating = 1
	MaxRating = 5
)

// Review is an append-only child of a Product.
//   - docId = reviewer's userId, so the store itself enforces "at most one
//     review per (productId, userId)" instead of a best-effort client scan.
type Review struct {
	ID        string    `json:"id" firestore:"id"`
	ProductID string    `json:"productId" firestore:"productId"`
	UserID    string    `json:"userId" firestore:"userId"`
	Username  string    `json:"username" firestore:"username"`
	Comment   string    `json:"comment" firestore:"comment"`
	Rating    int       `json:"rating" firestore:"rating"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// New builds a review pending persistence. CreatedAt is assigned by the
// store's server timestamp, not here.
func New(productID, userID, username, comment string, rating int) (*Review, error) {
	pid := strings.TrimSpace(productID)
	uid := strings.TrimSpace(userID)
	if pid == "" || uid == "" {
		return nil, ErrInvalidReview
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidReview
	}

	return &Review{
		ID:        uid,
		ProductID: pid,
		UserID:    uid,
		Username:  strings.TrimSpace(username),
		Comment:   strings.TrimSpace(comment),
		Rating:    rating,
	}, nil
}
