// internal/adapters/out/firestore/review_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	reviewdom "sristi/internal/domain/review"
)

// ReviewRepositoryFS implements review.Repository using Firestore.
//
// Collection design:
// - collection: products/{productId}/reviews
// - docId: reviewer userId ✅ (the key itself enforces one review per user)
// - createdAt: server timestamp
type ReviewRepositoryFS struct {
	Client *firestore.Client
}

func NewReviewRepositoryFS(client *firestore.Client) *ReviewRepositoryFS {
	return &ReviewRepositoryFS{Client: client}
}

func (r *ReviewRepositoryFS) col(productID string) *firestore.CollectionRef {
	return r.Client.Collection("products").Doc(productID).Collection("reviews")
}

// ListByProductID returns all reviews for the product, newest first.
// A product with no reviews (or no subcollection) yields an empty slice.
func (r *ReviewRepositoryFS) ListByProductID(ctx context.Context, productID string) ([]reviewdom.Review, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("review_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(productID)
	if pid == "" {
		return nil, errors.New("review_repository_fs: productID is empty")
	}

	snaps, err := r.col(pid).OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]reviewdom.Review, 0, len(snaps))
	for _, snap := range snaps {
		var doc reviewDoc
		if err := snap.DataTo(&doc); err != nil {
			continue
		}
		rv := doc.toDomain()
		rv.ID = snap.Ref.ID
		rv.UserID = snap.Ref.ID
		rv.ProductID = pid
		out = append(out, rv)
	}
	return out, nil
}

// Create inserts the review under docId = userId. A second review by the
// same user fails the create and maps to ErrAlreadyReviewed.
func (r *ReviewRepositoryFS) Create(ctx context.Context, rv *reviewdom.Review) error {
	if r == nil || r.Client == nil {
		return errors.New("review_repository_fs: firestore client is nil")
	}
	if rv == nil {
		return errors.New("review_repository_fs: review is nil")
	}

	pid := strings.TrimSpace(rv.ProductID)
	uid := strings.TrimSpace(rv.UserID)
	if pid == "" || uid == "" {
		return errors.New("review_repository_fs: productID / userID is empty")
	}

	doc := reviewDoc{
		Username: strings.TrimSpace(rv.Username),
		Comment:  strings.TrimSpace(rv.Comment),
		Rating:   rv.Rating,
	}

	_, err := r.col(pid).Doc(uid).Create(ctx, doc)
	if status.Code(err) == codes.AlreadyExists {
		return reviewdom.ErrAlreadyReviewed
	}
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type reviewDoc struct {
	Username string `firestore:"username"`
	Comment  string `firestore:"comment"`
	Rating   int    `firestore:"rating"`

	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

func (d reviewDoc) toDomain() reviewdom.Review {
	return reviewdom.Review{
		Username:  strings.TrimSpace(d.Username),
		Comment:   strings.TrimSpace(d.Comment),
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
	}
}
