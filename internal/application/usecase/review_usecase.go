// internal/application/usecase/review_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	reviewdom "sristi/internal/domain/review"
)

var (
	ErrReviewInvalidArgument = errors.New("review_usecase: invalid argument")
)

// ReviewUsecase serves product reviews. Reviews are append-only; uniqueness
// per (product, user) is enforced by the storage key, not by scanning.
type ReviewUsecase struct {
	repo reviewdom.Repository
}

func NewReviewUsecase(repo reviewdom.Repository) *ReviewUsecase {
	return &ReviewUsecase{repo: repo}
}

// ListByProduct returns all reviews for the product, newest first.
// Each call is a full round trip; there is no cross-call cache.
func (uc *ReviewUsecase) ListByProduct(ctx context.Context, productID string) ([]reviewdom.Review, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return nil, ErrReviewInvalidArgument
	}
	return uc.repo.ListByProductID(ctx, pid)
}

// Add appends a review with a server-assigned timestamp. A second review by
// the same user fails with reviewdom.ErrAlreadyReviewed.
//
// The product's stored rating is intentionally NOT recomputed here.
func (uc *ReviewUsecase) Add(ctx context.Context, productID, userID, username, comment string, rating int) (*reviewdom.Review, error) {
	r, err := reviewdom.New(productID, userID, username, comment, rating)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReviewInvalidArgument, err)
	}

	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
