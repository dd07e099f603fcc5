// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	productdom "sristi/internal/domain/product"
)

var (
	ErrCatalogInvalidArgument = errors.New("catalog_usecase: invalid argument")
	ErrProductNotFound        = errors.New("catalog_usecase: product not found")
)

// CatalogUsecase serves the product list and the name-substring search over
// it. Search is a filter, not a ranking: relative order (createdAt desc, as
// stored) is preserved.
type CatalogUsecase struct {
	repo productdom.Repository
}

func NewCatalogUsecase(repo productdom.Repository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo}
}

// List returns the full catalog, newest first. A blank query returns the
// list unchanged; otherwise the case-insensitive substring subsequence.
func (uc *CatalogUsecase) List(ctx context.Context, query string) ([]productdom.Product, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return productdom.Filter(products, query), nil
}

// Get returns one product.
func (uc *CatalogUsecase) Get(ctx context.Context, id string) (*productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return nil, ErrCatalogInvalidArgument
	}

	p, err := uc.repo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Subscribe exposes the repository's live product feed. The caller owns the
// returned stop function.
func (uc *CatalogUsecase) Subscribe(ctx context.Context) (<-chan []productdom.Product, func(), error) {
	return uc.repo.Subscribe(ctx)
}
