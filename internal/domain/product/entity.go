// internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidProduct = errors.New("product: invalid")
)

// Product represents "a products/{id} document".
// Read-only from the storefront's perspective; records are created and
// maintained by admin tooling out of band.
//
// Rating is the stored, curated value. It is NOT recomputed from reviews.
type Product struct {
	ID            string    `json:"id" firestore:"id"`
	Name          string    `json:"name" firestore:"name"`
	Price         int       `json:"price" firestore:"price"`
	DiscountPrice int       `json:"discountPrice,omitempty" firestore:"discountPrice,omitempty"`
	Images        []string  `json:"images" firestore:"images"`
	Rating        float64   `json:"rating,omitempty" firestore:"rating,omitempty"`
	Description   string    `json:"description,omitempty" firestore:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
}

// Filter returns the subsequence of products whose name contains query as a
// case-insensitive substring, preserving original relative order.
// A blank or whitespace-only query returns the input unchanged.
func Filter(products []Product, query string) []Product {
	q := strings.TrimSpace(query)
	if q == "" {
		return products
	}

	q = strings.ToLower(q)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// FindByID returns the product with the given id from an in-memory list,
// or (Product{}, false).
func FindByID(products []Product, id string) (Product, bool) {
	pid := strings.TrimSpace(id)
	for _, p := range products {
		if p.ID == pid {
			return p, true
		}
	}
	return Product{}, false
}
