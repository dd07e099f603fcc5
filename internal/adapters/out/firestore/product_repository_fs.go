// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productdom "sristi/internal/domain/product"
)

// ProductRepositoryFS implements product.Repository using Firestore.
//
// Collection design:
// - collection: products
// - docId: generated (docId is the source of truth)
// - ordering: createdAt desc (newest first)
//
// The storefront never writes this collection; records are maintained by
// admin tooling out of band.
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

func (r *ProductRepositoryFS) query() firestore.Query {
	return r.col().OrderBy("createdAt", firestore.Desc)
}

// List returns the full catalog, newest first.
func (r *ProductRepositoryFS) List(ctx context.Context) ([]productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	snaps, err := r.query().Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]productdom.Product, 0, len(snaps))
	for _, snap := range snaps {
		p, err := productFromSnapshot(snap)
		if err != nil {
			log.Printf("[product_repository_fs] skip malformed doc id=%s err=%v", snap.Ref.ID, err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(id)
	if pid == "" {
		return nil, errors.New("product_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(pid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	p, err := productFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Subscribe attaches a snapshot listener to the catalog query and re-emits
// the full list on every change. The stop function detaches the listener;
// the channel is closed when the listener stops.
func (r *ProductRepositoryFS) Subscribe(ctx context.Context) (<-chan []productdom.Product, func(), error) {
	if r == nil || r.Client == nil {
		return nil, nil, errors.New("product_repository_fs: firestore client is nil")
	}

	ctx, cancel := context.WithCancel(ctx)
	it := r.query().Snapshots(ctx)

	ch := make(chan []productdom.Product, 1)

	go func() {
		defer close(ch)
		defer it.Stop()

		for {
			qsnap, err := it.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("[product_repository_fs] snapshot listener stopped: %v", err)
				}
				return
			}

			out := make([]productdom.Product, 0)
			for {
				snap, err := qsnap.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("[product_repository_fs] snapshot iterate: %v", err)
					break
				}
				p, err := productFromSnapshot(snap)
				if err != nil {
					continue
				}
				out = append(out, p)
			}

			select {
			case ch <- out:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, cancel, nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type productDoc struct {
	Name          string    `firestore:"name"`
	Price         int       `firestore:"price"`
	DiscountPrice int       `firestore:"discountPrice"`
	Images        []string  `firestore:"images"`
	Rating        float64   `firestore:"rating"`
	Description   string    `firestore:"description"`
	CreatedAt     time.Time `firestore:"createdAt"`
}

func productFromSnapshot(snap *firestore.DocumentSnapshot) (productdom.Product, error) {
	if snap == nil {
		return productdom.Product{}, errors.New("product_repository_fs: snapshot is nil")
	}

	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return productdom.Product{}, err
	}

	images := doc.Images
	if images == nil {
		images = []string{}
	}

	return productdom.Product{
		ID:            snap.Ref.ID,
		Name:          strings.TrimSpace(doc.Name),
		Price:         doc.Price,
		DiscountPrice: doc.DiscountPrice,
		Images:        images,
		Rating:        doc.Rating,
		Description:   doc.Description,
		CreatedAt:     doc.CreatedAt,
	}, nil
}
