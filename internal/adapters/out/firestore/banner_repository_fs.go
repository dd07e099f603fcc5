// internal/adapters/out/firestore/banner_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	bannerdom "sristi/internal/domain/banner"
)

// BannerRepositoryFS implements banner.Repository using Firestore.
//
// Collection design:
// - collection: banners
// - docId: "home" (fixed)
// - fields: posters(array of image URLs)
type BannerRepositoryFS struct {
	Client *firestore.Client
}

func NewBannerRepositoryFS(client *firestore.Client) *BannerRepositoryFS {
	return &BannerRepositoryFS{Client: client}
}

func (r *BannerRepositoryFS) doc() *firestore.DocumentRef {
	return r.Client.Collection("banners").Doc("home")
}

// GetHome returns the home banner. A missing doc yields an empty list
// rather than an error so a fresh project renders an empty carousel.
func (r *BannerRepositoryFS) GetHome(ctx context.Context) (*bannerdom.Banner, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("banner_repository_fs: firestore client is nil")
	}

	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &bannerdom.Banner{Posters: []string{}}, nil
		}
		return nil, err
	}

	return bannerFromSnapshot(snap), nil
}

// SubscribeHome attaches a snapshot listener to banners/home and emits the
// poster list on every change. The stop function detaches the listener.
func (r *BannerRepositoryFS) SubscribeHome(ctx context.Context) (<-chan []string, func(), error) {
	if r == nil || r.Client == nil {
		return nil, nil, errors.New("banner_repository_fs: firestore client is nil")
	}

	ctx, cancel := context.WithCancel(ctx)
	it := r.doc().Snapshots(ctx)

	ch := make(chan []string, 1)

	go func() {
		defer close(ch)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("[banner_repository_fs] snapshot listener stopped: %v", err)
				}
				return
			}

			posters := []string{}
			if snap != nil && snap.Exists() {
				posters = bannerFromSnapshot(snap).Posters
			}

			select {
			case ch <- posters:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, cancel, nil
}

type bannerDoc struct {
	Posters []string `firestore:"posters"`
}

func bannerFromSnapshot(snap *firestore.DocumentSnapshot) *bannerdom.Banner {
	var doc bannerDoc
	if err := snap.DataTo(&doc); err != nil {
		return &bannerdom.Banner{Posters: []string{}}
	}
	if doc.Posters == nil {
		doc.Posters = []string{}
	}
	return &bannerdom.Banner{Posters: doc.Posters}
}
