// internal/domain/banner/entity.go
package banner

import "context"

// Banner is the rotating promotional carousel source: an ordered list of
// poster image URLs stored at banners/home. Read-only to the storefront.
type Banner struct {
	Posters []string `json:"posters" firestore:"posters"`
}

// Repository is a read-only port for the banners collection.
type Repository interface {
	// GetHome returns the home banner. A missing doc yields an empty list.
	GetHome(ctx context.Context) (*Banner, error)

	// SubscribeHome streams the poster list on every snapshot change.
	// The returned stop function tears the listener down.
	SubscribeHome(ctx context.Context) (<-chan []string, func(), error)
}
