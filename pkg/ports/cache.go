package ports

import (
	"context"

	"github.com/flexile/fieldlayout/pkg/domain"
)

// LayoutCache stores computed layouts keyed by form ID and fingerprint.
type LayoutCache interface {
	// Get returns domain.ErrLayoutNotCached on a miss.
	Get(ctx context.Context, key string) (domain.Layout, error)
	Put(ctx context.Context, key string, layout domain.Layout) error
	Delete(ctx context.Context, key string) error
}
