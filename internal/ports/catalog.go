package ports

import (
	"context"

	"github.com/SaiBhavadeesh/network-security/internal/domain"
)

// Catalog persists the artifact emitted by each stage of a run.
type Catalog interface {
	Record(ctx context.Context, entry domain.CatalogEntry) error
	Name() string
}
