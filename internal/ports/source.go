package ports

import (
	"context"

	"github.com/SaiBhavadeesh/network-security/internal/domain"
)

// Source loads the complete raw dataset (document store, local CSV, fixtures).
type Source interface {
	Fetch(ctx context.Context) (*domain.Table, error)
	Name() string
}
