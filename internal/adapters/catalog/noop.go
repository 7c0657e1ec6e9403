// Package catalog keeps a queryable record of the artifacts each run produced.
package catalog

import (
	"context"

	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
)

// Noop drops every entry. It is used when no catalog database is configured.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) Record(context.Context, domain.CatalogEntry) error { return nil }

var _ ports.Catalog = Noop{}
