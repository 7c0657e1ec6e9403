// Package csvsource ingests the raw dataset from a local CSV file instead of
// the document store.
package csvsource

import (
	"context"
	"errors"

	"github.com/SaiBhavadeesh/network-security/internal/adapters/csvstore"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
)

type Source struct {
	path string
}

func New(path string) (*Source, error) {
	if path == "" {
		return nil, errors.New("csv source path is required")
	}
	return &Source{path: path}, nil
}

func (s *Source) Name() string { return "csv:" + s.path }

func (s *Source) Fetch(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return csvstore.Read(s.path)
}

var _ ports.Source = (*Source)(nil)
