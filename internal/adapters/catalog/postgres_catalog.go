package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresCatalog records one row per (run, stage) with the artifact as JSON.
type PostgresCatalog struct {
	db        *sql.DB
	tableName string
}

func NewPostgresCatalog(db *sql.DB, table string) (*PostgresCatalog, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("catalog: invalid table name %q", table)
	}
	return &PostgresCatalog{db: db, tableName: table}, nil
}

func (c *PostgresCatalog) Name() string { return "postgres" }

// EnsureTable creates the catalog table when it does not exist yet.
func (c *PostgresCatalog) EnsureTable(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS "+c.tableName+
		" (run_id TEXT NOT NULL, run_timestamp TEXT NOT NULL, stage TEXT NOT NULL,"+
		" artifact JSONB NOT NULL, recorded_at TIMESTAMPTZ NOT NULL, PRIMARY KEY (run_id, stage))")
	return err
}

func (c *PostgresCatalog) Record(ctx context.Context, e domain.CatalogEntry) error {
	body, err := json.Marshal(e.Artifact)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	// Re-recording a stage of the same run is a no-op.
	query := "INSERT INTO " + c.tableName +
		" (run_id, run_timestamp, stage, artifact, recorded_at) VALUES ($1,$2,$3,$4,$5)" +
		" ON CONFLICT (run_id, stage) DO NOTHING"
	_, err = c.db.ExecContext(ctx, query, e.RunID, e.RunTimestamp, e.Stage, body, e.RecordedAt)
	return err
}

var _ ports.Catalog = (*PostgresCatalog)(nil)
