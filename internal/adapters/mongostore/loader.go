package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SaiBhavadeesh/network-security/internal/adapters/csvstore"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
)

// Loader seeds a collection with CSV rows, one document per row.
type Loader struct {
	cfg    Config
	uri    string
	client *mongo.Client
	owned  bool
}

func NewLoader(uri string, cfg Config) (*Loader, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loader{cfg: cfg, uri: uri}, nil
}

func NewLoaderWithClient(client *mongo.Client, cfg Config) (*Loader, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("mongo client is nil")
	}
	return &Loader{cfg: cfg, client: client}, nil
}

// InsertCSV inserts every row of the CSV at path and returns how many
// documents were written.
func (l *Loader) InsertCSV(ctx context.Context, path string) (int, error) {
	tbl, err := csvstore.Read(path)
	if err != nil {
		return 0, err
	}
	return l.InsertTable(ctx, tbl)
}

// InsertTable inserts the rows of t. Integers and floats are stored as
// numbers and missing cells as null.
func (l *Loader) InsertTable(ctx context.Context, t *domain.Table) (int, error) {
	if t.Len() == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	if l.client == nil {
		client, err := connect(ctx, l.uri)
		if err != nil {
			return 0, err
		}
		l.client = client
		l.owned = true
	}

	docs := make([]interface{}, t.Len())
	for i, row := range t.Rows {
		doc := make(bson.D, len(t.Columns))
		for j, col := range t.Columns {
			doc[j] = bson.E{Key: col, Value: cellToValue(row[j])}
		}
		docs[i] = doc
	}

	coll := l.client.Database(l.cfg.Database).Collection(l.cfg.Collection)
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("mongo insert into %s.%s: %w", l.cfg.Database, l.cfg.Collection, err)
	}
	return len(res.InsertedIDs), nil
}

func (l *Loader) Close(ctx context.Context) error {
	if l.client == nil || !l.owned {
		return nil
	}
	err := l.client.Disconnect(ctx)
	l.client = nil
	l.owned = false
	return err
}

func cellToValue(cell string) interface{} {
	if cell == domain.Missing {
		return nil
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}
