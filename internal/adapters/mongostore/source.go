// Package mongostore reads the raw dataset from a MongoDB collection and seeds a
// collection from CSV.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
)

// ErrNoConnectionString is returned on first use when no URL was resolved.
var ErrNoConnectionString = errors.New("mongostore: connection string is empty")

// Config names the collection to read. The connection string is resolved
// by the caller and passed separately.
type Config struct {
	Database   string        `yaml:"database"`
	Collection string        `yaml:"collection"`
	Timeout    time.Duration `yaml:"timeout"`
}

func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

func (c *Config) Validate() error {
	if c.Database == "" {
		return errors.New("database is required")
	}
	if c.Collection == "" {
		return errors.New("collection is required")
	}
	return nil
}

// Source fetches every document of one collection.
type Source struct {
	cfg    Config
	uri    string
	client *mongo.Client
	owned  bool
}

// NewSource defers connecting until the first Fetch, so a missing URL only
// fails when the document store is actually needed.
func NewSource(uri string, cfg Config) (*Source, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Source{cfg: cfg, uri: uri}, nil
}

// NewSourceWithClient reuses an existing client; Close leaves it open.
func NewSourceWithClient(client *mongo.Client, cfg Config) (*Source, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("mongo client is nil")
	}
	return &Source{cfg: cfg, client: client}, nil
}

func (s *Source) Name() string { return "mongodb" }

func (s *Source) collection(ctx context.Context) (*mongo.Collection, error) {
	if s.client == nil {
		client, err := connect(ctx, s.uri)
		if err != nil {
			return nil, err
		}
		s.client = client
		s.owned = true
	}
	return s.client.Database(s.cfg.Database).Collection(s.cfg.Collection), nil
}

// Fetch loads all documents into a table. Columns follow first-seen key
// order; keys absent from a document become missing cells.
func (s *Source) Fetch(ctx context.Context) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo find %s.%s: %w", s.cfg.Database, s.cfg.Collection, err)
	}
	defer cur.Close(ctx)

	var docs []bson.D
	for cur.Next(ctx) {
		var doc bson.D
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo decode: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	return documentsToTable(docs)
}

// Close disconnects a client opened by Fetch.
func (s *Source) Close(ctx context.Context) error {
	if s.client == nil || !s.owned {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.owned = false
	return err
}

func connect(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, ErrNoConnectionString
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}

func documentsToTable(docs []bson.D) (*domain.Table, error) {
	index := make(map[string]int)
	var columns []string
	for _, doc := range docs {
		for _, e := range doc {
			if _, ok := index[e.Key]; !ok {
				index[e.Key] = len(columns)
				columns = append(columns, e.Key)
			}
		}
	}

	rows := make([][]string, len(docs))
	for i, doc := range docs {
		row := make([]string, len(columns))
		for _, e := range doc {
			cell, err := valueToCell(e.Value)
			if err != nil {
				return nil, fmt.Errorf("document %d field %q: %w", i, e.Key, err)
			}
			row[index[e.Key]] = cell
		}
		rows[i] = row
	}
	return domain.NewTable(columns, rows)
}

func valueToCell(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return domain.Missing, nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case primitive.ObjectID:
		return val.Hex(), nil
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339Nano), nil
	case primitive.Decimal128:
		return val.String(), nil
	case primitive.Null, primitive.Undefined:
		return domain.Missing, nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

var _ ports.Source = (*Source)(nil)
