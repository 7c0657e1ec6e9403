package networksecurity

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrChannelCatalogClosed is returned when a channel catalog is written to after being closed.
var ErrChannelCatalogClosed = errors.New("networksecurity: channel catalog closed")

// CatalogFunc receives each stage artifact as soon as the stage finishes.
type CatalogFunc func(CatalogEntry) error

// NewCallbackCatalog adapts a CatalogFunc into a full Catalog implementation so
// callers can plug arbitrary functions without defining structs.
func NewCallbackCatalog(name string, fn CatalogFunc) Catalog {
	if name == "" {
		name = "callback"
	}
	return &callbackCatalog{name: name, fn: fn}
}

// NewChannelCatalog exposes entries via a channel; it returns the catalog, the
// read-only channel, and a close function that the caller should invoke when
// done.
func NewChannelCatalog(name string, buffer int) (Catalog, <-chan CatalogEntry, func()) {
	if name == "" {
		name = "channel"
	}
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan CatalogEntry, buffer)
	c := &channelCatalog{
		name:   name,
		ch:     ch,
		closed: make(chan struct{}),
	}
	return c, ch, func() { c.close() }
}

type callbackCatalog struct {
	name string
	fn   CatalogFunc
}

func (c *callbackCatalog) Record(_ context.Context, e CatalogEntry) error {
	if c.fn == nil {
		return fmt.Errorf("callback catalog %q: nil handler", c.name)
	}
	return c.fn(e)
}

func (c *callbackCatalog) Name() string { return c.name }

type channelCatalog struct {
	name   string
	ch     chan CatalogEntry
	closed chan struct{}
	once   sync.Once
}

func (c *channelCatalog) Record(ctx context.Context, e CatalogEntry) error {
	select {
	case <-c.closed:
		return ErrChannelCatalogClosed
	default:
	}

	select {
	case <-c.closed:
		return ErrChannelCatalogClosed
	case <-ctx.Done():
		return ctx.Err()
	case c.ch <- e:
		return nil
	}
}

func (c *channelCatalog) Name() string { return c.name }

func (c *channelCatalog) close() {
	c.once.Do(func() {
		close(c.closed)
		close(c.ch)
	})
}
