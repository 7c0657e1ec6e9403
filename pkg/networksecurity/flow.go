package networksecurity

import (
	"context"
	"errors"
	"fmt"
)

// Flow is a convenience builder that lets callers say Conf → Ingest → Publish
// without touching the underlying hexagonal wiring.
type Flow struct {
	cfg  *Config
	opts []RuntimeOption
}

// FlowOption mutates the Flow after configuration is loaded.
type FlowOption func(*Flow)

// IngestOption configures the input side (source, schema, env file).
type IngestOption func(*Flow)

// PublishOption configures the output side (catalog, observability).
type PublishOption func(*Flow)

// Conf loads YAML from disk, applies FlowOption values, and returns a Flow builder.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return ConfFromConfig(cfg, opts...)
}

// ConfFromConfig bootstraps a Flow from an in-memory Config.
func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	f := &Flow{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// Config returns the underlying configuration so callers can tweak it before building a runtime.
func (f *Flow) Config() *Config {
	if f == nil {
		return nil
	}
	return f.cfg
}

// Options appends raw RuntimeOption values to the builder for advanced scenarios.
func (f *Flow) Options(opts ...RuntimeOption) *Flow {
	if f == nil {
		return nil
	}
	f.appendOptions(opts...)
	return f
}

// Ingest records input-side overrides.
func (f *Flow) Ingest(opts ...IngestOption) *Flow {
	if f == nil {
		return nil
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Publish records output-side overrides and builds a Runtime ready to run.
func (f *Flow) Publish(opts ...PublishOption) (*Runtime, error) {
	if f == nil {
		return nil, fmt.Errorf("flow is nil")
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return NewRuntime(f.cfg, f.opts...)
}

// Run is a shortcut for Publish + Runtime.Run + Runtime.Shutdown.
func (f *Flow) Run(ctx context.Context, opts ...PublishOption) (Result, error) {
	rt, err := f.Publish(opts...)
	if err != nil {
		return Result{}, err
	}
	res, runErr := rt.Run(ctx)
	return res, errors.Join(runErr, rt.Shutdown(ctx))
}

// WithFlowOptions appends RuntimeOption values during Conf.
func WithFlowOptions(opts ...RuntimeOption) FlowOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(opts...)
		}
	}
}

// IngestSource injects a custom source (HTTP export, database table, fixtures).
func IngestSource(src Source) IngestOption {
	return func(f *Flow) {
		if f != nil && src != nil {
			f.appendOptions(WithSource(src))
		}
	}
}

// IngestCSV switches the configured source to a local CSV file.
func IngestCSV(path string) IngestOption {
	return func(f *Flow) {
		if f != nil && path != "" {
			f.cfg.Source.Kind = SourceCSV
			f.cfg.Source.CSVPath = path
		}
	}
}

// IngestSchema validates against sc instead of the schema file.
func IngestSchema(sc Schema) IngestOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(WithSchema(sc))
		}
	}
}

// PublishCatalog injects a custom Catalog implementation.
func PublishCatalog(c Catalog) PublishOption {
	return func(f *Flow) {
		if f != nil && c != nil {
			f.appendOptions(WithCatalog(c))
		}
	}
}

// PublishCallback installs a catalog built from a simple callback function.
func PublishCallback(name string, fn CatalogFunc) PublishOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(WithCatalog(NewCallbackCatalog(name, fn)))
		}
	}
}

// PublishObservability replaces the default observability backend.
func PublishObservability(obs Observability) PublishOption {
	return func(f *Flow) {
		if f != nil && obs != nil {
			f.appendOptions(WithObservability(obs))
		}
	}
}

func (f *Flow) appendOptions(opts ...RuntimeOption) {
	for _, opt := range opts {
		if opt != nil {
			f.opts = append(f.opts, opt)
		}
	}
}
