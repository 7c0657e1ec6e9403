package networksecurity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/SaiBhavadeesh/network-security/internal/adapters/catalog"
	"github.com/SaiBhavadeesh/network-security/internal/adapters/csvsource"
	"github.com/SaiBhavadeesh/network-security/internal/adapters/mongostore"
	"github.com/SaiBhavadeesh/network-security/internal/adapters/observability"
	"github.com/SaiBhavadeesh/network-security/internal/app/config"
	"github.com/SaiBhavadeesh/network-security/internal/app/pipeline"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
	"github.com/SaiBhavadeesh/network-security/internal/schema"
)

// RuntimeOption customizes the dependencies used by Runtime.
type RuntimeOption func(*runtimeOverrides)

type runtimeOverrides struct {
	source        Source
	catalog       Catalog
	observability Observability
	schema        *Schema
	envFile       string
	now           func() time.Time
}

// WithSource injects a custom source instead of the configured MongoDB or CSV one.
func WithSource(src Source) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.source = src
	}
}

// WithCatalog injects a custom artifact catalog.
func WithCatalog(c Catalog) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.catalog = c
	}
}

// WithObservability plugs in a custom observability backend.
func WithObservability(obs Observability) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.observability = obs
	}
}

// WithSchema replaces the schema loaded from schema_path.
func WithSchema(sc Schema) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.schema = &sc
	}
}

// WithEnvFile changes the dotenv file read before resolving the connection
// string. The default is ".env"; a missing file is not an error.
func WithEnvFile(path string) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.envFile = path
	}
}

// WithClock fixes the time used for the run timestamp.
func WithClock(now func() time.Time) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.now = now
	}
}

// Runtime owns the adapters of one training run and exposes simple lifecycle
// hooks for embedding the pipeline inside any Go program.
type Runtime struct {
	cfg      *Config
	run      RunConfig
	obs      ports.Observability
	prom     *observability.PromObs
	source   ports.Source
	catalog  ports.Catalog
	pgCat    *catalog.PostgresCatalog
	db       *sql.DB
	mongo    *mongostore.Source
	pipeline *pipeline.TrainingPipeline
}

// NewRuntime bootstraps the default adapters (MongoDB or CSV source, Postgres
// or no-op catalog, Prometheus observability). RuntimeOption values override
// any of them.
func NewRuntime(cfg *Config, opts ...RuntimeOption) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	overrides := runtimeOverrides{envFile: ".env", now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	rt := &Runtime{cfg: cfg}

	obs := overrides.observability
	if obs == nil {
		rt.prom = observability.NewPromObs(nil)
		obs = rt.prom
	}
	rt.obs = obs

	sc := overrides.schema
	if sc == nil {
		loaded, err := schema.Load(cfg.SchemaPath)
		if err != nil {
			return nil, fmt.Errorf("load schema: %w", err)
		}
		sc = &loaded
	}

	src := overrides.source
	if src == nil {
		var err error
		src, err = rt.defaultSource(overrides.envFile)
		if err != nil {
			return nil, err
		}
	}
	rt.source = src

	cat := overrides.catalog
	if cat == nil {
		if cfg.Catalog.ConnString == "" {
			cat = catalog.Noop{}
		} else {
			db, err := sql.Open("postgres", cfg.Catalog.ConnString)
			if err != nil {
				return nil, err
			}
			pg, err := catalog.NewPostgresCatalog(db, cfg.Catalog.Table)
			if err != nil {
				db.Close()
				return nil, err
			}
			rt.db, rt.pgCat, cat = db, pg, pg
		}
	}
	rt.catalog = cat

	rt.run = config.NewRunConfig(cfg, overrides.now())
	rt.pipeline = pipeline.NewTrainingPipeline(cfg, rt.run, src, *sc, cat, obs)
	return rt, nil
}

// defaultSource resolves the document store URL once, before any stage runs.
func (r *Runtime) defaultSource(envFile string) (ports.Source, error) {
	switch r.cfg.Source.Kind {
	case config.SourceCSV:
		return csvsource.New(r.cfg.Source.CSVPath)
	default:
		if err := loadEnvFile(envFile); err != nil {
			return nil, err
		}
		src, err := mongostore.NewSource(os.Getenv(r.cfg.Source.URLEnv), r.cfg.Source.Config)
		if err != nil {
			return nil, err
		}
		r.mongo = src
		return src, nil
	}
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// RunConfig returns the run this runtime writes under.
func (r *Runtime) RunConfig() RunConfig { return r.run }

// Run executes the three stages once. Metrics are written next to the
// artifacts even when a stage fails.
func (r *Runtime) Run(ctx context.Context) (Result, error) {
	if r == nil {
		return Result{}, fmt.Errorf("runtime is nil")
	}
	if r.pgCat != nil {
		if err := r.pgCat.EnsureTable(ctx); err != nil {
			r.obs.LogError("catalog_unavailable", err)
		}
	}

	res, err := r.pipeline.Run(ctx)

	if r.prom != nil && r.cfg.Metrics.Enabled() {
		if mkErr := os.MkdirAll(r.run.ArtifactDir, 0o755); mkErr == nil {
			if werr := r.prom.WriteTextfile(r.run.MetricsPath()); werr != nil {
				r.obs.LogError("metrics_textfile_failed", werr)
			}
		}
	}
	return res, err
}

// Shutdown closes the document store client and the catalog database.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error

	if r.mongo != nil {
		if err := r.mongo.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if r.db != nil {
		if err := r.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
