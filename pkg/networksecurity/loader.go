package networksecurity

import (
	"context"
	"os"

	"github.com/SaiBhavadeesh/network-security/internal/adapters/mongostore"
)

// SeedCollection inserts every row of the CSV at path into the configured
// MongoDB collection and returns the number of documents written. The
// connection string is resolved the same way the runtime resolves it.
func SeedCollection(ctx context.Context, cfg *Config, path, envFile string) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if err := loadEnvFile(envFile); err != nil {
		return 0, err
	}
	loader, err := mongostore.NewLoader(os.Getenv(cfg.Source.URLEnv), cfg.Source.Config)
	if err != nil {
		return 0, err
	}
	defer loader.Close(ctx)
	return loader.InsertCSV(ctx, path)
}
