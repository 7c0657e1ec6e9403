package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SaiBhavadeesh/network-security/internal/app/config"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
	"github.com/SaiBhavadeesh/network-security/internal/schema"
)

type stubSource struct {
	tbl *domain.Table
	err error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(context.Context) (*domain.Table, error) { return s.tbl, s.err }

type mockObs struct {
	mu       sync.Mutex
	counters map[string]float64
	gauges   map[string]float64
	errors   []string
}

func newMockObs() *mockObs {
	return &mockObs{counters: map[string]float64{}, gauges: map[string]float64{}}
}

func (m *mockObs) LogInfo(string, ...ports.Field) {}

func (m *mockObs) LogError(msg string, err error, _ ...ports.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockObs) LogCritical(msg string, err error, fields ...ports.Field) {
	m.LogError(msg, err, fields...)
}

func (m *mockObs) IncCounter(name string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += v
}

func (m *mockObs) ObserveLatency(string, float64) {}

func (m *mockObs) SetGauge(name string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = v
}

type mockCatalog struct {
	entries []domain.CatalogEntry
	err     error
}

func (m *mockCatalog) Name() string { return "mock" }

func (m *mockCatalog) Record(_ context.Context, e domain.CatalogEntry) error {
	m.entries = append(m.entries, e)
	return m.err
}

func testConfig(t *testing.T) (*config.Config, config.RunConfig) {
	t.Helper()
	cfg := config.Default()
	cfg.ArtifactDir = t.TempDir()
	run := config.NewRunConfig(cfg, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	return cfg, run
}

func numericSchema(t *testing.T, names ...string) schema.Schema {
	t.Helper()
	cols := make([]schema.Column, len(names))
	for i, n := range names {
		cols[i] = schema.Column{Name: n, Type: "int64"}
	}
	sc, err := schema.New(cols, names)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return sc
}

func writeFile(t *testing.T, path, body string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
