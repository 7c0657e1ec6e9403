// Package schema holds the declared shape of the raw dataset: ordered typed
// columns and the subset expected to be numeric.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed default_schema.yaml
var defaultSchema []byte

// Column is one declared column.
type Column struct {
	Name string
	Type string
}

// Schema is immutable once built; accessors return copies.
type Schema struct {
	columns   []Column
	numerical []string
}

// New builds a schema from already-parsed values.
func New(columns []Column, numerical []string) (Schema, error) {
	if len(columns) == 0 {
		return Schema{}, errors.New("schema declares no columns")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if c.Name == "" {
			return Schema{}, errors.New("schema column with empty name")
		}
		if _, dup := seen[c.Name]; dup {
			return Schema{}, fmt.Errorf("schema column %q declared twice", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return Schema{
		columns:   append([]Column(nil), columns...),
		numerical: append([]string(nil), numerical...),
	}, nil
}

// file mirrors the on-disk layout:
//
//	columns:
//	  - having_IP_Address: int64
//	numerical_columns:
//	  - having_IP_Address
type file struct {
	Columns          []map[string]string `yaml:"columns"`
	NumericalColumns []string            `yaml:"numerical_columns"`
}

// Parse decodes a YAML schema document.
func Parse(raw []byte) (Schema, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Schema{}, fmt.Errorf("decode schema: %w", err)
	}
	cols := make([]Column, 0, len(f.Columns))
	for i, entry := range f.Columns {
		if len(entry) != 1 {
			return Schema{}, fmt.Errorf("schema columns[%d]: expected a single name: type pair, got %d", i, len(entry))
		}
		for name, typ := range entry {
			cols = append(cols, Column{Name: name, Type: typ})
		}
	}
	return New(cols, f.NumericalColumns)
}

// Load reads a schema file; an empty path selects the embedded default.
func Load(path string) (Schema, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, err
	}
	return Parse(raw)
}

// Default returns the embedded phishing-dataset schema.
func Default() (Schema, error) {
	return Parse(defaultSchema)
}

func (s Schema) Columns() []Column { return append([]Column(nil), s.columns...) }

func (s Schema) ColumnCount() int { return len(s.columns) }

func (s Schema) NumericalColumns() []string { return append([]string(nil), s.numerical...) }

// NumericDiff compares actual numeric columns with the declared set,
// ignoring order. It returns the declared names not found and the found
// names not declared, both sorted.
func (s Schema) NumericDiff(actual []string) (missing, unexpected []string) {
	want := make(map[string]struct{}, len(s.numerical))
	for _, n := range s.numerical {
		want[n] = struct{}{}
	}
	got := make(map[string]struct{}, len(actual))
	for _, n := range actual {
		got[n] = struct{}{}
		if _, ok := want[n]; !ok {
			unexpected = append(unexpected, n)
		}
	}
	for n := range want {
		if _, ok := got[n]; !ok {
			missing = append(missing, n)
		}
	}
	sort.Strings(missing)
	sort.Strings(unexpected)
	return missing, unexpected
}
