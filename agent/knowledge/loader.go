package knowledge

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalogRaw []byte

type SourceConfig struct {
	File        string `envconfig:"FILE" split_words:"true"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" split_words:"true"`
}

// Default returns the store backed by the embedded catalog.
func Default() *Store {
	c, err := ParseCatalog(defaultCatalogRaw)
	if err != nil {
		panic(fmt.Errorf("embedded catalog: %w", err))
	}
	return MustNew(c)
}

func ParseCatalog(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return c, nil
}

func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %q: %w", path, err)
	}
	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, err
	}
	return New(c)
}

// Load picks the configured source: a YAML file, a Postgres database, or the
// embedded default catalog when neither is set.
func Load(ctx context.Context, cfg SourceConfig) (*Store, error) {
	if path := strings.TrimSpace(cfg.File); path != "" {
		return LoadFile(path)
	}

	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		db := OpenPostgres(dsn)
		defer db.Close()
		return LoadPostgres(ctx, db)
	}

	return Default(), nil
}
