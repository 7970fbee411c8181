package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/margin"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Config is the content of the optional configuration file.
//
//	currency = "EUR"
//	[targets]
//	margin = 30
//	markup = 50
type Config struct {
	Currency string        `toml:"currency"`
	Targets  TargetsConfig `toml:"targets"`
	Catalog  CatalogConfig `toml:"catalog"`
}

// TargetsConfig holds the default percentages of apply-margin and apply-markup.
type TargetsConfig struct {
	Margin float64 `toml:"margin"`
	Markup float64 `toml:"markup"`
}

// CatalogConfig holds the jsonpath expressions used to import JSON catalogs.
type CatalogConfig struct {
	Items          string `toml:"items"`
	Code           string `toml:"code"`
	Name           string `toml:"name"`
	ReferencePrice string `toml:"reference_price"`
}

// DefaultConfig returns the configuration used when there is no file.
func DefaultConfig() Config {
	q := margin.DefaultCatalogQuery
	return Config{
		Targets: TargetsConfig{Margin: 30, Markup: 50},
		Catalog: CatalogConfig{
			Items:          q.Items,
			Code:           q.Code,
			Name:           q.Name,
			ReferencePrice: q.ReferencePrice,
		},
	}
}

// LoadConfig reads the configuration file at path. Values missing from the
// file keep their default, a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	return cfg, nil
}

// SessionTargets converts the configured percentages.
func (c Config) SessionTargets() margin.Targets {
	return margin.Targets{
		Margin: decimal.NewFromFloat(c.Targets.Margin),
		Markup: decimal.NewFromFloat(c.Targets.Markup),
	}
}

// Query returns the catalog query of the configuration.
func (c Config) Query() margin.CatalogQuery {
	return margin.CatalogQuery{
		Items:          c.Catalog.Items,
		Code:           c.Catalog.Code,
		Name:           c.Catalog.Name,
		ReferencePrice: c.Catalog.ReferencePrice,
	}
}
