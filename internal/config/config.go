// Package config loads and hot-reloads the TOML configuration file that
// drives the "hpss serve" command, following the same
// BurntSushi/toml-plus-fsnotify combination used elsewhere in the retrieved
// corpus for watched configuration.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration document.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Store      StoreConfig      `toml:"store"`
	Universe   UniverseConfig   `toml:"universe"`
	Generation GenerationConfig `toml:"generation"`
	Verify     VerifyConfig     `toml:"verify"`
}

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	MetricsAddr    string `toml:"metrics_addr"`
	ShutdownGraceS int    `toml:"shutdown_grace_seconds"`
}

// StoreConfig selects and configures the SetStore backend.
type StoreConfig struct {
	// Backend is one of "memory" or "sqlite".
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// UniverseConfig selects and configures the item universe backend.
type UniverseConfig struct {
	// Backend is one of "memory" or "sql".
	Backend       string `toml:"backend"`
	Driver        string `toml:"driver"`
	DSN           string `toml:"dsn"`
	Table         string `toml:"table"`
	IDColumn      string `toml:"id_column"`
	StratumColumn string `toml:"stratum_column"`
	// MemorySize sizes the sequential in-memory universe used by the
	// "memory" backend; it has no effect on the "sql" backend.
	MemorySize uint64 `toml:"memory_size"`
}

// GenerationConfig bounds the request parameters the HTTP API will accept,
// independent of what the core package itself enforces. The generate and
// feasibility CLI subcommands do not read it.
type GenerationConfig struct {
	DefaultThreshold float64 `toml:"default_threshold"`
	MaxNumSets       int     `toml:"max_num_sets"`
	MaxItemsPerSet   int     `toml:"max_items_per_set"`
}

// VerifyConfig configures the internal/verify package's exact/estimated
// crossover and MinHash signature width.
type VerifyConfig struct {
	ExactCutoff      int `toml:"exact_cutoff"`
	MinHashFunctions int `toml:"minhash_functions"`
}

// Default returns the configuration used when no file is present, and as
// the base that a loaded file's fields are merged onto.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			MetricsAddr:    ":9090",
			ShutdownGraceS: 15,
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    "hpss.db",
		},
		Universe: UniverseConfig{
			Backend:       "memory",
			IDColumn:      "id",
			StratumColumn: "stratum",
			MemorySize:    100000,
		},
		Generation: GenerationConfig{
			DefaultThreshold: 0.4,
			MaxNumSets:       10000,
			MaxItemsPerSet:   100,
		},
		Verify: VerifyConfig{
			ExactCutoff:      200,
			MinHashFunctions: 192,
		},
	}
}

// Load reads and decodes the TOML file at path onto Default(), so an
// omitted field keeps its default rather than zeroing out.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the rest of the service could not act on.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	switch c.Universe.Backend {
	case "memory", "sql":
	default:
		return fmt.Errorf("config: unknown universe backend %q", c.Universe.Backend)
	}
	if c.Universe.Backend == "sql" && c.Universe.DSN == "" {
		return fmt.Errorf("config: universe backend %q requires a dsn", c.Universe.Backend)
	}
	if c.Generation.MaxNumSets <= 0 || c.Generation.MaxNumSets > 10000 {
		return fmt.Errorf("config: generation.max_num_sets must be in 1..=10000")
	}
	if c.Generation.MaxItemsPerSet <= 0 || c.Generation.MaxItemsPerSet > 100 {
		return fmt.Errorf("config: generation.max_items_per_set must be in 1..=100")
	}
	return nil
}
