// Package config loads llmctx configuration from .llmctx/config.yml with
// environment variable overrides.
package config

// Config is the complete llmctx configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Packs   PacksConfig   `yaml:"packs" mapstructure:"packs"`
	Codemap CodemapConfig `yaml:"codemap" mapstructure:"codemap"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Bundle  BundleConfig  `yaml:"bundle" mapstructure:"bundle"`
}

// PathsConfig defines which files are bundled and which are skipped.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// PacksConfig configures language-pack loading.
type PacksConfig struct {
	Dir   string `yaml:"dir" mapstructure:"dir"`     // directory scanned for loadable packs
	Debug bool   `yaml:"debug" mapstructure:"debug"` // keep pack stdout/stderr visible
}

// CodemapConfig tunes codemap extraction.
type CodemapConfig struct {
	ArenaReserve int `yaml:"arena_reserve" mapstructure:"arena_reserve"` // bytes reserved for entry storage
}

// CacheConfig defines parse-cache behavior.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Location string `yaml:"location" mapstructure:"location"` // override default ~/.llmctx/cache
	Capacity int    `yaml:"capacity" mapstructure:"capacity"` // in-memory entries kept hot
}

// BundleConfig tunes context assembly.
type BundleConfig struct {
	MaxFileBytes int    `yaml:"max_file_bytes" mapstructure:"max_file_bytes"` // per-file ceiling
	TokenBudget  int    `yaml:"token_budget" mapstructure:"token_budget"`     // warn when estimate exceeds this
	RankQuery    string `yaml:"rank_query" mapstructure:"rank_query"`         // default relevance query
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.py",
				"**/*.ts",
				"**/*.tsx",
				"**/*.js",
				"**/*.jsx",
				"**/*.rs",
				"**/*.c",
				"**/*.h",
				"**/*.java",
				"**/*.rb",
				"**/*.php",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
			},
		},
		Packs: PacksConfig{
			Dir: "packs",
		},
		Codemap: CodemapConfig{
			ArenaReserve: 64 * 1024 * 1024,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 4096,
		},
		Bundle: BundleConfig{
			MaxFileBytes: 5 * 1024 * 1024,
			TokenBudget:  0,
		},
	}
}
