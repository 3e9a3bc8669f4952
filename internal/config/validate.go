package config

import "fmt"

// Validate checks a loaded configuration for values the rest of the tool
// cannot work with.
func Validate(cfg *Config) error {
	if len(cfg.Paths.Include) == 0 {
		return fmt.Errorf("paths.include must list at least one pattern")
	}
	if cfg.Codemap.ArenaReserve < 0 {
		return fmt.Errorf("codemap.arena_reserve must not be negative")
	}
	if cfg.Cache.Capacity < 0 {
		return fmt.Errorf("cache.capacity must not be negative")
	}
	if cfg.Bundle.MaxFileBytes <= 0 {
		return fmt.Errorf("bundle.max_file_bytes must be positive")
	}
	if cfg.Bundle.TokenBudget < 0 {
		return fmt.Errorf("bundle.token_budget must not be negative")
	}
	return nil
}
