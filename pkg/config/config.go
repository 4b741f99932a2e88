// Package config loads engine-wide tunables through viper, with an
// optional TOML file source layered under environment and default
// values. Configuration is exposed through a package-level singleton
// callers can swap out in tests.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// EngineConfig holds engine-wide tunables: the table column builder
// reads DictionaryScanThreshold when it builds a chunk's segments, and
// the coreshell driver reads MaxChunkSize and MVCCEnabled when it
// creates tables. The scan and join operators do not read it.
type EngineConfig struct {
	// MaxChunkSize is the default row capacity of a Data table's
	// mutable trailing chunk.
	MaxChunkSize uint32 `mapstructure:"max_chunk_size"`
	// DictionaryScanThreshold is the maximum unique-value count a
	// column may have and still be built as a dictionary-encoded
	// segment; columns with more distinct values than this fall back
	// to a plain value segment.
	DictionaryScanThreshold int `mapstructure:"dictionary_scan_threshold"`
	// MVCCEnabled turns on row-version-slot bookkeeping that is
	// allocated per row but not yet interpreted by any operator.
	MVCCEnabled bool `mapstructure:"mvcc_enabled"`
}

// Default returns the engine's built-in tunable values, used when no
// config file or environment override is present.
func Default() EngineConfig {
	return EngineConfig{
		MaxChunkSize:            65536,
		DictionaryScanThreshold: 4096,
		MVCCEnabled:             false,
	}
}

var global = Default()

// Get returns the current process-wide configuration.
func Get() EngineConfig {
	return global
}

// Set replaces the process-wide configuration, primarily for tests
// (paired with gostub to restore the previous value on cleanup).
func Set(cfg EngineConfig) {
	global = cfg
}

// Load builds an EngineConfig from defaults, an optional TOML file at
// path (skipped if path is empty or the file does not exist), and
// HYRISE_-prefixed environment variables, in ascending priority, and
// installs it as the process-wide configuration.
func Load(path string) (EngineConfig, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("max_chunk_size", def.MaxChunkSize)
	v.SetDefault("dictionary_scan_threshold", def.DictionaryScanThreshold)
	v.SetDefault("mvcc_enabled", def.MVCCEnabled)

	v.SetEnvPrefix("HYRISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			var fileValues map[string]any
			if _, err := toml.DecodeFile(path, &fileValues); err != nil {
				return EngineConfig{}, err
			}
			if err := v.MergeConfigMap(fileValues); err != nil {
				return EngineConfig{}, err
			}
		}
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return EngineConfig{}, err
	}
	Set(cfg)
	return cfg, nil
}
