// Package config loads memscan's ambient settings: the default element
// type, how often a scan reports progress, and the /proc root to use. None
// of these affect the scanning engine's invariants; they are process-start
// plumbing, loaded once via viper the way the rest of the examples pack
// wires its own configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is memscan's resolved ambient configuration.
type Config struct {
	// ProcRoot is the directory treated as /proc. Overridable so tests and
	// sandboxes can point the catalogue/reader at a fixture tree.
	ProcRoot string

	// DefaultType, if non-empty, is applied automatically to a freshly
	// attached target instead of requiring an explicit "type" command.
	DefaultType string

	// ProgressBatch is how many candidate addresses a scan considers
	// between progress reports (spec.md §4.5: "roughly every 1000
	// entries").
	ProgressBatch int
}

const envPrefix = "MEMSCAN"

func defaults() Config {
	return Config{
		ProcRoot:      "/proc",
		DefaultType:   "",
		ProgressBatch: 1000,
	}
}

// Load resolves configuration from, in increasing precedence: built-in
// defaults, an optional memscan.yaml in the working directory or $HOME, and
// MEMSCAN_-prefixed environment variables.
func Load() (*Config, error) {
	d := defaults()

	v := viper.New()
	v.SetConfigName("memscan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetDefault("proc_root", d.ProcRoot)
	v.SetDefault("default_type", d.DefaultType)
	v.SetDefault("progress_batch", d.ProgressBatch)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		ProcRoot:      v.GetString("proc_root"),
		DefaultType:   v.GetString("default_type"),
		ProgressBatch: v.GetInt("progress_batch"),
	}
	if cfg.ProgressBatch <= 0 {
		cfg.ProgressBatch = d.ProgressBatch
	}
	return cfg, nil
}
