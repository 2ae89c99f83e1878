package main

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/vipss/meshset/meshrand"
	"github.com/vipss/meshset/pool"
)

// Config holds the settings that can be read from a
// configuration file. Command line flags take precedence.
type Config struct {
	// Seed seeds the default generator.
	Seed int32 `toml:"seed"`

	// FirstChunk holds the size of the first chunk
	// of every pool the command creates.
	FirstChunk int `toml:"first_chunk"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Seed:       meshrand.DefaultSeed,
		FirstChunk: pool.DefaultFirstChunk,
		LogLevel:   "info",
	}
}

// loadConfig reads the configuration file at path on top of the
// default configuration. Keys that are absent from the file keep
// their default values.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "cannot open config file")
	}
	defer f.Close()
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrapf(err, "cannot parse config file %q", path)
	}
	return cfg, nil
}

// validate checks cfg and returns its log level.
func (cfg Config) validate() (slog.Level, error) {
	if cfg.FirstChunk < 0 {
		return 0, errors.Newf("first_chunk must not be negative, got %d", cfg.FirstChunk)
	}
	return parseLevel(cfg.LogLevel)
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Wrapf(err, "invalid log level %q", s)
	}
	return l, nil
}
