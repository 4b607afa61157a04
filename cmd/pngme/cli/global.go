// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/pngme/lib/config"
)

// GlobalParams holds the flags every leaf command accepts. Embed it
// in a command's params struct:
//
//	type encodeParams struct {
//	    cli.GlobalParams
//	    Type string `flag:"type" desc:"chunk type to store the message under"`
//	}
//
// Execute reads it to build the command's logger, and commands call
// [GlobalParams.Config] for everything else.
type GlobalParams struct {
	ConfigFile string `flag:"config" desc:"path to a pngme config file (default: $PNGME_CONFIG)"`
	Verbose    bool   `flag:"verbose,v" desc:"log at debug level"`

	config *config.Config
}

type globalParamsHolder interface {
	globalParams() *GlobalParams
}

func (g *GlobalParams) globalParams() *GlobalParams { return g }

// Config loads and validates the configuration once per invocation:
// --config first, then PNGME_CONFIG, then [config.Default].
func (g *GlobalParams) Config() (*config.Config, error) {
	if g.config != nil {
		return g.config, nil
	}

	var (
		cfg *config.Config
		err error
	)
	switch {
	case g.ConfigFile != "":
		cfg, err = config.LoadFile(g.ConfigFile)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, Validation("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, Validation("invalid config: %w", err)
	}
	g.config = cfg
	return cfg, nil
}

// LogLevel returns debug when --verbose is set, otherwise the
// configured log_level.
func (g *GlobalParams) LogLevel() (slog.Level, error) {
	if g.Verbose {
		return slog.LevelDebug, nil
	}
	cfg, err := g.Config()
	if err != nil {
		return 0, err
	}
	return ParseLevel(cfg.LogLevel)
}

// ParseLevel parses debug, info, warn, or error.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, Validation("unknown log level %q", name)
	}
	return level, nil
}
