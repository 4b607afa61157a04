// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "PNGME_CONFIG"

// Config is the pngme configuration.
type Config struct {
	// LogLevel is the minimum slog level: debug, info, warn, or error.
	// Default: warn
	LogLevel string `yaml:"log_level"`

	// Output configures terminal rendering.
	Output OutputConfig `yaml:"output"`

	// Message configures how encode and decode handle hidden messages.
	Message MessageConfig `yaml:"message"`

	// Document configures document mutation.
	Document DocumentConfig `yaml:"document"`
}

// OutputConfig configures terminal rendering.
type OutputConfig struct {
	// Color is auto, always, or never. Auto colors only when stdout
	// is a terminal.
	// Default: auto
	Color string `yaml:"color"`

	// PreviewWidth is the display width text previews are truncated
	// to. Zero disables truncation.
	// Default: 72
	PreviewWidth int `yaml:"preview_width"`
}

// MessageConfig configures encode and decode.
type MessageConfig struct {
	// ChunkType is the chunk type messages are stored under when no
	// --type flag is given.
	// Default: ruSt
	ChunkType string `yaml:"chunk_type"`

	// Compression is none, lz4, zstd, or auto. With none and no
	// recipients, encode stores the message bytes as-is; anything else
	// seals the message in an envelope.
	// Default: none
	Compression string `yaml:"compression"`

	// Recipients are age X25519 public keys (age1...). When set,
	// encode encrypts every message to all of them.
	Recipients []string `yaml:"recipients"`

	// IdentityFile is the path to an age identity file used by decode
	// to open encrypted messages. ${HOME} and ${VAR:-default} are
	// expanded.
	IdentityFile string `yaml:"identity_file"`
}

// DocumentConfig configures document mutation.
type DocumentConfig struct {
	// AllowEmpty lets remove delete the last remaining chunk.
	// Default: false
	AllowEmpty bool `yaml:"allow_empty"`
}

// Default returns the configuration used when no file is given, and
// the base every loaded file is merged over.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Output: OutputConfig{
			Color:        "auto",
			PreviewWidth: 72,
		},
		Message: MessageConfig{
			ChunkType:   "ruSt",
			Compression: "none",
		},
	}
}

// Load loads configuration from the file named by PNGME_CONFIG. It
// fails when the variable is unset; callers that want defaults in that
// case check the variable themselves.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your pngme.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, merged over Default. Files
// ending in .json or .jsonc may carry comments and trailing commas.
// Path fields are expanded after loading.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.parse(data, filepath.Ext(path))
}

// parse decodes data into c. JSON is a subset of YAML, so JSONC input
// only needs its comments and trailing commas stripped before the
// YAML decoder sees it.
func (c *Config) parse(data []byte, extension string) error {
	switch strings.ToLower(extension) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		// An empty file decodes to io.EOF; it simply sets nothing.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Message.IdentityFile = expandVars(c.Message.IdentityFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Provided vars first, then the environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var (
	logLevels    = []string{"debug", "info", "warn", "error"}
	colorModes   = []string{"auto", "always", "never"}
	compressions = []string{"none", "lz4", "zstd", "auto"}
)

// Validate checks the configuration for errors. Every problem is
// reported, joined.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of: %v", logLevels))
	}
	if !slices.Contains(colorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colorModes))
	}
	if c.Output.PreviewWidth < 0 {
		errs = append(errs, fmt.Errorf("output.preview_width must not be negative"))
	}
	if !validChunkType(c.Message.ChunkType) {
		errs = append(errs, fmt.Errorf("message.chunk_type %q must be four ASCII letters with an upper-case third letter", c.Message.ChunkType))
	}
	if !slices.Contains(compressions, c.Message.Compression) {
		errs = append(errs, fmt.Errorf("message.compression must be one of: %v", compressions))
	}
	for index, recipient := range c.Message.Recipients {
		if !strings.HasPrefix(strings.TrimSpace(recipient), "age1") {
			errs = append(errs, fmt.Errorf("message.recipients[%d] is not an age public key", index))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// validChunkType matches png.ChunkType.IsValid; this package imports
// no other pngme packages.
func validChunkType(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, b := range []byte(s) {
		if !('A' <= b && b <= 'Z') && !('a' <= b && b <= 'z') {
			return false
		}
	}
	return s[2] >= 'A' && s[2] <= 'Z'
}
