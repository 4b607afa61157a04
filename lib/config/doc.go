// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for pngme.
//
// Configuration is loaded from a single file specified by either the
// PNGME_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search; with neither set, the CLI runs on [Default].
//
// Files are YAML. Files named *.json or *.jsonc are accepted too:
// comments and trailing commas are stripped and the result is decoded
// by the same YAML decoder. Unknown keys are errors.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variable overrides a config value.
//
// Key exports:
//
//   - [Config] -- LogLevel, Output, Message, Document
//   - [Default] -- the configuration used without a file
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- every problem, joined
package config
