// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for pngme.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a Params factory whose tagged
// struct fields become pflag flags (see [BindFlags]), and a Run function.
// Commands are assembled into a tree in cmd/pngme/commands and dispatched
// via [Command.Execute], which handles flag parsing, subcommand routing,
// and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Every leaf command embeds [GlobalParams] (--config, --verbose), which
// loads the configuration and sets the level of the command's slog
// logger. [JSONOutput] and [CBOROutput] add --json and --cbor.
//
// Errors map to exit codes through [ExitCode]: [Validation] errors
// exit 2, an [*ExitError] exits silently with its own code, anything
// else exits 1.
package cli
