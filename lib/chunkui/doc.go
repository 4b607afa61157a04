// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunkui is the interactive chunk browser behind "pngme
// browse". It is a bubbletea model with two panes: the chunk list on
// the left and a scrollable detail view of the selected chunk on the
// right.
//
// The list can be narrowed with fzf-style fuzzy matching over chunk
// types and payload summaries. The detail view decodes the payload:
// text chunks show their text (XML and JSON syntax-highlighted),
// sealed messages show their envelope header, and opaque payloads
// show a hex dump.
package chunkui
