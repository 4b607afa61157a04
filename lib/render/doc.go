// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render writes terminal views of PNG documents: a document
// summary, a chunk table with type flags and digests, text chunk
// listings, and chunk diffs.
//
// Styling goes through a lipgloss renderer bound to the output writer
// with an explicit color profile, so [Renderer].Color alone decides
// whether ANSI sequences are emitted. Widths are measured in terminal
// cells, and previews are truncated with an ellipsis at
// [Renderer].PreviewWidth.
package render
