// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inspect implements the read-only pngme commands: info, list,
// text, verify, diff, and the interactive browse. None of them modify
// the files they are given.
package inspect
