// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pngfile moves PNG bytes between the filesystem and
// [png.Document]. Reads are bounded by [MaxFileSize]. Writes are
// atomic: data lands in a temporary file beside the target, is
// fsynced, and is renamed over it, so an interrupted encode never
// leaves a truncated image behind.
package pngfile
