// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package message implements the pngme commands that change files or
// keys: encode hides a message in a new chunk, decode prints it back,
// remove strips a chunk, and keygen creates the age identity used for
// encrypted messages.
//
// Messages are stored through [envelope]: plain bytes when neither
// compression nor recipients are configured, a sealed envelope
// otherwise.
package message
