// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope seals the messages pngme hides in PNG chunks.
//
// A sealed message is self-describing: a 4-byte magic, a small CBOR
// header (version, compression, original size, whether encrypted),
// and the body. The body is compressed with LZ4 or zstd when that
// helps, then optionally encrypted with age to one or more X25519
// recipients. Anyone holding one of the matching identities can open
// it.
//
// Chunk payloads that do not start with the magic are plain messages;
// [Open] returns them as-is, so messages written before sealing
// existed, or by other tools, still decode.
package envelope
