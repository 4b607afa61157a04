// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package png reads, queries, and rewrites the chunk structure of PNG
// files without decoding pixels.
//
// A PNG file is an 8-byte [Signature] followed by chunks:
//
//	length   4 bytes, big-endian payload length
//	type     4 ASCII letters
//	payload  length bytes
//	crc      4 bytes, CRC-32 (IEEE) over type and payload
//
// [Decode] splits a byte stream into a [Document], verifying every
// chunk's CRC and interpreting the payloads of the chunk types it
// knows (IHDR, PLTE, IDAT, IEND, tRNS, gAMA, cHRM, sRGB, iCCP, tEXt,
// zTXt, iTXt). Anything else decodes to [Unrecognized] and passes
// through untouched. Decoding is all-or-nothing: a single bad chunk
// fails the call with a [*ChunkError] that says which one.
//
// Chunks keep their raw payload bytes. [Document.Encode] on a decoded
// document reproduces the input byte for byte, and every mutation
// ([Chunk.SetData], [Document.Insert], [Document.Remove]) leaves each
// chunk's length and CRC consistent with its payload.
//
// The case of each type letter carries a flag, exposed by
// [ChunkType.IsCritical], [ChunkType.IsPublic],
// [ChunkType.IsReservedBitValid], and [ChunkType.IsSafeToCopy].
//
// Chunk ordering rules (IHDR first, IEND last, PLTE before IDAT, and
// so on) are not enforced while decoding or mutating. Call
// [Document.Validate] to check them.
//
// The package does no I/O and never logs. A Document is owned by its
// caller and is not safe for concurrent use.
package png
