// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"errors"
	"fmt"
)

// Structural errors: the bytes do not have the shape the format
// requires.
var (
	ErrInvalidSignature = errors.New("png: invalid signature")
	ErrInvalidChunkType = errors.New("png: invalid chunk type")
	ErrTruncated        = errors.New("png: truncated data")
	ErrInvalidLength    = errors.New("png: invalid payload length")
	ErrMissingSeparator = errors.New("png: missing null separator")
	ErrEmptyKeyword     = errors.New("png: empty keyword")
	ErrKeywordTooLong   = errors.New("png: keyword longer than 79 bytes")
	ErrInvalidPalette   = errors.New("png: palette length is not a multiple of 3")
	ErrCorruptStream    = errors.New("png: corrupt compressed stream")
)

// Field errors: the shape is right but a field holds a value the
// format does not define.
var (
	ErrInvalidBitDepth          = errors.New("png: invalid bit depth")
	ErrInvalidColorType         = errors.New("png: invalid color type")
	ErrInvalidCompressionMethod = errors.New("png: invalid compression method")
	ErrInvalidFilterMethod      = errors.New("png: invalid filter method")
	ErrInvalidFilterType        = errors.New("png: invalid filter type")
	ErrInvalidInterlaceMethod   = errors.New("png: invalid interlace method")
	ErrInvalidRenderingIntent   = errors.New("png: invalid rendering intent")
	ErrInvalidCompressionFlag   = errors.New("png: invalid compression flag")
)

var (
	// ErrChecksumMismatch is returned when a chunk's stored CRC does
	// not match the CRC computed over its type and payload.
	ErrChecksumMismatch = errors.New("png: chunk checksum mismatch")

	// ErrChunkNotFound is returned by lookups and removals when no
	// chunk carries the requested type.
	ErrChunkNotFound = errors.New("png: chunk not found")

	// ErrEmptyDocument is returned by Remove when removing the chunk
	// would leave the document with no chunks at all.
	ErrEmptyDocument = errors.New("png: document would have no chunks left")

	// ErrIndexOutOfRange is returned by positional mutations.
	ErrIndexOutOfRange = errors.New("png: index out of range")

	// ErrInvalidUTF8 is returned when text that must be UTF-8 is not.
	ErrInvalidUTF8 = errors.New("png: text is not valid UTF-8")

	// ErrPlacement is the sentinel wrapped by every [PlacementError].
	ErrPlacement = errors.New("png: chunk placement violation")
)

var structuralErrors = []error{
	ErrInvalidSignature, ErrInvalidChunkType, ErrTruncated, ErrInvalidLength,
	ErrMissingSeparator, ErrEmptyKeyword, ErrKeywordTooLong, ErrInvalidPalette,
	ErrCorruptStream,
}

var fieldErrors = []error{
	ErrInvalidBitDepth, ErrInvalidColorType, ErrInvalidCompressionMethod,
	ErrInvalidFilterMethod, ErrInvalidFilterType, ErrInvalidInterlaceMethod,
	ErrInvalidRenderingIntent, ErrInvalidCompressionFlag,
}

// IsStructural reports whether err is a structural parse error:
// malformed tag bytes, wrong fixed-size payload length, missing
// separators, over-long names, or truncated input.
func IsStructural(err error) bool {
	return isAny(err, structuralErrors)
}

// IsInvalidField reports whether err is an out-of-range field value,
// such as a bit depth that the color type does not allow.
func IsInvalidField(err error) bool {
	return isAny(err, fieldErrors)
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ChunkTypeError reports the first byte of a chunk type that is not an
// ASCII letter.
type ChunkTypeError struct {
	// Input is the rejected type, as given.
	Input string
	// Position is the zero-based index of the offending byte, or -1
	// when the input has the wrong length.
	Position int
	// Byte is the offending byte value.
	Byte byte
}

func (e *ChunkTypeError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("png: chunk type %q is %d bytes, want 4", e.Input, len(e.Input))
	}
	return fmt.Sprintf("png: chunk type %q has invalid byte 0x%02x at position %d", e.Input, e.Byte, e.Position)
}

func (e *ChunkTypeError) Unwrap() error { return ErrInvalidChunkType }

// ChecksumError carries both CRC values of a mismatched chunk.
type ChecksumError struct {
	Type     ChunkType
	Stored   uint32
	Computed uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("png: %s chunk checksum mismatch: stored 0x%08x, computed 0x%08x", e.Type, e.Stored, e.Computed)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }

// ChunkError locates a failure inside a document: which chunk, and at
// which byte offset of the input it started.
type ChunkError struct {
	Index  int
	Offset int
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// PlacementError reports a chunk ordering rule that a document breaks.
type PlacementError struct {
	// Index is the position of the offending chunk, or -1 when the
	// violation is about a chunk that is missing.
	Index int
	Type  ChunkType
	Rule  string
}

func (e *PlacementError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("png: placement: %s", e.Rule)
	}
	return fmt.Sprintf("png: placement: %s chunk at index %d: %s", e.Type, e.Index, e.Rule)
}

func (e *PlacementError) Unwrap() error { return ErrPlacement }
