// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// ChunkOverhead is the number of bytes a chunk occupies beyond its
	// payload: length, type, and CRC.
	ChunkOverhead = 12

	// MaxChunkLength is the largest payload length the format allows
	// (2^31 - 1).
	MaxChunkLength = 1<<31 - 1
)

// Chunk is one length-prefixed, typed, checksummed record. The raw
// payload bytes are authoritative: encoding always reproduces them
// exactly, and the CRC is always the CRC of the current type and
// payload.
//
// A Chunk is not safe for concurrent mutation.
type Chunk struct {
	chunkType ChunkType
	data      []byte
	crc       uint32

	// payload caches the interpretation of data. nil until first
	// requested for chunks built by NewChunk.
	payload Payload
}

// NewChunk builds a chunk from a type and raw payload, computing the
// CRC. It never fails: the payload is interpreted lazily by
// [Chunk.Payload]. data is copied.
func NewChunk(chunkType ChunkType, data []byte) *Chunk {
	data = slices.Clone(data)
	if data == nil {
		data = []byte{}
	}
	return &Chunk{
		chunkType: chunkType,
		data:      data,
		crc:       Checksum(chunkType, data),
	}
}

// NewPayloadChunk builds a chunk from the bytes of a typed payload.
// The bytes are decoded again under chunkType, so a payload of the
// wrong kind or with invalid fields is rejected exactly as
// [DecodeChunk] would reject it.
func NewPayloadChunk(chunkType ChunkType, payload Payload) (*Chunk, error) {
	data := payload.Bytes()
	decoded, err := DecodePayload(chunkType, data)
	if err != nil {
		return nil, fmt.Errorf("%s payload: %w", chunkType, err)
	}
	chunk := NewChunk(chunkType, data)
	chunk.payload = decoded
	return chunk, nil
}

// DecodeChunk reads one chunk from the start of data and returns it
// with the number of bytes consumed. The stored CRC must match and the
// payload must decode under its type's codec.
func DecodeChunk(data []byte) (*Chunk, int, error) {
	if len(data) < ChunkOverhead {
		return nil, 0, fmt.Errorf("%w: %d bytes left, a chunk needs at least %d", ErrTruncated, len(data), ChunkOverhead)
	}
	length := binary.BigEndian.Uint32(data[0:4])
	if length > MaxChunkLength {
		return nil, 0, fmt.Errorf("%w: length %d exceeds %d", ErrInvalidLength, length, MaxChunkLength)
	}
	chunkType, err := ParseChunkType([4]byte(data[4:8]))
	if err != nil {
		return nil, 0, err
	}
	total := ChunkOverhead + int(length)
	if len(data) < total {
		return nil, 0, fmt.Errorf("%w: %s chunk declares %d payload bytes, %d available",
			ErrTruncated, chunkType, length, len(data)-ChunkOverhead)
	}

	payloadBytes := data[8 : 8+length]
	stored := binary.BigEndian.Uint32(data[8+length : total])
	if computed := Checksum(chunkType, payloadBytes); computed != stored {
		return nil, 0, &ChecksumError{Type: chunkType, Stored: stored, Computed: computed}
	}

	payload, err := DecodePayload(chunkType, payloadBytes)
	if err != nil {
		return nil, 0, fmt.Errorf("%s payload: %w", chunkType, err)
	}
	return &Chunk{
		chunkType: chunkType,
		data:      slices.Clone(payloadBytes),
		crc:       stored,
		payload:   payload,
	}, total, nil
}

// Type returns the chunk type.
func (c *Chunk) Type() ChunkType { return c.chunkType }

// Length returns the payload length in bytes.
func (c *Chunk) Length() uint32 { return uint32(len(c.data)) }

// CRC returns the chunk's checksum.
func (c *Chunk) CRC() uint32 { return c.crc }

// Data returns a copy of the raw payload.
func (c *Chunk) Data() []byte { return slices.Clone(c.data) }

// EncodedLength is the number of bytes [Chunk.Encode] produces.
func (c *Chunk) EncodedLength() int { return ChunkOverhead + len(c.data) }

// Payload returns the typed interpretation of the chunk's data,
// decoding it on first use.
func (c *Chunk) Payload() (Payload, error) {
	if c.payload != nil {
		return c.payload, nil
	}
	payload, err := DecodePayload(c.chunkType, c.data)
	if err != nil {
		return nil, fmt.Errorf("%s payload: %w", c.chunkType, err)
	}
	c.payload = payload
	return payload, nil
}

// SetData replaces the payload, reinterpreting it under the same type
// and recomputing the CRC. If data does not decode under the chunk's
// type the chunk is left unchanged.
func (c *Chunk) SetData(data []byte) error {
	payload, err := DecodePayload(c.chunkType, data)
	if err != nil {
		return fmt.Errorf("%s payload: %w", c.chunkType, err)
	}
	data = slices.Clone(data)
	if data == nil {
		data = []byte{}
	}
	c.data = data
	c.payload = payload
	c.crc = Checksum(c.chunkType, data)
	return nil
}

// DataString returns the payload as text.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: %s payload", ErrInvalidUTF8, c.chunkType)
	}
	return string(c.data), nil
}

// Encode serializes the chunk: length, type, payload, CRC.
func (c *Chunk) Encode() []byte {
	return c.AppendTo(make([]byte, 0, c.EncodedLength()))
}

// AppendTo appends the encoded chunk to buffer.
func (c *Chunk) AppendTo(buffer []byte) []byte {
	buffer = binary.BigEndian.AppendUint32(buffer, uint32(len(c.data)))
	buffer = append(buffer, c.chunkType[:]...)
	buffer = append(buffer, c.data...)
	return binary.BigEndian.AppendUint32(buffer, c.crc)
}

// String renders a multi-line diagnostic summary.
func (c *Chunk) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Chunk [%s]\n", c.chunkType)
	fmt.Fprintf(&builder, "Length: %d\n", len(c.data))
	if payload, err := c.Payload(); err != nil {
		fmt.Fprintf(&builder, "Data: [invalid: %v]\n", err)
	} else {
		fmt.Fprintf(&builder, "Data: %s\n", payload)
	}
	fmt.Fprintf(&builder, "Crc: %d\n", c.crc)
	return builder.String()
}
