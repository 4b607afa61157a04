// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Signature is the fixed 8-byte prefix of every PNG file.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Document is a PNG file as an ordered sequence of chunks behind the
// signature. Order is significant; [Document.Validate] checks it on
// request but no mutation enforces it.
type Document struct {
	chunks []*Chunk

	// AllowEmpty lets Remove and RemoveAt take out the last remaining
	// chunk. When false those calls fail with [ErrEmptyDocument].
	AllowEmpty bool
}

// NewDocument builds a document from chunks, in order.
func NewDocument(chunks ...*Chunk) *Document {
	return &Document{chunks: slices.Clone(chunks)}
}

// Decode parses a complete PNG byte stream. Decoding is atomic: any
// failure in any chunk fails the whole call, and the error is a
// [*ChunkError] locating the chunk.
func Decode(data []byte) (*Document, error) {
	if len(data) < len(Signature) || !bytes.Equal(data[:len(Signature)], Signature[:]) {
		return nil, ErrInvalidSignature
	}

	var chunks []*Chunk
	offset := len(Signature)
	for offset < len(data) {
		chunk, consumed, err := DecodeChunk(data[offset:])
		if err != nil {
			return nil, &ChunkError{Index: len(chunks), Offset: offset, Err: err}
		}
		chunks = append(chunks, chunk)
		offset += consumed
	}
	return &Document{chunks: chunks}, nil
}

// Chunks returns the chunks in order. The slice is a copy; the chunks
// are shared.
func (d *Document) Chunks() []*Chunk { return slices.Clone(d.chunks) }

// Len returns the number of chunks.
func (d *Document) Len() int { return len(d.chunks) }

// At returns the chunk at index.
func (d *Document) At(index int) (*Chunk, error) {
	if index < 0 || index >= len(d.chunks) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(d.chunks))
	}
	return d.chunks[index], nil
}

// FindPosition returns the index of the first chunk of the given type.
func (d *Document) FindPosition(chunkType ChunkType) (int, bool) {
	for index, chunk := range d.chunks {
		if chunk.chunkType == chunkType {
			return index, true
		}
	}
	return -1, false
}

// Find returns the first chunk of the given type. The chunk is the
// document's own, so [Chunk.SetData] on it mutates the document.
func (d *Document) Find(chunkType ChunkType) (*Chunk, bool) {
	index, found := d.FindPosition(chunkType)
	if !found {
		return nil, false
	}
	return d.chunks[index], true
}

// FindAll returns every chunk of the given type, in order.
func (d *Document) FindAll(chunkType ChunkType) []*Chunk {
	var matches []*Chunk
	for _, chunk := range d.chunks {
		if chunk.chunkType == chunkType {
			matches = append(matches, chunk)
		}
	}
	return matches
}

// Insert places chunk at index, shifting later chunks back. index may
// equal Len to append.
func (d *Document) Insert(index int, chunk *Chunk) error {
	if index < 0 || index > len(d.chunks) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, index, len(d.chunks))
	}
	d.chunks = slices.Insert(d.chunks, index, chunk)
	return nil
}

// Append adds chunk after every existing chunk.
func (d *Document) Append(chunk *Chunk) {
	d.chunks = append(d.chunks, chunk)
}

// InsertBeforeEnd inserts chunk immediately before the first IEND,
// or appends it when there is none.
func (d *Document) InsertBeforeEnd(chunk *Chunk) {
	index, found := d.FindPosition(TypeIEND)
	if !found {
		d.Append(chunk)
		return
	}
	d.chunks = slices.Insert(d.chunks, index, chunk)
}

// Remove takes out the first chunk of the given type and returns it.
func (d *Document) Remove(chunkType ChunkType) (*Chunk, error) {
	index, found := d.FindPosition(chunkType)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrChunkNotFound, chunkType)
	}
	return d.RemoveAt(index)
}

// RemoveAt takes out the chunk at index and returns it.
func (d *Document) RemoveAt(index int) (*Chunk, error) {
	if index < 0 || index >= len(d.chunks) {
		return nil, fmt.Errorf("%w: remove at %d of %d", ErrIndexOutOfRange, index, len(d.chunks))
	}
	if len(d.chunks) == 1 && !d.AllowEmpty {
		return nil, ErrEmptyDocument
	}
	removed := d.chunks[index]
	d.chunks = slices.Delete(d.chunks, index, index+1)
	return removed, nil
}

// EncodedLength is the number of bytes [Document.Encode] produces.
func (d *Document) EncodedLength() int {
	total := len(Signature)
	for _, chunk := range d.chunks {
		total += chunk.EncodedLength()
	}
	return total
}

// Encode serializes the signature followed by every chunk in order.
func (d *Document) Encode() []byte {
	buffer := make([]byte, 0, d.EncodedLength())
	buffer = append(buffer, Signature[:]...)
	for _, chunk := range d.chunks {
		buffer = chunk.AppendTo(buffer)
	}
	return buffer
}

// Header returns the decoded IHDR payload of the first IHDR chunk.
func (d *Document) Header() (*ImageHeader, error) {
	chunk, found := d.Find(TypeIHDR)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrChunkNotFound, TypeIHDR)
	}
	payload, err := chunk.Payload()
	if err != nil {
		return nil, err
	}
	header, ok := payload.(*ImageHeader)
	if !ok {
		return nil, fmt.Errorf("%s payload decoded as %T", TypeIHDR, payload)
	}
	return header, nil
}

// Palette returns the decoded PLTE payload of the first PLTE chunk.
func (d *Document) Palette() (Palette, error) {
	chunk, found := d.Find(TypePLTE)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrChunkNotFound, TypePLTE)
	}
	payload, err := chunk.Payload()
	if err != nil {
		return nil, err
	}
	palette, ok := payload.(Palette)
	if !ok {
		return nil, fmt.Errorf("%s payload decoded as %T", TypePLTE, payload)
	}
	return palette, nil
}

// Transparency interprets the first tRNS chunk under the IHDR color
// type. For color types with an alpha channel the result has
// Applicable false and the error is nil.
func (d *Document) Transparency() (TransparencyInfo, error) {
	header, err := d.Header()
	if err != nil {
		return TransparencyInfo{}, err
	}
	chunk, found := d.Find(TypeTRNS)
	if !found {
		return TransparencyInfo{}, fmt.Errorf("%w: %s", ErrChunkNotFound, TypeTRNS)
	}
	payload, err := chunk.Payload()
	if err != nil {
		return TransparencyInfo{}, err
	}

	paletteEntries := 0
	if header.ColorType == Indexed {
		palette, err := d.Palette()
		if err != nil && !errors.Is(err, ErrChunkNotFound) {
			return TransparencyInfo{}, err
		}
		paletteEntries = len(palette)
	}
	transparency, ok := payload.(Transparency)
	if !ok {
		return TransparencyInfo{}, fmt.Errorf("%s payload decoded as %T", TypeTRNS, payload)
	}
	return transparency.Resolve(header.ColorType, paletteEntries)
}

// TextEntries returns every tEXt, zTXt, and iTXt chunk in order with
// compressed text inflated.
func (d *Document) TextEntries() ([]TextEntry, error) {
	var entries []TextEntry
	for index, chunk := range d.chunks {
		switch chunk.chunkType {
		case TypeTEXT, TypeZTXT, TypeITXT:
		default:
			continue
		}
		payload, err := chunk.Payload()
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", index, err)
		}
		entry, ok, err := textEntry(chunk.chunkType, payload)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", index, err)
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// String renders every chunk's diagnostic summary.
func (d *Document) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "PNG: %d chunks, %d bytes\n", len(d.chunks), d.EncodedLength())
	for _, chunk := range d.chunks {
		builder.WriteString(chunk.String())
	}
	return builder.String()
}
