// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import "slices"

// singletons may appear at most once per document.
var singletons = []ChunkType{TypeIHDR, TypePLTE, TypeIEND, TypeTRNS, TypeGAMA, TypeCHRM, TypeSRGB, TypeICCP}

// beforePalette must precede PLTE and IDAT.
var beforePalette = []ChunkType{TypeGAMA, TypeCHRM, TypeSRGB, TypeICCP}

// Validate checks the document against the format's chunk ordering
// rules and returns the first violation as a [*PlacementError]. It
// does not look at payloads beyond the IHDR color type.
func (d *Document) Validate() error {
	if len(d.chunks) == 0 {
		return &PlacementError{Index: -1, Type: TypeIHDR, Rule: "document has no chunks"}
	}
	if first := d.chunks[0].chunkType; first != TypeIHDR {
		return &PlacementError{Index: 0, Type: first, Rule: "first chunk must be IHDR"}
	}
	last := len(d.chunks) - 1
	if d.chunks[last].chunkType != TypeIEND {
		return &PlacementError{Index: last, Type: d.chunks[last].chunkType, Rule: "last chunk must be IEND"}
	}

	seen := make(map[ChunkType]int)
	for index, chunk := range d.chunks {
		chunkType := chunk.chunkType
		if _, dup := seen[chunkType]; dup && slices.Contains(singletons, chunkType) {
			return &PlacementError{Index: index, Type: chunkType, Rule: "may appear at most once"}
		}
		if _, found := seen[chunkType]; !found {
			seen[chunkType] = index
		}
	}

	firstData, hasData := seen[TypeIDAT]
	if !hasData {
		return &PlacementError{Index: -1, Type: TypeIDAT, Rule: "at least one IDAT chunk is required"}
	}
	for index := firstData; index < len(d.chunks); index++ {
		if d.chunks[index].chunkType != TypeIDAT {
			for rest := index + 1; rest < len(d.chunks); rest++ {
				if d.chunks[rest].chunkType == TypeIDAT {
					return &PlacementError{Index: rest, Type: TypeIDAT, Rule: "IDAT chunks must be consecutive"}
				}
			}
			break
		}
	}

	palette, hasPalette := seen[TypePLTE]
	if hasPalette && palette > firstData {
		return &PlacementError{Index: palette, Type: TypePLTE, Rule: "must precede the first IDAT"}
	}
	for _, chunkType := range beforePalette {
		index, found := seen[chunkType]
		if !found {
			continue
		}
		if hasPalette && index > palette {
			return &PlacementError{Index: index, Type: chunkType, Rule: "must precede PLTE"}
		}
		if index > firstData {
			return &PlacementError{Index: index, Type: chunkType, Rule: "must precede the first IDAT"}
		}
	}
	if transparency, found := seen[TypeTRNS]; found {
		if hasPalette && transparency < palette {
			return &PlacementError{Index: transparency, Type: TypeTRNS, Rule: "must follow PLTE"}
		}
		if transparency > firstData {
			return &PlacementError{Index: transparency, Type: TypeTRNS, Rule: "must precede the first IDAT"}
		}
	}

	header, err := d.Header()
	if err != nil {
		return &PlacementError{Index: 0, Type: TypeIHDR, Rule: err.Error()}
	}
	switch {
	case header.ColorType == Indexed && !hasPalette:
		return &PlacementError{Index: -1, Type: TypePLTE, Rule: "indexed images require a PLTE chunk"}
	case hasPalette && (header.ColorType == Grayscale || header.ColorType == GrayscaleAlpha):
		return &PlacementError{Index: palette, Type: TypePLTE, Rule: "not allowed for grayscale images"}
	}
	return nil
}
