// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"errors"
	"testing"
)

func TestValidateAcceptsWellFormedDocuments(t *testing.T) {
	iccProfile, err := NewICCProfile("profile", []byte("icc"))
	if err != nil {
		t.Fatalf("NewICCProfile: %v", err)
	}
	tests := []struct {
		name   string
		chunks []*Chunk
	}{
		{"minimal", []*Chunk{headerChunk(Truecolor, 8), NewChunk(TypeIDAT, nil), endChunk()}},
		{"indexed with palette and transparency", []*Chunk{
			headerChunk(Indexed, 8),
			payloadChunk(t, TypeGAMA, Gamma(45455)),
			NewChunk(TypePLTE, []byte{1, 2, 3, 4, 5, 6}),
			NewChunk(TypeTRNS, []byte{0}),
			NewChunk(TypeIDAT, nil),
			NewChunk(TypeIDAT, nil),
			endChunk(),
		}},
		{"truecolor with suggested palette", []*Chunk{
			headerChunk(Truecolor, 8),
			payloadChunk(t, TypeICCP, iccProfile),
			NewChunk(TypePLTE, []byte{1, 2, 3}),
			NewChunk(TypeIDAT, nil),
			endChunk(),
		}},
		{"text anywhere", []*Chunk{
			headerChunk(GrayscaleAlpha, 8),
			textChunk(t, "Before", ""),
			NewChunk(TypeIDAT, nil),
			textChunk(t, "After", ""),
			textChunk(t, "After", "again"),
			endChunk(),
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := NewDocument(test.chunks...).Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestValidateRejections(t *testing.T) {
	idat := func() *Chunk { return NewChunk(TypeIDAT, nil) }
	plte := func() *Chunk { return NewChunk(TypePLTE, []byte{1, 2, 3}) }

	tests := []struct {
		name   string
		chunks []*Chunk
		index  int
		typ    ChunkType
	}{
		{"empty", nil, -1, TypeIHDR},
		{"IHDR not first", []*Chunk{textChunk(t, "A", ""), headerChunk(Truecolor, 8), idat(), endChunk()}, 0, TypeTEXT},
		{"IEND not last", []*Chunk{headerChunk(Truecolor, 8), idat(), endChunk(), textChunk(t, "A", "")}, 3, TypeTEXT},
		{"second IHDR", []*Chunk{headerChunk(Truecolor, 8), headerChunk(Truecolor, 8), idat(), endChunk()}, 1, TypeIHDR},
		{"second IEND", []*Chunk{headerChunk(Truecolor, 8), idat(), endChunk(), endChunk()}, 3, TypeIEND},
		{"no IDAT", []*Chunk{headerChunk(Truecolor, 8), endChunk()}, -1, TypeIDAT},
		{"split IDAT", []*Chunk{headerChunk(Truecolor, 8), idat(), textChunk(t, "A", ""), idat(), endChunk()}, 3, TypeIDAT},
		{"PLTE after IDAT", []*Chunk{headerChunk(Truecolor, 8), idat(), plte(), endChunk()}, 2, TypePLTE},
		{"second PLTE", []*Chunk{headerChunk(Indexed, 8), plte(), plte(), idat(), endChunk()}, 2, TypePLTE},
		{"gAMA after PLTE", []*Chunk{headerChunk(Indexed, 8), plte(), payloadChunk(t, TypeGAMA, Gamma(1)), idat(), endChunk()}, 2, TypeGAMA},
		{"sRGB after IDAT", []*Chunk{headerChunk(Truecolor, 8), idat(), payloadChunk(t, TypeSRGB, Perceptual), endChunk()}, 2, TypeSRGB},
		{"second gAMA", []*Chunk{headerChunk(Truecolor, 8), payloadChunk(t, TypeGAMA, Gamma(1)), payloadChunk(t, TypeGAMA, Gamma(2)), idat(), endChunk()}, 2, TypeGAMA},
		{"tRNS before PLTE", []*Chunk{headerChunk(Indexed, 8), NewChunk(TypeTRNS, []byte{0}), plte(), idat(), endChunk()}, 1, TypeTRNS},
		{"tRNS after IDAT", []*Chunk{headerChunk(Truecolor, 8), idat(), NewChunk(TypeTRNS, make([]byte, 6)), endChunk()}, 2, TypeTRNS},
		{"indexed without PLTE", []*Chunk{headerChunk(Indexed, 8), idat(), endChunk()}, -1, TypePLTE},
		{"grayscale with PLTE", []*Chunk{headerChunk(Grayscale, 8), plte(), idat(), endChunk()}, 1, TypePLTE},
		{"malformed IHDR", []*Chunk{NewChunk(TypeIHDR, []byte{1}), idat(), endChunk()}, 0, TypeIHDR},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := NewDocument(test.chunks...).Validate()
			if !errors.Is(err, ErrPlacement) {
				t.Fatalf("got %v, want ErrPlacement", err)
			}
			var placement *PlacementError
			if !errors.As(err, &placement) {
				t.Fatalf("error %T is not a *PlacementError", err)
			}
			if placement.Index != test.index || placement.Type != test.typ {
				t.Errorf("violation at %d (%s), want %d (%s): %v", placement.Index, placement.Type, test.index, test.typ, err)
			}
		})
	}
}

func TestDecodeDoesNotValidatePlacement(t *testing.T) {
	encoded := NewDocument(endChunk(), headerChunk(Truecolor, 8)).Encode()
	document, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode of misordered document: %v", err)
	}
	if err := document.Validate(); !errors.Is(err, ErrPlacement) {
		t.Errorf("Validate: got %v, want ErrPlacement", err)
	}
}
