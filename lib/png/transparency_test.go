// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"errors"
	"slices"
	"testing"
)

func TestTransparencyIndexed(t *testing.T) {
	document := NewDocument(
		headerChunk(Indexed, 8),
		NewChunk(TypePLTE, []byte{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4}),
		NewChunk(TypeTRNS, []byte{0, 128}),
		NewChunk(TypeIDAT, nil),
		endChunk(),
	)
	info, err := document.Transparency()
	if err != nil {
		t.Fatalf("Transparency: %v", err)
	}
	if !info.Applicable {
		t.Fatal("Applicable = false for an indexed image")
	}
	if want := []uint8{0, 128, 255, 255}; !slices.Equal(info.Alphas, want) {
		t.Errorf("Alphas = %v, want %v", info.Alphas, want)
	}
	if info.Alpha(1) != 128 || info.Alpha(3) != 255 || info.Alpha(99) != 255 {
		t.Errorf("Alpha lookups: %d %d %d", info.Alpha(1), info.Alpha(3), info.Alpha(99))
	}
}

func TestTransparencyIndexedTooManyEntries(t *testing.T) {
	document := NewDocument(
		headerChunk(Indexed, 8),
		NewChunk(TypePLTE, []byte{1, 1, 1}),
		NewChunk(TypeTRNS, []byte{0, 0}),
	)
	if _, err := document.Transparency(); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("got %v, want ErrInvalidLength", err)
	}
}

func TestTransparencyKeyColors(t *testing.T) {
	gray, err := NewDocument(headerChunk(Grayscale, 16), NewChunk(TypeTRNS, []byte{0x12, 0x34})).Transparency()
	if err != nil {
		t.Fatalf("grayscale Transparency: %v", err)
	}
	if !gray.Applicable || gray.Gray != 0x1234 {
		t.Errorf("grayscale: got %+v, want gray 0x1234", gray)
	}

	rgb, err := NewDocument(headerChunk(Truecolor, 8), NewChunk(TypeTRNS, []byte{0, 1, 0, 2, 0, 3})).Transparency()
	if err != nil {
		t.Fatalf("truecolor Transparency: %v", err)
	}
	if !rgb.Applicable || rgb.Red != 1 || rgb.Green != 2 || rgb.Blue != 3 {
		t.Errorf("truecolor: got %+v, want 1, 2, 3", rgb)
	}

	if _, err := NewDocument(headerChunk(Truecolor, 8), NewChunk(TypeTRNS, []byte{0, 1})).Transparency(); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("2-byte truecolor tRNS: got %v, want ErrInvalidLength", err)
	}
}

func TestTransparencyNotApplicable(t *testing.T) {
	for _, colorType := range []ColorType{GrayscaleAlpha, TruecolorAlpha} {
		info, err := NewDocument(headerChunk(colorType, 8), NewChunk(TypeTRNS, []byte{1, 2, 3})).Transparency()
		if err != nil {
			t.Fatalf("%v: Transparency: %v", colorType, err)
		}
		if info.Applicable {
			t.Errorf("%v: Applicable = true, want false", colorType)
		}
	}
}

func TestTransparencyMissingChunks(t *testing.T) {
	if _, err := NewDocument(headerChunk(Truecolor, 8)).Transparency(); !errors.Is(err, ErrChunkNotFound) {
		t.Errorf("no tRNS: got %v, want ErrChunkNotFound", err)
	}
	if _, err := NewDocument(NewChunk(TypeTRNS, []byte{0, 0})).Transparency(); !errors.Is(err, ErrChunkNotFound) {
		t.Errorf("no IHDR: got %v, want ErrChunkNotFound", err)
	}
}
