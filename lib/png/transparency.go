// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"encoding/binary"
	"fmt"
	"slices"
)

// Transparency is the tRNS payload. Its layout depends on the image's
// color type, which the chunk alone does not know, so the bytes are
// kept as-is and interpreted by [Transparency.Resolve].
type Transparency []byte

func (t Transparency) Bytes() []byte  { return slices.Clone(t) }
func (t Transparency) String() string { return fmt.Sprintf("Transparency: %d bytes", len(t)) }
func (Transparency) isPayload()       {}

// TransparencyInfo is a tRNS payload interpreted under a color type.
type TransparencyInfo struct {
	// Applicable is false for color types that carry a full alpha
	// channel; every other field is then zero.
	Applicable bool `json:"applicable"`

	ColorType ColorType `json:"color_type"`

	// Alphas holds one alpha value per palette entry (indexed images).
	// Entries past the end of the tRNS payload are fully opaque and are
	// filled with 255 up to the palette length.
	Alphas []uint8 `json:"alphas,omitempty"`

	// Gray is the transparent sample value (grayscale images).
	Gray uint16 `json:"gray,omitempty"`

	// Red, Green, and Blue form the transparent color (truecolor images).
	Red   uint16 `json:"red,omitempty"`
	Green uint16 `json:"green,omitempty"`
	Blue  uint16 `json:"blue,omitempty"`
}

// Resolve interprets the payload for an image of the given color type.
// paletteEntries is the PLTE entry count and only matters for indexed
// images; pass 0 when there is no palette.
func (t Transparency) Resolve(colorType ColorType, paletteEntries int) (TransparencyInfo, error) {
	info := TransparencyInfo{ColorType: colorType}
	switch colorType {
	case Grayscale:
		if len(t) != 2 {
			return TransparencyInfo{}, fmt.Errorf("%w: grayscale tRNS is %d bytes, want 2", ErrInvalidLength, len(t))
		}
		info.Applicable = true
		info.Gray = binary.BigEndian.Uint16(t)
	case Truecolor:
		if len(t) != 6 {
			return TransparencyInfo{}, fmt.Errorf("%w: truecolor tRNS is %d bytes, want 6", ErrInvalidLength, len(t))
		}
		info.Applicable = true
		info.Red = binary.BigEndian.Uint16(t[0:2])
		info.Green = binary.BigEndian.Uint16(t[2:4])
		info.Blue = binary.BigEndian.Uint16(t[4:6])
	case Indexed:
		if paletteEntries > 0 && len(t) > paletteEntries {
			return TransparencyInfo{}, fmt.Errorf("%w: tRNS has %d entries for a %d-entry palette", ErrInvalidLength, len(t), paletteEntries)
		}
		info.Applicable = true
		info.Alphas = make([]uint8, max(len(t), paletteEntries))
		copy(info.Alphas, t)
		for index := len(t); index < len(info.Alphas); index++ {
			info.Alphas[index] = 0xff
		}
	case GrayscaleAlpha, TruecolorAlpha:
		// Not applicable: the alpha channel already carries transparency.
	default:
		return TransparencyInfo{}, fmt.Errorf("%w: %d", ErrInvalidColorType, uint8(colorType))
	}
	return info, nil
}

// Alpha returns the alpha value of palette entry index. Indices with no
// explicit tRNS entry are fully opaque.
func (i TransparencyInfo) Alpha(index int) uint8 {
	if index < 0 || index >= len(i.Alphas) {
		return 0xff
	}
	return i.Alphas[index]
}
