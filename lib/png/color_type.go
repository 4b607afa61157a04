// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"fmt"
	"slices"
)

// ColorType is the IHDR color type byte. It determines how many
// samples make up a pixel and which bit depths are legal.
type ColorType uint8

const (
	// Grayscale: one gray sample. Bit depths 1, 2, 4, 8, 16.
	Grayscale ColorType = 0
	// Truecolor: red, green, blue samples. Bit depths 8, 16.
	Truecolor ColorType = 2
	// Indexed: one palette index. Bit depths 1, 2, 4, 8.
	Indexed ColorType = 3
	// GrayscaleAlpha: gray and alpha samples. Bit depths 8, 16.
	GrayscaleAlpha ColorType = 4
	// TruecolorAlpha: red, green, blue, alpha samples. Bit depths 8, 16.
	TruecolorAlpha ColorType = 6
)

var allowedBitDepths = map[ColorType][]uint8{
	Grayscale:      {1, 2, 4, 8, 16},
	Truecolor:      {8, 16},
	Indexed:        {1, 2, 4, 8},
	GrayscaleAlpha: {8, 16},
	TruecolorAlpha: {8, 16},
}

// ParseColorType maps a color type byte to its ColorType.
func ParseColorType(value uint8) (ColorType, error) {
	colorType := ColorType(value)
	if _, ok := allowedBitDepths[colorType]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidColorType, value)
	}
	return colorType, nil
}

// Channels returns the number of samples per pixel.
func (c ColorType) Channels() int {
	switch c {
	case Grayscale, Indexed:
		return 1
	case GrayscaleAlpha:
		return 2
	case Truecolor:
		return 3
	case TruecolorAlpha:
		return 4
	default:
		return 0
	}
}

// HasAlpha reports whether pixels carry an alpha sample.
func (c ColorType) HasAlpha() bool {
	return c == GrayscaleAlpha || c == TruecolorAlpha
}

// AllowedBitDepths returns the bit depths legal for this color type,
// ascending. Unknown color types allow none.
func (c ColorType) AllowedBitDepths() []uint8 {
	return slices.Clone(allowedBitDepths[c])
}

// AllowsBitDepth reports whether depth is legal for this color type.
func (c ColorType) AllowsBitDepth(depth uint8) bool {
	return slices.Contains(allowedBitDepths[c], depth)
}

func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "Grayscale"
	case Truecolor:
		return "RGB"
	case Indexed:
		return "Palette Index"
	case GrayscaleAlpha:
		return "Grayscale(with alpha)"
	case TruecolorAlpha:
		return "RGBA"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// FilterType is the per-scanline filter byte that precedes each row of
// image data under filter method 0.
type FilterType uint8

const (
	FilterNone    FilterType = 0
	FilterSub     FilterType = 1
	FilterUp      FilterType = 2
	FilterAverage FilterType = 3
	FilterPaeth   FilterType = 4
)

// ParseFilterType maps a filter type byte to its FilterType.
func ParseFilterType(value uint8) (FilterType, error) {
	if value > uint8(FilterPaeth) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFilterType, value)
	}
	return FilterType(value), nil
}

func (f FilterType) String() string {
	switch f {
	case FilterNone:
		return "None"
	case FilterSub:
		return "Sub"
	case FilterUp:
		return "Up"
	case FilterAverage:
		return "Average"
	case FilterPaeth:
		return "Paeth"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// InterlaceMethod is the IHDR interlace byte.
type InterlaceMethod uint8

const (
	InterlaceNone  InterlaceMethod = 0
	InterlaceAdam7 InterlaceMethod = 1
)

func (m InterlaceMethod) String() string {
	switch m {
	case InterlaceNone:
		return "None"
	case InterlaceAdam7:
		return "Adam7"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// RenderingIntent is the sRGB chunk payload.
type RenderingIntent uint8

const (
	Perceptual           RenderingIntent = 0
	RelativeColorimetric RenderingIntent = 1
	Saturation           RenderingIntent = 2
	AbsoluteColorimetric RenderingIntent = 3
)

func (r RenderingIntent) String() string {
	switch r {
	case Perceptual:
		return "Perceptual"
	case RelativeColorimetric:
		return "Relative colorimetric"
	case Saturation:
		return "Saturation"
	case AbsoluteColorimetric:
		return "Absolute colorimetric"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(r))
	}
}
