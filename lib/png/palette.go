// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"fmt"
	"strings"
)

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Palette is the PLTE payload: an ordered list of RGB entries, three
// bytes each.
type Palette []RGB

// DecodePalette groups data into RGB triples. A length that is not a
// multiple of three is rejected rather than truncated.
func DecodePalette(data []byte) (Palette, error) {
	if len(data)%3 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidPalette, len(data))
	}
	palette := make(Palette, 0, len(data)/3)
	for i := 0; i < len(data); i += 3 {
		palette = append(palette, RGB{R: data[i], G: data[i+1], B: data[i+2]})
	}
	return palette, nil
}

func (p Palette) Bytes() []byte {
	data := make([]byte, 0, len(p)*3)
	for _, entry := range p {
		data = append(data, entry.R, entry.G, entry.B)
	}
	return data
}

func (p Palette) String() string {
	entries := make([]string, len(p))
	for i, entry := range p {
		entries[i] = "Palette: " + entry.String()
	}
	return strings.Join(entries, "\n")
}

func (Palette) isPayload() {}
