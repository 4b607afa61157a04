// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"encoding/binary"
	"fmt"
)

// Fixed-point fields in gAMA and cHRM are scaled by this factor.
const fixedPointScale = 100000

// GammaLength is the fixed gAMA payload size.
const GammaLength = 4

// ChromaticitiesLength is the fixed cHRM payload size.
const ChromaticitiesLength = 32

// Gamma is the gAMA payload: image gamma times 100000.
type Gamma uint32

// DecodeGamma parses a 4-byte gAMA payload.
func DecodeGamma(data []byte) (Gamma, error) {
	if len(data) != GammaLength {
		return 0, fmt.Errorf("%w: gAMA payload is %d bytes, want %d", ErrInvalidLength, len(data), GammaLength)
	}
	return Gamma(binary.BigEndian.Uint32(data)), nil
}

// Value returns the gamma as a float, e.g. 0.45455 for 45455.
func (g Gamma) Value() float64 { return float64(g) / fixedPointScale }

func (g Gamma) Bytes() []byte { return binary.BigEndian.AppendUint32(nil, uint32(g)) }

func (g Gamma) String() string { return fmt.Sprintf("%d", uint32(g)) }

func (Gamma) isPayload() {}

// Chromaticities is the cHRM payload: CIE 1931 x,y of the white point
// and the three primaries, each times 100000.
type Chromaticities struct {
	WhitePointX uint32
	WhitePointY uint32
	RedX        uint32
	RedY        uint32
	GreenX      uint32
	GreenY      uint32
	BlueX       uint32
	BlueY       uint32
}

// DecodeChromaticities parses a 32-byte cHRM payload.
func DecodeChromaticities(data []byte) (*Chromaticities, error) {
	if len(data) != ChromaticitiesLength {
		return nil, fmt.Errorf("%w: cHRM payload is %d bytes, want %d", ErrInvalidLength, len(data), ChromaticitiesLength)
	}
	field := func(index int) uint32 { return binary.BigEndian.Uint32(data[index*4:]) }
	return &Chromaticities{
		WhitePointX: field(0),
		WhitePointY: field(1),
		RedX:        field(2),
		RedY:        field(3),
		GreenX:      field(4),
		GreenY:      field(5),
		BlueX:       field(6),
		BlueY:       field(7),
	}, nil
}

func (c *Chromaticities) fields() [8]uint32 {
	return [8]uint32{c.WhitePointX, c.WhitePointY, c.RedX, c.RedY, c.GreenX, c.GreenY, c.BlueX, c.BlueY}
}

func (c *Chromaticities) Bytes() []byte {
	data := make([]byte, 0, ChromaticitiesLength)
	for _, value := range c.fields() {
		data = binary.BigEndian.AppendUint32(data, value)
	}
	return data
}

func (c *Chromaticities) String() string {
	return fmt.Sprintf("White Point x: %d, White Point y: %d\nRed x: %d, Red y: %d\nGreen x: %d, Green y: %d\nBlue x: %d, Blue y: %d",
		c.WhitePointX, c.WhitePointY, c.RedX, c.RedY, c.GreenX, c.GreenY, c.BlueX, c.BlueY)
}

func (*Chromaticities) isPayload() {}

// DecodeRenderingIntent parses a 1-byte sRGB payload.
func DecodeRenderingIntent(data []byte) (RenderingIntent, error) {
	if len(data) != 1 {
		return 0, fmt.Errorf("%w: sRGB payload is %d bytes, want 1", ErrInvalidLength, len(data))
	}
	if data[0] > uint8(AbsoluteColorimetric) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRenderingIntent, data[0])
	}
	return RenderingIntent(data[0]), nil
}

func (r RenderingIntent) Bytes() []byte { return []byte{uint8(r)} }

func (RenderingIntent) isPayload() {}
