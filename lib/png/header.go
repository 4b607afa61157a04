// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"encoding/binary"
	"fmt"
)

// ImageHeaderLength is the fixed IHDR payload size.
const ImageHeaderLength = 13

// ImageHeader is the IHDR payload:
//
//	width               4 bytes
//	height              4 bytes
//	bit depth           1 byte
//	color type          1 byte
//	compression method  1 byte (0 only)
//	filter method       1 byte (0 only)
//	interlace method    1 byte (0 or 1)
type ImageHeader struct {
	Width             uint32          `json:"width"`
	Height            uint32          `json:"height"`
	BitDepth          uint8           `json:"bit_depth"`
	ColorType         ColorType       `json:"color_type"`
	CompressionMethod uint8           `json:"compression_method"`
	FilterMethod      uint8           `json:"filter_method"`
	InterlaceMethod   InterlaceMethod `json:"interlace_method"`
}

// DecodeImageHeader parses and validates an IHDR payload.
func DecodeImageHeader(data []byte) (*ImageHeader, error) {
	if len(data) != ImageHeaderLength {
		return nil, fmt.Errorf("%w: IHDR payload is %d bytes, want %d", ErrInvalidLength, len(data), ImageHeaderLength)
	}
	header := &ImageHeader{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         ColorType(data[9]),
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   InterlaceMethod(data[12]),
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}
	return header, nil
}

// Validate checks every field against the values the format defines.
// Fields are checked in payload order, so the first bad field wins.
func (h *ImageHeader) Validate() error {
	if _, err := ParseColorType(uint8(h.ColorType)); err != nil {
		return err
	}
	if !h.ColorType.AllowsBitDepth(h.BitDepth) {
		return fmt.Errorf("%w: %d is not allowed for color type %s", ErrInvalidBitDepth, h.BitDepth, h.ColorType)
	}
	if h.CompressionMethod != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCompressionMethod, h.CompressionMethod)
	}
	if h.FilterMethod != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFilterMethod, h.FilterMethod)
	}
	if h.InterlaceMethod != InterlaceNone && h.InterlaceMethod != InterlaceAdam7 {
		return fmt.Errorf("%w: %d", ErrInvalidInterlaceMethod, h.InterlaceMethod)
	}
	return nil
}

// Bytes encodes the header as a 13-byte payload.
func (h *ImageHeader) Bytes() []byte {
	data := make([]byte, ImageHeaderLength)
	binary.BigEndian.PutUint32(data[0:4], h.Width)
	binary.BigEndian.PutUint32(data[4:8], h.Height)
	data[8] = h.BitDepth
	data[9] = uint8(h.ColorType)
	data[10] = h.CompressionMethod
	data[11] = h.FilterMethod
	data[12] = uint8(h.InterlaceMethod)
	return data
}

// Channels returns the number of samples per pixel.
func (h *ImageHeader) Channels() int { return h.ColorType.Channels() }

// BitsPerPixel returns the number of bits one pixel occupies in a
// scanline.
func (h *ImageHeader) BitsPerPixel() int { return h.Channels() * int(h.BitDepth) }

func (h *ImageHeader) String() string {
	return fmt.Sprintf("Width: %d, Height: %d\nBit depth: %d, Color type: %s, Interlace: %s",
		h.Width, h.Height, h.BitDepth, h.ColorType, h.InterlaceMethod)
}

func (*ImageHeader) isPayload() {}
