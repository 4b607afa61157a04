// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Payload is the typed interpretation of a chunk's data. The set of
// implementations is closed (the unexported method keeps other
// packages from adding one); use a type switch to inspect it:
//
//	switch payload := chunk.Payload().(type) {
//	case *png.ImageHeader:
//	case *png.Text:
//	case png.Unrecognized:
//	}
//
// Bytes reproduces the raw payload exactly: for any payload produced
// by decoding data, Bytes returns data.
type Payload interface {
	Bytes() []byte
	String() string
	isPayload()
}

// DecodePayload interprets data under chunkType. Types without a codec
// decode to [Unrecognized]. The returned payload does not alias data.
func DecodePayload(chunkType ChunkType, data []byte) (Payload, error) {
	switch chunkType {
	case TypeIHDR:
		return asPayload(DecodeImageHeader(data))
	case TypePLTE:
		return asPayload(DecodePalette(data))
	case TypeIDAT:
		return ImageData(slices.Clone(data)), nil
	case TypeIEND:
		if len(data) != 0 {
			return nil, fmt.Errorf("%w: IEND payload is %d bytes, want 0", ErrInvalidLength, len(data))
		}
		return ImageEnd{}, nil
	case TypeTRNS:
		return Transparency(slices.Clone(data)), nil
	case TypeGAMA:
		return asPayload(DecodeGamma(data))
	case TypeCHRM:
		return asPayload(DecodeChromaticities(data))
	case TypeSRGB:
		return asPayload(DecodeRenderingIntent(data))
	case TypeICCP:
		return asPayload(DecodeICCProfile(data))
	case TypeTEXT:
		return asPayload(DecodeText(data))
	case TypeZTXT:
		return asPayload(DecodeCompressedText(data))
	case TypeITXT:
		return asPayload(DecodeInternationalText(data))
	default:
		return Unrecognized(slices.Clone(data)), nil
	}
}

// asPayload converts a codec's concrete result to the interface
// without letting a typed nil pointer escape on error.
func asPayload[T Payload](payload T, err error) (Payload, error) {
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// ImageData is an IDAT payload: a slice of the compressed image stream,
// kept opaque.
type ImageData []byte

func (d ImageData) Bytes() []byte  { return slices.Clone(d) }
func (d ImageData) String() string { return fmt.Sprintf("[u8](len: %d)", len(d)) }
func (ImageData) isPayload()       {}

// ImageEnd is the empty IEND payload.
type ImageEnd struct{}

func (ImageEnd) Bytes() []byte  { return []byte{} }
func (ImageEnd) String() string { return "[Empty]" }
func (ImageEnd) isPayload()     {}

// Unrecognized is the payload of any chunk type without a codec. The
// bytes pass through untouched.
type Unrecognized []byte

func (u Unrecognized) Bytes() []byte { return slices.Clone(u) }

func (u Unrecognized) String() string {
	if utf8.Valid(u) {
		return fmt.Sprintf("%q", string(u))
	}
	return "[Content cannot be decoded]"
}

func (Unrecognized) isPayload() {}
