// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"bytes"
	"fmt"
	"slices"
	"unicode/utf8"
)

// MaxKeywordLength bounds keywords and profile names.
const MaxKeywordLength = 79

// ICCProfile is the iCCP payload:
//
//	profile name        1-79 bytes
//	null separator      1 byte
//	compression method  1 byte (0 only)
//	compressed profile  remaining bytes
type ICCProfile struct {
	Name              string
	CompressionMethod uint8
	// Compressed is the zlib stream exactly as stored.
	Compressed []byte
}

// NewICCProfile compresses profile under name.
func NewICCProfile(name string, profile []byte) (*ICCProfile, error) {
	if err := validateKeyword([]byte(name)); err != nil {
		return nil, err
	}
	return &ICCProfile{Name: name, CompressionMethod: compressionDeflate, Compressed: deflate(profile)}, nil
}

// DecodeICCProfile parses an iCCP payload. The profile itself stays
// compressed until [ICCProfile.Profile] is called.
func DecodeICCProfile(data []byte) (*ICCProfile, error) {
	name, rest, err := splitKeyword(data)
	if err != nil {
		return nil, fmt.Errorf("iCCP profile name: %w", err)
	}
	if len(rest) < 1 {
		return nil, fmt.Errorf("%w: iCCP has no compression method byte", ErrTruncated)
	}
	if rest[0] != compressionDeflate {
		return nil, fmt.Errorf("%w: iCCP method %d", ErrInvalidCompressionMethod, rest[0])
	}
	return &ICCProfile{
		Name:              name,
		CompressionMethod: rest[0],
		Compressed:        slices.Clone(rest[1:]),
	}, nil
}

// Profile inflates and returns the embedded ICC profile.
func (p *ICCProfile) Profile() ([]byte, error) {
	return inflate(p.Compressed)
}

func (p *ICCProfile) Bytes() []byte {
	data := make([]byte, 0, len(p.Name)+2+len(p.Compressed))
	data = append(data, p.Name...)
	data = append(data, 0, p.CompressionMethod)
	return append(data, p.Compressed...)
}

func (p *ICCProfile) String() string {
	return fmt.Sprintf("Profile Name: %s\nCompression method: Deflate\nCompressed size: %d", p.Name, len(p.Compressed))
}

func (*ICCProfile) isPayload() {}

// splitKeyword splits data at the first null byte and validates the
// keyword before it. rest starts after the separator.
func splitKeyword(data []byte) (keyword string, rest []byte, err error) {
	separator := bytes.IndexByte(data, 0)
	if separator < 0 {
		return "", nil, ErrMissingSeparator
	}
	if err := validateKeyword(data[:separator]); err != nil {
		return "", nil, err
	}
	return string(data[:separator]), data[separator+1:], nil
}

func validateKeyword(keyword []byte) error {
	if len(keyword) == 0 {
		return ErrEmptyKeyword
	}
	if len(keyword) > MaxKeywordLength {
		return fmt.Errorf("%w: %d bytes", ErrKeywordTooLong, len(keyword))
	}
	if bytes.IndexByte(keyword, 0) >= 0 {
		return fmt.Errorf("%w: keyword contains a null byte", ErrMissingSeparator)
	}
	if !utf8.Valid(keyword) {
		return fmt.Errorf("%w: keyword", ErrInvalidUTF8)
	}
	return nil
}
