// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

// ChunkType is the four-byte chunk identifier. Every byte is an ASCII
// letter, and bit 5 of each byte (the letter's case) carries a
// property flag:
//
//	byte 0  ancillary bit     upper = critical,  lower = ancillary
//	byte 1  private bit       upper = public,    lower = private
//	byte 2  reserved bit      must be upper in this revision of the format
//	byte 3  safe-to-copy bit  upper = unsafe,    lower = safe to copy
//
// ChunkType is comparable; two types are equal when their bytes are.
type ChunkType [4]byte

// Chunk types with a payload codec in this package.
var (
	TypeIHDR = ChunkType{'I', 'H', 'D', 'R'}
	TypePLTE = ChunkType{'P', 'L', 'T', 'E'}
	TypeIDAT = ChunkType{'I', 'D', 'A', 'T'}
	TypeIEND = ChunkType{'I', 'E', 'N', 'D'}
	TypeTRNS = ChunkType{'t', 'R', 'N', 'S'}
	TypeGAMA = ChunkType{'g', 'A', 'M', 'A'}
	TypeCHRM = ChunkType{'c', 'H', 'R', 'M'}
	TypeSRGB = ChunkType{'s', 'R', 'G', 'B'}
	TypeICCP = ChunkType{'i', 'C', 'C', 'P'}
	TypeTEXT = ChunkType{'t', 'E', 'X', 't'}
	TypeZTXT = ChunkType{'z', 'T', 'X', 't'}
	TypeITXT = ChunkType{'i', 'T', 'X', 't'}
)

// caseBit is bit 5: clear for upper-case ASCII letters, set for lower.
const caseBit = 0x20

// ParseChunkType validates raw type bytes.
func ParseChunkType(raw [4]byte) (ChunkType, error) {
	for position, b := range raw {
		if !isLetter(b) {
			return ChunkType{}, &ChunkTypeError{Input: string(raw[:]), Position: position, Byte: b}
		}
	}
	return ChunkType(raw), nil
}

// ChunkTypeFromString parses the textual form of a chunk type. The
// string must be exactly four ASCII letters.
func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &ChunkTypeError{Input: s, Position: -1}
	}
	var raw [4]byte
	copy(raw[:], s)
	return ParseChunkType(raw)
}

// MustChunkType is ChunkTypeFromString for constants known to be
// valid. It panics on invalid input.
func MustChunkType(s string) ChunkType {
	chunkType, err := ChunkTypeFromString(s)
	if err != nil {
		panic(err)
	}
	return chunkType
}

// Bytes returns the four type bytes.
func (t ChunkType) Bytes() [4]byte { return t }

// String returns the type as four ASCII characters.
func (t ChunkType) String() string { return string(t[:]) }

// IsCritical reports whether the ancillary bit is clear.
func (t ChunkType) IsCritical() bool { return t[0]&caseBit == 0 }

// IsPublic reports whether the private bit is clear.
func (t ChunkType) IsPublic() bool { return t[1]&caseBit == 0 }

// IsReservedBitValid reports whether the reserved bit is clear, as the
// current revision of the format requires.
func (t ChunkType) IsReservedBitValid() bool { return t[2]&caseBit == 0 }

// IsSafeToCopy reports whether the safe-to-copy bit is set.
func (t ChunkType) IsSafeToCopy() bool { return t[3]&caseBit != 0 }

// IsValid reports whether every byte is a letter and the reserved bit
// is clear. A zero ChunkType is not valid.
func (t ChunkType) IsValid() bool {
	for _, b := range t {
		if !isLetter(b) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

// MarshalText implements encoding.TextMarshaler.
func (t ChunkType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ChunkType) UnmarshalText(text []byte) error {
	parsed, err := ChunkTypeFromString(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func isLetter(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}
