// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package png

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestChunkTypeProperties(t *testing.T) {
	tests := []struct {
		input         string
		critical      bool
		public        bool
		reservedValid bool
		safeToCopy    bool
	}{
		{"RuSt", true, false, true, true},
		{"Rust", true, false, false, true},
		{"IHDR", true, true, true, false},
		{"tEXt", false, true, true, true},
		{"prVt", false, false, true, true},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			chunkType, err := ChunkTypeFromString(test.input)
			if err != nil {
				t.Fatalf("ChunkTypeFromString(%q): %v", test.input, err)
			}
			if got := chunkType.IsCritical(); got != test.critical {
				t.Errorf("IsCritical = %v, want %v", got, test.critical)
			}
			if got := chunkType.IsPublic(); got != test.public {
				t.Errorf("IsPublic = %v, want %v", got, test.public)
			}
			if got := chunkType.IsReservedBitValid(); got != test.reservedValid {
				t.Errorf("IsReservedBitValid = %v, want %v", got, test.reservedValid)
			}
			if got := chunkType.IsSafeToCopy(); got != test.safeToCopy {
				t.Errorf("IsSafeToCopy = %v, want %v", got, test.safeToCopy)
			}
			if got := chunkType.IsValid(); got != test.reservedValid {
				t.Errorf("IsValid = %v, want %v", got, test.reservedValid)
			}
			if got := chunkType.String(); got != test.input {
				t.Errorf("String = %q, want %q", got, test.input)
			}
		})
	}
}

func TestParseChunkTypeBytes(t *testing.T) {
	chunkType, err := ParseChunkType([4]byte{82, 117, 83, 116})
	if err != nil {
		t.Fatalf("ParseChunkType: %v", err)
	}
	if chunkType.Bytes() != [4]byte{82, 117, 83, 116} {
		t.Errorf("Bytes = %v, want [82 117 83 116]", chunkType.Bytes())
	}
	if chunkType != MustChunkType("RuSt") {
		t.Errorf("parsed %v, want RuSt", chunkType)
	}
}

func TestChunkTypeRejectsNonLetters(t *testing.T) {
	tests := []struct {
		input    string
		position int
		b        byte
	}{
		{"Ru1t", 2, '1'},
		{"Rus ", 3, ' '},
		{"\x00ABC", 0, 0},
		{"Ru[t", 2, '['},
		{"R@St", 1, '@'},
		{"Rust!", -1, 0},
		{"Ru", -1, 0},
		{"", -1, 0},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, err := ChunkTypeFromString(test.input)
			if !errors.Is(err, ErrInvalidChunkType) {
				t.Fatalf("got %v, want ErrInvalidChunkType", err)
			}
			if !IsStructural(err) {
				t.Errorf("IsStructural(%v) = false", err)
			}
			var typeErr *ChunkTypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("error %T is not a *ChunkTypeError", err)
			}
			if typeErr.Position != test.position {
				t.Errorf("Position = %d, want %d", typeErr.Position, test.position)
			}
			if test.position >= 0 && typeErr.Byte != test.b {
				t.Errorf("Byte = %q, want %q", typeErr.Byte, test.b)
			}
		})
	}
}

func TestChunkTypeTextMarshaling(t *testing.T) {
	encoded, err := json.Marshal(map[string]ChunkType{"type": TypeTEXT})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(encoded) != `{"type":"tEXt"}` {
		t.Errorf("got %s, want {\"type\":\"tEXt\"}", encoded)
	}

	var decoded map[string]ChunkType
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["type"] != TypeTEXT {
		t.Errorf("got %v, want tEXt", decoded["type"])
	}

	if err := json.Unmarshal([]byte(`{"type":"t3Xt"}`), &decoded); !errors.Is(err, ErrInvalidChunkType) {
		t.Errorf("Unmarshal of t3Xt: got %v, want ErrInvalidChunkType", err)
	}
}

func TestMustChunkTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustChunkType(\"12ab\") did not panic")
		}
	}()
	MustChunkType("12ab")
}
