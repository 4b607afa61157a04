// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/pngme/lib/png"
)

// sampleHeader mirrors an envelope header: CBOR-only, cbor tags.
type sampleHeader struct {
	Version     int    `cbor:"v"`
	Compression string `cbor:"compression,omitempty"`
	Size        int    `cbor:"size"`
}

// sampleRow mirrors a listing row: JSON and CBOR, json tags.
type sampleRow struct {
	Index int           `json:"index"`
	Type  png.ChunkType `json:"type"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleHeader{Version: 1, Compression: "zstd", Size: 4096}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded sampleHeader
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"zeta": 1, "alpha": 2, "mid": []int{3}}
	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("non-deterministic encoding: %x vs %x", first, again)
		}
	}
}

func TestChunkTypeEncodesAsText(t *testing.T) {
	data, err := Marshal(sampleRow{Index: 2, Type: png.TypeTEXT})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"tEXt"`) {
		t.Errorf("notation %s does not carry the type as text", notation)
	}

	var decoded sampleRow
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Type != png.TypeTEXT || decoded.Index != 2 {
		t.Errorf("got %+v", decoded)
	}
}

func TestEncoderDecoderStream(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for i := range 3 {
		if err := encoder.Encode(sampleHeader{Version: i, Size: i * 10}); err != nil {
			t.Fatalf("Encode %d: %v", i, err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i := range 3 {
		var header sampleHeader
		if err := decoder.Decode(&header); err != nil {
			t.Fatalf("Decode %d: %v", i, err)
		}
		if header.Version != i || header.Size != i*10 {
			t.Errorf("item %d = %+v", i, header)
		}
	}
}

func TestOmitemptyRespected(t *testing.T) {
	with, err := Marshal(sampleHeader{Version: 1, Compression: "lz4"})
	if err != nil {
		t.Fatal(err)
	}
	without, err := Marshal(sampleHeader{Version: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(without) >= len(with) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes", len(without), len(with))
	}
}

func TestUnmarshalAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"key": map[string]any{"nested": true}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	outer, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if _, ok := outer["key"].(map[string]any); !ok {
		t.Errorf("nested value is %T, want map[string]any", outer["key"])
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var header sampleHeader
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &header); err == nil {
		t.Error("Unmarshal accepted invalid CBOR")
	}
}
