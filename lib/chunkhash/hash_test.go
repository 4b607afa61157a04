// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkhash

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/bureau-foundation/pngme/lib/png"
)

func TestDomainKeysAreDistinct(t *testing.T) {
	input := []byte("the same input bytes for every domain")
	chunkHash := keyedHash(chunkDomainKey, input)
	nodeHash := keyedHash(nodeDomainKey, input)
	documentHash := keyedHash(documentDomainKey, input)

	if chunkHash == nodeHash || chunkHash == documentHash || nodeHash == documentHash {
		t.Error("two domains produced the same hash for identical input")
	}
	for _, key := range []domainKey{chunkDomainKey, nodeDomainKey, documentDomainKey} {
		if !strings.HasPrefix(string(key[:]), "pngme.chunkhash.") {
			t.Errorf("domain key %q lacks the package prefix", key[:])
		}
	}
}

func TestHashChunkCoversTypeAndPayload(t *testing.T) {
	base := png.NewChunk(png.MustChunkType("ruSt"), []byte("payload"))
	sameBytes := png.NewChunk(png.MustChunkType("ruSt"), []byte("payload"))
	otherType := png.NewChunk(png.MustChunkType("ruSx"), []byte("payload"))
	otherData := png.NewChunk(png.MustChunkType("ruSt"), []byte("payloaD"))

	if HashChunk(base) != HashChunk(sameBytes) {
		t.Error("identical chunks hashed differently")
	}
	if HashChunk(base) == HashChunk(otherType) {
		t.Error("chunk type is not covered by the digest")
	}
	if HashChunk(base) == HashChunk(otherData) {
		t.Error("payload is not covered by the digest")
	}
	var zero Hash
	if HashChunk(png.NewChunk(png.TypeIEND, nil)) == zero {
		t.Error("empty chunk hashed to zero")
	}
}

func TestMerkleRoot(t *testing.T) {
	hashes := make([]Hash, 3)
	for i := range hashes {
		hashes[i] = keyedHash(chunkDomainKey, []byte(fmt.Sprintf("chunk %d", i)))
	}

	if root := MerkleRoot(hashes[:1]); root != hashes[0] {
		t.Errorf("single hash root = %s, want %s", root, hashes[0])
	}
	if root := MerkleRoot(hashes[:2]); root != hashPair(hashes[0], hashes[1]) {
		t.Errorf("two hash root = %s", root)
	}
	// Odd node promoted, not duplicated.
	want := hashPair(hashPair(hashes[0], hashes[1]), hashes[2])
	if root := MerkleRoot(hashes); root != want {
		t.Errorf("three hash root = %s, want %s", root, want)
	}
	if MerkleRoot([]Hash{hashes[0], hashes[1]}) == MerkleRoot([]Hash{hashes[1], hashes[0]}) {
		t.Error("MerkleRoot is order-independent")
	}
}

func TestMerkleRootPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MerkleRoot(nil) did not panic")
		}
	}()
	MerkleRoot(nil)
}

func TestHashDocument(t *testing.T) {
	first := png.NewChunk(png.TypeIHDR, []byte("header"))
	second := png.NewChunk(png.TypeIEND, nil)

	forward := HashDocument(png.NewDocument(first, second))
	if forward != HashDocument(png.NewDocument(first, second)) {
		t.Error("HashDocument is not deterministic")
	}
	if forward == HashDocument(png.NewDocument(second, first)) {
		t.Error("HashDocument ignores chunk order")
	}
	if forward == MerkleRoot([]Hash{HashChunk(first), HashChunk(second)}) {
		t.Error("document digest equals the bare Merkle root")
	}
	empty := HashDocument(png.NewDocument())
	var zero Hash
	if empty == zero {
		t.Error("empty document hashed to zero")
	}
	if single := HashDocument(png.NewDocument(first)); single == HashChunk(first) {
		t.Error("single-chunk document digest equals the chunk digest")
	}
}

func TestFormatParse(t *testing.T) {
	hash := keyedHash(chunkDomainKey, []byte("format me"))
	formatted := Format(hash)
	if len(formatted) != 64 {
		t.Fatalf("Format returned %d characters, want 64", len(formatted))
	}
	if !strings.HasPrefix(formatted, Short(hash)) || len(Short(hash)) != 12 {
		t.Errorf("Short = %q, not a 12-character prefix of %q", Short(hash), formatted)
	}
	parsed, err := Parse(formatted)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed != hash {
		t.Errorf("Parse(Format(h)) = %s, want %s", parsed, hash)
	}

	for _, input := range []string{"", "zz", formatted[:62]} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded", input)
		}
	}
}

func TestHashJSON(t *testing.T) {
	hash := keyedHash(chunkDomainKey, []byte("json"))
	encoded, err := json.Marshal(hash)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(encoded) != `"`+Format(hash)+`"` {
		t.Errorf("got %s, want quoted hex", encoded)
	}
	var decoded Hash
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != hash {
		t.Errorf("decoded %s, want %s", decoded, hash)
	}
}
