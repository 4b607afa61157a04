// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkhash

import (
	"encoding/hex"
	"fmt"

	"github.com/bureau-foundation/pngme/lib/png"
	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing.
type domainKey [32]byte

// Domain separation keys: the ASCII domain name, zero-padded to 32
// bytes. Changing one invalidates every digest in that domain.
var (
	chunkDomainKey    = newDomainKey("pngme.chunkhash.chunk")
	nodeDomainKey     = newDomainKey("pngme.chunkhash.node")
	documentDomainKey = newDomainKey("pngme.chunkhash.document")
)

func newDomainKey(name string) domainKey {
	var key domainKey
	copy(key[:], name)
	return key
}

// HashChunk computes the chunk-domain digest of a chunk's type and
// payload. The CRC and length are derived from those and are not
// hashed.
func HashChunk(chunk *png.Chunk) Hash {
	chunkType := chunk.Type()
	hasher := newHasher(chunkDomainKey)
	hasher.Write(chunkType[:])
	hasher.Write(chunk.Data())
	return sum(hasher)
}

// HashDocument computes the document-domain digest over a Merkle tree
// of the document's chunk digests, in order. Two documents have the
// same digest exactly when they hold the same chunks in the same order.
func HashDocument(document *png.Document) Hash {
	chunks := document.Chunks()
	if len(chunks) == 0 {
		return keyedHash(documentDomainKey, nil)
	}
	hashes := make([]Hash, len(chunks))
	for i, chunk := range chunks {
		hashes[i] = HashChunk(chunk)
	}
	root := MerkleRoot(hashes)
	return keyedHash(documentDomainKey, root[:])
}

// MerkleRoot computes a binary Merkle tree over hashes and returns
// the root. Adjacent pairs are concatenated and hashed in the node
// domain; on a level with an odd count the last node is promoted
// unhashed rather than duplicated.
//
// Panics if hashes is empty.
func MerkleRoot(hashes []Hash) Hash {
	if len(hashes) == 0 {
		panic("chunkhash.MerkleRoot: empty hash list")
	}
	level := make([]Hash, len(hashes))
	copy(level, hashes)

	for len(level) > 1 {
		next := make([]Hash, (len(level)+1)/2)
		for i := 0; i < len(level)-1; i += 2 {
			next[i/2] = hashPair(level[i], level[i+1])
		}
		if len(level)%2 == 1 {
			next[len(next)-1] = level[len(level)-1]
		}
		level = next
	}
	return level[0]
}

// Format returns the hex encoding of a hash.
func Format(hash Hash) string {
	return hex.EncodeToString(hash[:])
}

// Short returns the first 12 hex characters, for tables and logs.
func Short(hash Hash) string {
	return hex.EncodeToString(hash[:6])
}

// Parse parses a 64-character hex string.
func Parse(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing chunk hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("chunk hash is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

func (h Hash) String() string { return Format(h) }

// MarshalText encodes the hash as hex, for JSON and CBOR output.
func (h Hash) MarshalText() ([]byte, error) { return []byte(Format(h)), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func newHasher(key domainKey) *blake3.Hasher {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("chunkhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

func sum(hasher *blake3.Hasher) Hash {
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

func keyedHash(key domainKey, data []byte) Hash {
	hasher := newHasher(key)
	hasher.Write(data)
	return sum(hasher)
}

func hashPair(left, right Hash) Hash {
	var combined [64]byte
	copy(combined[:32], left[:])
	copy(combined[32:], right[:])
	return keyedHash(nodeDomainKey, combined[:])
}
