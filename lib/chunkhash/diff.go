// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkhash

import (
	"fmt"

	"github.com/bureau-foundation/pngme/lib/png"
)

// Operation classifies one entry of a [Diff].
type Operation string

const (
	Unchanged Operation = "unchanged"
	Added     Operation = "added"
	Removed   Operation = "removed"
	// Changed pairs a removed and an added chunk of the same type
	// that sit between the same unchanged neighbors.
	Changed Operation = "changed"
)

// Change is one entry of a [Diff]. OldIndex is -1 for added chunks and
// NewIndex is -1 for removed ones; the matching hash is then zero.
type Change struct {
	Operation Operation     `json:"operation"`
	Type      png.ChunkType `json:"type"`
	OldIndex  int           `json:"old_index"`
	NewIndex  int           `json:"new_index"`
	OldHash   Hash          `json:"old_hash"`
	NewHash   Hash          `json:"new_hash"`
}

func (c Change) String() string {
	switch c.Operation {
	case Added:
		return fmt.Sprintf("+ [%d] %s %s", c.NewIndex, c.Type, Short(c.NewHash))
	case Removed:
		return fmt.Sprintf("- [%d] %s %s", c.OldIndex, c.Type, Short(c.OldHash))
	case Changed:
		return fmt.Sprintf("~ [%d→%d] %s %s → %s", c.OldIndex, c.NewIndex, c.Type, Short(c.OldHash), Short(c.NewHash))
	default:
		return fmt.Sprintf("  [%d→%d] %s %s", c.OldIndex, c.NewIndex, c.Type, Short(c.NewHash))
	}
}

// Diff compares two documents chunk by chunk. Chunks are matched by
// digest along a longest common subsequence, so a chunk inserted in
// the middle shows up as one addition rather than a cascade of
// changes. The result covers every chunk of both documents in order.
func Diff(before, after *png.Document) []Change {
	oldChunks, newChunks := before.Chunks(), after.Chunks()
	oldHashes, newHashes := hashAll(oldChunks), hashAll(newChunks)
	n, m := len(oldHashes), len(newHashes)

	// common[i][j] is the LCS length of oldHashes[i:] and newHashes[j:].
	common := make([][]int, n+1)
	for i := range common {
		common[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if oldHashes[i] == newHashes[j] {
				common[i][j] = common[i+1][j+1] + 1
			} else {
				common[i][j] = max(common[i+1][j], common[i][j+1])
			}
		}
	}

	var changes, removed, added []Change
	flush := func() {
		changes = append(changes, pairChanges(removed, added)...)
		removed, added = nil, nil
	}
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && oldHashes[i] == newHashes[j]:
			flush()
			changes = append(changes, Change{
				Operation: Unchanged, Type: oldChunks[i].Type(),
				OldIndex: i, NewIndex: j, OldHash: oldHashes[i], NewHash: newHashes[j],
			})
			i++
			j++
		case j < m && (i == n || common[i][j+1] >= common[i+1][j]):
			added = append(added, Change{
				Operation: Added, Type: newChunks[j].Type(),
				OldIndex: -1, NewIndex: j, NewHash: newHashes[j],
			})
			j++
		default:
			removed = append(removed, Change{
				Operation: Removed, Type: oldChunks[i].Type(),
				OldIndex: i, NewIndex: -1, OldHash: oldHashes[i],
			})
			i++
		}
	}
	flush()
	return changes
}

// pairChanges merges removals and additions from the same gap into
// Changed entries when their types match, first come first paired.
func pairChanges(removed, added []Change) []Change {
	used := make([]bool, len(added))
	var result []Change
	for _, removal := range removed {
		paired := false
		for k, addition := range added {
			if used[k] || addition.Type != removal.Type {
				continue
			}
			used[k] = true
			paired = true
			result = append(result, Change{
				Operation: Changed, Type: removal.Type,
				OldIndex: removal.OldIndex, NewIndex: addition.NewIndex,
				OldHash: removal.OldHash, NewHash: addition.NewHash,
			})
			break
		}
		if !paired {
			result = append(result, removal)
		}
	}
	for k, addition := range added {
		if !used[k] {
			result = append(result, addition)
		}
	}
	return result
}

// Differs reports whether any change in changes is not Unchanged.
func Differs(changes []Change) bool {
	for _, change := range changes {
		if change.Operation != Unchanged {
			return true
		}
	}
	return false
}

func hashAll(chunks []*png.Chunk) []Hash {
	hashes := make([]Hash, len(chunks))
	for i, chunk := range chunks {
		hashes[i] = HashChunk(chunk)
	}
	return hashes
}
