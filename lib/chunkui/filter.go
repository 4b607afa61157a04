// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunkui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/pngme/lib/render"
)

// Slab sizes for the fzf matcher, the same defaults fzf itself uses.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// fzf's character classes and bonus tables are empty until a scoring
// scheme is selected.
func init() {
	algo.Init("default")
}

// FilterModel narrows the chunk list with fzf fuzzy matching against
// each chunk's type and payload summary. Matching is case-insensitive.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true while the filter input has keyboard focus.
	Active bool

	slab *util.Slab
}

// HandleRune processes a character typed while the filter is active.
// Returns true if the input changed.
func (filter *FilterModel) HandleRune(character rune) bool {
	filter.Input += string(character)
	return true
}

// HandleBackspace removes the last character. Returns true if the
// input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if filter.Input == "" {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter and releases keyboard focus.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// Match reports whether text matches the query, with fzf's score. An
// empty query matches everything with score zero.
func (filter *FilterModel) Match(text string) (int, bool) {
	if filter.Input == "" {
		return 0, true
	}
	if filter.slab == nil {
		filter.slab = util.MakeSlab(slab16Size, slab32Size)
	}
	chars := util.ToChars([]byte(text))
	pattern := []rune(strings.ToLower(filter.Input))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, filter.slab)
	return result.Score, result.Start >= 0
}

// Apply returns the indices of rows that match, in document order.
// Chunk order is meaningful, so matches are not re-sorted by score.
func (filter *FilterModel) Apply(rows []render.ChunkRow) []int {
	indices := make([]int, 0, len(rows))
	for index, row := range rows {
		if _, ok := filter.Match(row.Type.String() + " " + row.Summary); ok {
			indices = append(indices, index)
		}
	}
	return indices
}
