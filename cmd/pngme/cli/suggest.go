// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" hint. Three covers a transposition plus one slip.
const maxSuggestDistance = 3

// nearest tracks the closest candidate seen so far.
type nearest struct {
	name     string
	distance int
}

func newNearest() nearest { return nearest{distance: maxSuggestDistance + 1} }

// offer records candidate if it is strictly closer to typed than the
// current best. Ties keep the earlier candidate.
func (n *nearest) offer(typed, candidate string) {
	if distance := levenshtein(typed, candidate); distance < n.distance {
		n.name, n.distance = candidate, distance
	}
}

// suggestCommand returns the subcommand name closest to unknown, or
// "" when none is within maxSuggestDistance.
func suggestCommand(unknown string, commands []*Command) string {
	best := newNearest()
	for _, command := range commands {
		best.offer(unknown, command.Name)
	}
	return best.name
}

// suggestFlag finds the first flag in args that flagSet does not
// define and returns the closest defined long flag as "--name". Args
// after "--" are operands and are not inspected.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	if flagSet == nil {
		return ""
	}
	for _, arg := range args {
		if arg == "--" {
			return ""
		}
		name, isFlag := flagName(arg)
		if !isFlag || defined(flagSet, name) {
			continue
		}
		best := newNearest()
		flagSet.VisitAll(func(flag *pflag.Flag) { best.offer(name, flag.Name) })
		if best.name == "" {
			return ""
		}
		return "--" + best.name
	}
	return ""
}

// flagName strips the dashes and any "=value" from arg. isFlag is
// false for operands, including a lone "-" (stdin).
func flagName(arg string) (name string, isFlag bool) {
	if arg == "-" || !strings.HasPrefix(arg, "-") {
		return "", false
	}
	name, _, _ = strings.Cut(strings.TrimLeft(arg, "-"), "=")
	return name, true
}

func defined(flagSet *pflag.FlagSet, name string) bool {
	if flagSet.Lookup(name) != nil {
		return true
	}
	return len(name) == 1 && flagSet.ShorthandLookup(name) != nil
}

// levenshtein returns the number of single-byte insertions, deletions,
// and substitutions that turn a into b. Flag and command names are
// ASCII, so bytes are characters here.
func levenshtein(a, b string) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	row := make([]int, len(b)+1)
	for column := range row {
		row[column] = column
	}
	for i := range len(a) {
		diagonal := row[0]
		row[0] = i + 1
		for j := range len(b) {
			substitution := diagonal
			if a[i] != b[j] {
				substitution++
			}
			diagonal = row[j+1]
			row[j+1] = min(row[j+1]+1, row[j]+1, substitution)
		}
	}
	return row[len(b)]
}
