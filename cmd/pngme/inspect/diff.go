// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/chunkhash"
)

type diffParams struct {
	cli.GlobalParams
	cli.JSONOutput
	All bool `json:"-" flag:"all,a" desc:"include unchanged chunks"`
}

func diffCommand() *cli.Command {
	var params diffParams

	return &cli.Command{
		Name:    "diff",
		Summary: "Compare two PNG files chunk by chunk",
		Description: `Compare the chunks of OLD and NEW by BLAKE3 digest. Chunks are matched
along a longest common subsequence, so one inserted chunk shows up as
one addition. A removed and an added chunk of the same type in the
same place are reported as a change.

  + added   - removed   ~ changed

Like diff(1), exits 0 when the files have identical chunks and 1 when
they differ.`,
		Usage: "pngme diff OLD NEW [flags]",
		Examples: []cli.Example{
			{
				Description: "See what encode changed",
				Command:     "pngme diff original.png encoded.png",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runDiff(ctx, &params, args, os.Stdout, logger)
		},
	}
}

func runDiff(_ context.Context, params *diffParams, args []string, stdout io.Writer, logger *slog.Logger) error {
	if len(args) != 2 {
		return cli.Validation("diff takes exactly two files, got %d", len(args))
	}
	cfg, err := params.Config()
	if err != nil {
		return err
	}
	before, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	after, err := loadDocument(args[1])
	if err != nil {
		return err
	}

	changes := chunkhash.Diff(before, after)
	differs := chunkhash.Differs(changes)
	logger.Debug("compared documents", "command", "diff", "old", args[0], "new", args[1], "differs", differs)

	if !params.All {
		var shown []chunkhash.Change
		for _, change := range changes {
			if change.Operation != chunkhash.Unchanged {
				shown = append(shown, change)
			}
		}
		changes = shown
	}

	if done, err := params.EmitJSON(stdout, changes); done {
		if err != nil {
			return err
		}
	} else {
		renderer, err := newRenderer(cfg, stdout)
		if err != nil {
			return err
		}
		if err := renderer.Diff(stdout, changes); err != nil {
			return err
		}
	}
	if differs {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
