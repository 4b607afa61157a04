// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/render"
)

type listParams struct {
	cli.GlobalParams
	cli.JSONOutput
	cli.CBOROutput
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List chunks with their flags and digests",
		Description: `List every chunk of FILE: index, type, payload length, CRC, the four
type-byte property flags, and a BLAKE3 digest of the chunk.

Flags column: C critical, P public, R reserved bit valid, S safe to
copy; '-' where the property does not hold.`,
		Usage: "pngme list FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Chunk table",
				Command:     "pngme list photo.png",
			},
			{
				Description: "Deterministic CBOR records for tooling",
				Command:     "pngme list photo.png --cbor > chunks.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runList(ctx, &params, args, os.Stdout, logger)
		},
	}
}

func runList(_ context.Context, params *listParams, args []string, stdout io.Writer, logger *slog.Logger) error {
	path, err := oneFile(args)
	if err != nil {
		return err
	}
	if params.OutputJSON && params.OutputCBOR {
		return cli.Validation("--json and --cbor are mutually exclusive")
	}
	cfg, err := params.Config()
	if err != nil {
		return err
	}
	document, err := loadDocument(path)
	if err != nil {
		return err
	}
	logger.Debug("decoded document", "command", "list", "file", path, "chunks", document.Len())

	rows := render.Rows(document)
	if done, err := params.EmitJSON(stdout, rows); done {
		return err
	}
	if done, err := params.EmitCBOR(stdout, rows); done {
		return err
	}
	renderer, err := newRenderer(cfg, stdout)
	if err != nil {
		return err
	}
	return renderer.ChunkTable(stdout, rows)
}
