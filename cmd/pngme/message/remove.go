// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/png"
	"github.com/bureau-foundation/pngme/lib/pngfile"
)

type removeParams struct {
	cli.GlobalParams
	Type   string `json:"-" flag:"type,t" desc:"chunk type to remove (default: message.chunk_type)"`
	Output string `json:"-" flag:"output,o" desc:"write the result here instead of overwriting FILE"`
}

func removeCommand() *cli.Command {
	var params removeParams

	return &cli.Command{
		Name:    "remove",
		Summary: "Remove a chunk from a PNG file",
		Description: `Remove the first chunk of the given type and write the file back in
place (or to --output). Other chunks keep their order.

Removing the only chunk of a document fails unless document.allow_empty
is set in the config.`,
		Usage: "pngme remove FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Strip the hidden message",
				Command:     "pngme remove photo.png",
			},
			{
				Description: "Drop the first text chunk into a copy",
				Command:     "pngme remove photo.png -t tEXt -o clean.png",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runRemove(ctx, &params, args, os.Stdout, logger)
		},
	}
}

func runRemove(_ context.Context, params *removeParams, args []string, stdout io.Writer, logger *slog.Logger) error {
	if len(args) != 1 {
		return cli.Validation("remove takes exactly one FILE, got %d arguments", len(args))
	}
	path := args[0]

	cfg, err := params.Config()
	if err != nil {
		return err
	}
	chunkType, err := resolveChunkType(params.Type, cfg)
	if err != nil {
		return err
	}
	document, err := loadDocument(path)
	if err != nil {
		return err
	}
	document.AllowEmpty = cfg.Document.AllowEmpty

	removed, err := document.Remove(chunkType)
	switch {
	case errors.Is(err, png.ErrChunkNotFound):
		return cli.NotFound("no %s chunk in %s", chunkType, path)
	case errors.Is(err, png.ErrEmptyDocument):
		return cli.Validation("%s: %w (set document.allow_empty to permit)", path, err)
	case err != nil:
		return err
	}

	output := params.Output
	if output == "" {
		output = path
	}
	if err := pngfile.Save(output, document); err != nil {
		return err
	}
	logger.Info("removed chunk", "command", "remove", "file", output, "type", chunkType.String(), "bytes", removed.Length())

	_, err = fmt.Fprintf(stdout, "removed %s chunk (%d bytes) from %s\n", chunkType, removed.Length(), output)
	return err
}
