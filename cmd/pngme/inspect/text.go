// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
)

type textParams struct {
	cli.GlobalParams
	cli.JSONOutput
}

func textCommand() *cli.Command {
	var params textParams

	return &cli.Command{
		Name:    "text",
		Summary: "Print tEXt, zTXt, and iTXt entries",
		Description: `Print the textual metadata of FILE in document order. Compressed text
is inflated. iTXt entries show their language tag and translated
keyword when present.`,
		Usage: "pngme text FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the author, title, and other text",
				Command:     "pngme text photo.png",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runText(ctx, &params, args, os.Stdout, logger)
		},
	}
}

func runText(_ context.Context, params *textParams, args []string, stdout io.Writer, logger *slog.Logger) error {
	path, err := oneFile(args)
	if err != nil {
		return err
	}
	cfg, err := params.Config()
	if err != nil {
		return err
	}
	document, err := loadDocument(path)
	if err != nil {
		return err
	}
	entries, err := document.TextEntries()
	if err != nil {
		return err
	}
	logger.Debug("read text entries", "command", "text", "file", path, "entries", len(entries))

	if done, err := params.EmitJSON(stdout, entries); done {
		return err
	}
	renderer, err := newRenderer(cfg, stdout)
	if err != nil {
		return err
	}
	return renderer.Text(stdout, entries)
}
