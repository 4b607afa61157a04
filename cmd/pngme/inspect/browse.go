// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/chunkui"
)

type browseParams struct {
	cli.GlobalParams
}

func browseCommand() *cli.Command {
	var params browseParams

	return &cli.Command{
		Name:    "browse",
		Summary: "Browse a PNG file's chunks interactively",
		Description: `Open a terminal UI listing the chunks of FILE, with a detail pane for
the selected chunk: decoded text, sealed message headers, or a hex
dump of opaque payloads.

Keys: j/k move, tab switches pane, / filters by fuzzy match on chunk
type and payload, ? shows all keys, q quits.`,
		Usage: "pngme browse FILE",
		Examples: []cli.Example{
			{
				Description: "Explore an image's metadata",
				Command:     "pngme browse photo.png",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			path, err := oneFile(args)
			if err != nil {
				return err
			}
			if _, err := params.Config(); err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return cli.Validation("browse needs a terminal; use info or list for piped output")
			}
			document, err := loadDocument(path)
			if err != nil {
				return err
			}
			logger.Debug("browsing document", "command", "browse", "file", path, "chunks", document.Len())

			program := tea.NewProgram(chunkui.NewModel(path, document), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = program.Run()
			return err
		},
	}
}
