// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/config"
	"github.com/bureau-foundation/pngme/lib/png"
	"github.com/bureau-foundation/pngme/lib/pngfile"
	"github.com/bureau-foundation/pngme/lib/render"
)

// Commands returns the read-only inspection commands.
func Commands() []*cli.Command {
	return []*cli.Command{
		infoCommand(),
		listCommand(),
		textCommand(),
		verifyCommand(),
		diffCommand(),
		browseCommand(),
	}
}

// loadDocument reads and decodes path, mapping a missing file to a
// not-found error.
func loadDocument(path string) (*png.Document, error) {
	document, err := pngfile.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("%s: no such file", path)
	}
	return document, err
}

// newRenderer builds a renderer for w. Color is resolved against w
// when it is a file and treated as "not a terminal" otherwise.
func newRenderer(cfg *config.Config, w io.Writer) (*render.Renderer, error) {
	file, _ := w.(*os.File)
	color, err := render.ColorMode(cfg.Output.Color, file)
	if err != nil {
		return nil, err
	}
	return render.New(color, cfg.Output.PreviewWidth), nil
}

// oneFile checks that exactly one positional argument was given.
func oneFile(args []string) (string, error) {
	if len(args) == 0 {
		return "", cli.Validation("FILE argument required")
	}
	if len(args) > 1 {
		return "", cli.Validation("unexpected argument: %s", args[1])
	}
	return args[0], nil
}
