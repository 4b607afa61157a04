// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/chunkhash"
	"github.com/bureau-foundation/pngme/lib/png"
)

type infoParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Raw bool `json:"-" flag:"raw" desc:"print every chunk in full, unstyled"`
}

// infoResult is the JSON form of info.
type infoResult struct {
	File       string           `json:"file"`
	Chunks     int              `json:"chunks"`
	Bytes      int              `json:"bytes"`
	Digest     chunkhash.Hash   `json:"digest"`
	Header     *png.ImageHeader `json:"header,omitempty"`
	HeaderErr  string           `json:"header_error,omitempty"`
	ChunkTypes []png.ChunkType  `json:"chunk_types"`
}

func infoCommand() *cli.Command {
	var params infoParams

	return &cli.Command{
		Name:    "info",
		Summary: "Summarize a PNG file's chunks",
		Description: `Decode FILE and print a summary: total size, image dimensions from the
IHDR chunk, and one line per chunk with a preview of its payload.

--raw prints each chunk's type, length, data, and CRC in full.`,
		Usage: "pngme info FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Summarize an image",
				Command:     "pngme info photo.png",
			},
			{
				Description: "Machine-readable summary",
				Command:     "pngme info photo.png --json",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runInfo(ctx, &params, args, os.Stdout, logger)
		},
	}
}

func runInfo(_ context.Context, params *infoParams, args []string, stdout io.Writer, logger *slog.Logger) error {
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
	logger.Debug("decoded document", "command", "info", "file", path, "chunks", document.Len())

	result := infoResult{
		File:   path,
		Chunks: document.Len(),
		Bytes:  document.EncodedLength(),
		Digest: chunkhash.HashDocument(document),
	}
	if header, err := document.Header(); err == nil {
		result.Header = header
	} else {
		result.HeaderErr = err.Error()
	}
	for _, chunk := range document.Chunks() {
		result.ChunkTypes = append(result.ChunkTypes, chunk.Type())
	}
	if done, err := params.EmitJSON(stdout, result); done {
		return err
	}

	if params.Raw {
		_, err := fmt.Fprint(stdout, document.String())
		return err
	}
	renderer, err := newRenderer(cfg, stdout)
	if err != nil {
		return err
	}
	return renderer.Document(stdout, document)
}
