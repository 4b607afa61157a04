// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/chunkhash"
	"github.com/bureau-foundation/pngme/lib/png"
)

type verifyParams struct {
	cli.GlobalParams
	cli.JSONOutput
}

// verifyResult is the JSON form of verify.
type verifyResult struct {
	File   string          `json:"file"`
	Valid  bool            `json:"valid"`
	Stage  string          `json:"stage,omitempty"`
	Error  string          `json:"error,omitempty"`
	Index  *int            `json:"index,omitempty"`
	Chunks int             `json:"chunks,omitempty"`
	Digest *chunkhash.Hash `json:"digest,omitempty"`
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check a PNG file's checksums, payloads, and chunk order",
		Description: `Verify FILE in two stages:

  1. decode: signature, chunk framing, every CRC, and every recognized
     chunk payload
  2. placement: IHDR first, IEND last, PLTE and IDAT ordering, and
     singleton chunks appear once

Prints "ok" and the document digest on success. Exits 1 after
reporting the first failure.`,
		Usage: "pngme verify FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Check an image before publishing it",
				Command:     "pngme verify photo.png",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runVerify(ctx, &params, args, os.Stdout, logger)
		},
	}
}

func runVerify(_ context.Context, params *verifyParams, args []string, stdout io.Writer, logger *slog.Logger) error {
	path, err := oneFile(args)
	if err != nil {
		return err
	}
	if _, err := params.Config(); err != nil {
		return err
	}
	logger = logger.With("command", "verify", "file", path)

	result, err := verify(path)
	if err != nil {
		return err
	}
	logger.Debug("verified document", "valid", result.Valid, "stage", result.Stage)

	if done, err := params.EmitJSON(stdout, result); done {
		if err != nil {
			return err
		}
		if !result.Valid {
			return &cli.ExitError{Code: 1}
		}
		return nil
	}

	if result.Valid {
		_, err := fmt.Fprintf(stdout, "ok: %d chunks, digest %s\n", result.Chunks, chunkhash.Short(*result.Digest))
		return err
	}
	if _, err := fmt.Fprintf(stdout, "FAIL %s: %s\n", result.Stage, result.Error); err != nil {
		return err
	}
	return &cli.ExitError{Code: 1}
}

// verify runs both stages against path. The error return is for
// failures to read the file at all; a file that reads but fails a
// stage is reported in the result.
func verify(path string) (verifyResult, error) {
	result := verifyResult{File: path}

	document, err := loadDocument(path)
	if err != nil {
		var chunkError *png.ChunkError
		switch {
		case errors.As(err, &chunkError):
			result.Index = &chunkError.Index
		case errors.Is(err, png.ErrInvalidSignature):
		default:
			return result, err
		}
		result.Stage, result.Error = "decode", err.Error()
		return result, nil
	}
	result.Chunks = document.Len()

	if err := document.Validate(); err != nil {
		result.Stage, result.Error = "placement", err.Error()
		var placementError *png.PlacementError
		if errors.As(err, &placementError) && placementError.Index >= 0 {
			result.Index = &placementError.Index
		}
		return result, nil
	}

	digest := chunkhash.HashDocument(document)
	result.Valid = true
	result.Digest = &digest
	return result, nil
}
