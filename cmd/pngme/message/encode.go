// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/envelope"
	"github.com/bureau-foundation/pngme/lib/png"
	"github.com/bureau-foundation/pngme/lib/pngfile"
)

type encodeParams struct {
	cli.GlobalParams
	Type        string   `json:"-" flag:"type,t" desc:"chunk type to store the message under (default: message.chunk_type)"`
	Compression string   `json:"-" flag:"compression,c" desc:"none, lz4, zstd, or auto (default: message.compression)"`
	Recipients  []string `json:"-" flag:"recipient,r" desc:"age public key to encrypt to, repeatable"`
	Output      string   `json:"-" flag:"output,o" desc:"write the result here instead of overwriting FILE"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Hide a message in a PNG file",
		Description: `Store MESSAGE in a new chunk inserted just before IEND and write the
file back in place (or to --output).

With compression none and no recipients the chunk holds the message
bytes as-is, readable by any tool. Otherwise the message is sealed:
compressed, then encrypted with age to every recipient given by
--recipient or message.recipients in the config.

The chunk type should be ancillary (lower-case first letter) so that
image viewers skip it. Known types such as tEXt must carry a valid
payload of that type.`,
		Usage: "pngme encode FILE MESSAGE [flags]",
		Examples: []cli.Example{
			{
				Description: "Hide a plain message",
				Command:     `pngme encode photo.png "meet at noon"`,
			},
			{
				Description: "Encrypt to a friend and keep the original intact",
				Command:     `pngme encode photo.png "meet at noon" -r age1... -o secret.png`,
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runEncode(ctx, &params, args, os.Stdout, logger)
		},
	}
}

func runEncode(_ context.Context, params *encodeParams, args []string, stdout io.Writer, logger *slog.Logger) error {
	if len(args) != 2 {
		return cli.Validation("encode takes FILE and MESSAGE, got %d arguments", len(args))
	}
	path, message := args[0], args[1]

	cfg, err := params.Config()
	if err != nil {
		return err
	}
	chunkType, err := resolveChunkType(params.Type, cfg)
	if err != nil {
		return err
	}
	if !chunkType.IsValid() {
		return cli.Validation("chunk type %s: third letter must be upper-case", chunkType)
	}

	compressionName := params.Compression
	if compressionName == "" {
		compressionName = cfg.Message.Compression
	}
	compression, err := envelope.ParseCompression(compressionName)
	if err != nil {
		return cli.Validation("%w", err)
	}
	recipients, err := envelope.ParseRecipients(slices.Concat(cfg.Message.Recipients, params.Recipients))
	if err != nil {
		return cli.Validation("%w", err)
	}

	document, err := loadDocument(path)
	if err != nil {
		return err
	}

	payload := []byte(message)
	// A plain message that begins with the envelope magic would read
	// back as a malformed sealed one, so it is sealed as-is instead.
	sealed := compression != envelope.CompressionNone || len(recipients) > 0 || envelope.IsSealed(payload)
	if sealed {
		payload, err = envelope.Seal(payload, envelope.Options{Compression: compression, Recipients: recipients})
		if err != nil {
			return fmt.Errorf("sealing message: %w", err)
		}
	}
	if _, err := png.DecodePayload(chunkType, payload); err != nil {
		return cli.Validation("message is not a valid %s payload: %w", chunkType, err)
	}

	logger = logger.With("command", "encode", "type", chunkType.String())
	if chunkType.IsCritical() {
		logger.Warn("storing a message in a critical chunk; decoders that do not know the type will reject the image")
	}

	document.InsertBeforeEnd(png.NewChunk(chunkType, payload))
	output := params.Output
	if output == "" {
		output = path
	}
	if err := pngfile.Save(output, document); err != nil {
		return err
	}
	logger.Info("encoded message", "file", output, "bytes", len(payload), "sealed", sealed, "encrypted", len(recipients) > 0)

	_, err = fmt.Fprintf(stdout, "encoded %d bytes as %s in %s\n", len(payload), chunkType, output)
	return err
}
