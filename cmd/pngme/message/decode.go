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
	"github.com/bureau-foundation/pngme/lib/envelope"
)

type decodeParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Type         string `json:"-" flag:"type,t" desc:"chunk type to read (default: message.chunk_type)"`
	IdentityFile string `json:"-" flag:"identity-file,i" desc:"age identity file for encrypted messages (default: message.identity_file)"`
	All          bool   `json:"-" flag:"all,a" desc:"print every matching chunk, not just the first"`
}

// decodedMessage is the JSON form of one decoded chunk.
type decodedMessage struct {
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	Sealed      bool   `json:"sealed"`
	Compression string `json:"compression,omitempty"`
	Encrypted   bool   `json:"encrypted,omitempty"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Print a message hidden in a PNG file",
		Description: `Print the message stored in the first chunk of the given type. Sealed
messages are decompressed, and decrypted with the identities in
--identity-file when encrypted. Chunks holding plain bytes are printed
as they are, unless they begin with the sealed-message marker
(a NUL byte then "PME"); those are read as sealed messages.`,
		Usage: "pngme decode FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Read the default message chunk",
				Command:     "pngme decode photo.png",
			},
			{
				Description: "Read an encrypted message",
				Command:     "pngme decode secret.png -i ~/.config/pngme/identity.txt",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runDecode(ctx, &params, args, os.Stdout, logger)
		},
	}
}

func runDecode(_ context.Context, params *decodeParams, args []string, stdout io.Writer, logger *slog.Logger) error {
	if len(args) != 1 {
		return cli.Validation("decode takes exactly one FILE, got %d arguments", len(args))
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
	identityFile := params.IdentityFile
	if identityFile == "" {
		identityFile = cfg.Message.IdentityFile
	}
	identities, err := readIdentities(identityFile)
	if err != nil {
		return err
	}
	document, err := loadDocument(path)
	if err != nil {
		return err
	}
	logger = logger.With("command", "decode", "file", path, "type", chunkType.String())

	var messages []decodedMessage
	for index, chunk := range document.Chunks() {
		if chunk.Type() != chunkType {
			continue
		}
		payload := chunk.Data()
		decoded := decodedMessage{Index: index, Type: chunkType.String()}
		if envelope.IsSealed(payload) {
			header, _, err := envelope.ReadHeader(payload)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", index, err)
			}
			decoded.Sealed = true
			decoded.Compression = header.Compression.String()
			decoded.Encrypted = header.Encrypted
		}
		message, err := envelope.Open(payload, identities)
		if errors.Is(err, envelope.ErrIdentityRequired) {
			return cli.Validation("chunk %d is encrypted: pass --identity-file or set message.identity_file", index)
		}
		if err != nil {
			return fmt.Errorf("chunk %d: %w", index, err)
		}
		decoded.Message = string(message)
		logger.Debug("decoded message", "index", index, "sealed", decoded.Sealed, "bytes", len(message))

		messages = append(messages, decoded)
		if !params.All {
			break
		}
	}
	if len(messages) == 0 {
		return cli.NotFound("no %s chunk in %s", chunkType, path)
	}

	if done, err := params.EmitJSON(stdout, messages); done {
		return err
	}
	for _, decoded := range messages {
		if _, err := fmt.Fprintln(stdout, decoded.Message); err != nil {
			return err
		}
	}
	return nil
}
