// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"errors"
	"io/fs"
	"os"

	"filippo.io/age"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/config"
	"github.com/bureau-foundation/pngme/lib/envelope"
	"github.com/bureau-foundation/pngme/lib/png"
	"github.com/bureau-foundation/pngme/lib/pngfile"
)

// Commands returns the commands that hide, reveal, and strip messages.
func Commands() []*cli.Command {
	return []*cli.Command{
		encodeCommand(),
		decodeCommand(),
		removeCommand(),
		keygenCommand(),
	}
}

func loadDocument(path string) (*png.Document, error) {
	document, err := pngfile.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("%s: no such file", path)
	}
	return document, err
}

// resolveChunkType returns the chunk type named by flag, or the
// configured message.chunk_type when flag is empty.
func resolveChunkType(flag string, cfg *config.Config) (png.ChunkType, error) {
	name := flag
	if name == "" {
		name = cfg.Message.ChunkType
	}
	chunkType, err := png.ChunkTypeFromString(name)
	if err != nil {
		return png.ChunkType{}, cli.Validation("chunk type %q: %w", name, err)
	}
	return chunkType, nil
}

// readIdentities parses the age identity file at path. An empty path
// yields no identities.
func readIdentities(path string) ([]age.Identity, error) {
	if path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("identity file %s: no such file", path)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	identities, err := envelope.ParseIdentities(file)
	if err != nil {
		return nil, cli.Validation("identity file %s: %w", path, err)
	}
	return identities, nil
}
