// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/lib/envelope"
)

type keygenParams struct {
	cli.GlobalParams
	cli.JSONOutput
	Output string `json:"-" flag:"output,o" desc:"write the identity to this new file (mode 0600) instead of stdout"`
}

// keygenResult is the JSON form of keygen. Identity is set only when
// the identity is printed rather than written to a file.
type keygenResult struct {
	Recipient    string `json:"recipient"`
	Identity     string `json:"identity,omitempty"`
	IdentityFile string `json:"identity_file,omitempty"`
}

func keygenCommand() *cli.Command {
	var params keygenParams

	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an age identity for encrypted messages",
		Description: `Generate a new age X25519 identity. The public key (age1...) goes in
--recipient or message.recipients of whoever encrypts to you; the
identity file stays private and is passed to decode.

--output refuses to overwrite an existing file.`,
		Usage: "pngme keygen [flags]",
		Examples: []cli.Example{
			{
				Description: "Create an identity file",
				Command:     "pngme keygen -o ~/.config/pngme/identity.txt",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runKeygen(ctx, &params, args, os.Stdout, logger)
		},
	}
}

func runKeygen(_ context.Context, params *keygenParams, args []string, stdout io.Writer, logger *slog.Logger) error {
	if len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}
	keypair, err := envelope.GenerateKeypair()
	if err != nil {
		return err
	}
	contents := fmt.Sprintf("# created: %s\n# public key: %s\n%s\n",
		time.Now().UTC().Format(time.RFC3339), keypair.Recipient, keypair.Identity)

	result := keygenResult{Recipient: keypair.Recipient}
	if params.Output == "" {
		result.Identity = keypair.Identity
		if done, err := params.EmitJSON(stdout, result); done {
			return err
		}
		_, err := io.WriteString(stdout, contents)
		return err
	}

	if err := writeIdentityFile(params.Output, contents); err != nil {
		return err
	}
	result.IdentityFile = params.Output
	logger.Info("wrote identity file", "command", "keygen", "file", params.Output, "recipient", keypair.Recipient)

	if done, err := params.EmitJSON(stdout, result); done {
		return err
	}
	_, err = fmt.Fprintf(stdout, "Public key: %s\n", keypair.Recipient)
	return err
}

// writeIdentityFile creates path with owner-only permissions. An
// existing file is never replaced.
func writeIdentityFile(path, contents string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, fs.ErrExist) {
		return cli.Validation("%s already exists", path)
	}
	if err != nil {
		return fmt.Errorf("creating identity file: %w", err)
	}
	if _, err := file.WriteString(contents); err != nil {
		file.Close()
		return fmt.Errorf("writing identity file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("syncing identity file: %w", err)
	}
	return file.Close()
}
