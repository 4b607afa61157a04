// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the pngme command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/pngme/cmd/pngme/cli"
	"github.com/bureau-foundation/pngme/cmd/pngme/inspect"
	"github.com/bureau-foundation/pngme/cmd/pngme/message"
	"github.com/bureau-foundation/pngme/lib/version"
)

// Root builds and returns the complete pngme command tree.
func Root() *cli.Command {
	var subcommands []*cli.Command
	subcommands = append(subcommands, inspect.Commands()...)
	subcommands = append(subcommands, message.Commands()...)
	subcommands = append(subcommands, versionCommand())

	return &cli.Command{
		Name: "pngme",
		Description: `pngme: hide messages in PNG files.

Inspect the chunks of a PNG file, store a message in a chunk of its
own, and read it back. Messages can be compressed and encrypted to age
recipients. Image data is never touched.`,
		Subcommands: subcommands,
		Examples: []cli.Example{
			{
				Description: "Look inside an image",
				Command:     "pngme info photo.png",
			},
			{
				Description: "Hide a message and read it back",
				Command:     `pngme encode photo.png "meet at noon" && pngme decode photo.png`,
			},
			{
				Description: "Check an image is well formed",
				Command:     "pngme verify photo.png",
			},
		},
	}
}

type versionParams struct {
	cli.GlobalParams
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			return runVersion(&params, args, os.Stdout)
		},
	}
}

func runVersion(params *versionParams, args []string, stdout io.Writer) error {
	if len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}
	if done, err := params.EmitJSON(stdout, version.Current()); done {
		return err
	}
	_, err := fmt.Fprintf(stdout, "pngme %s\n", version.Full())
	return err
}
