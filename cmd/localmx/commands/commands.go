// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete localmx CLI command tree.
package commands

import (
	"fmt"

	"github.com/localmx/localmx/cmd/localmx/cli"
	doctorcmd "github.com/localmx/localmx/cmd/localmx/doctor"
	"github.com/localmx/localmx/cmd/localmx/stack"
	"github.com/localmx/localmx/lib/version"
)

// Root builds and returns the complete localmx CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "localmx",
		Description: `localmx: a throwaway local Matrix test stack.

Bootstrap a Synapse homeserver with Postgres, Element Web, and optional
companion services (MAS, Hookshot, Adminer, Mailhog, Synapse-Admin)
behind an Nginx reverse proxy, all on Docker or Podman Compose.
Everything is generated, nothing is production-grade.`,
		Subcommands: []*cli.Command{
			stack.SetupCommand(),
			stack.StartCommand(),
			stack.RestartCommand(),
			stack.StopCommand(),
			stack.DeleteCommand(),
			stack.PullCommand(),
			stack.GenCommand(),
			stack.AdminCommand(),
			stack.LinksCommand(),
			doctorcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ []string) error {
					fmt.Printf("localmx %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
