// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/localmx/localmx/cmd/localmx/cli"
)

// DeleteCommand returns the "delete" command: tear down containers and
// volumes and remove every generated file. Destruction is gated on the
// operator typing the exact confirmation phrase; anything else aborts
// with no side effects.
func DeleteCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "delete",
		Summary: "Destroy the stack: containers, volumes, and generated files",
		Description: `Remove the whole stack: stop and delete every container, remove the
named volumes (including the database), and delete the generated data
directory. All service state is lost.

The command asks for a typed confirmation phrase first. Any answer
other than the exact phrase aborts without touching anything.`,
		Usage: "localmx delete [flags]",
		Flags: func() *pflag.FlagSet {
			return configFlag("delete", &configPath)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := loadEnvironment(configPath, "delete")
			if err != nil {
				return err
			}

			phrase := "delete " + env.cfg.ProjectName
			confirmed, err := cli.NewPrompter().ConfirmPhrase(
				fmt.Sprintf("This destroys stack %q: all containers, volumes, and generated files.", env.cfg.ProjectName),
				phrase)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(os.Stderr, "Aborted. Nothing was changed.")
				return nil
			}

			// Teardown needs a manifest to know what to remove.
			if err := ensureComposeFile(env); err != nil {
				return err
			}
			if err := env.rt.Down(context.Background(), true); err != nil {
				return err
			}
			if err := os.RemoveAll(env.cfg.DataDir); err != nil {
				return cli.Internal("remove %s: %w", env.cfg.DataDir, err)
			}
			fmt.Printf("Stack %q deleted.\n", env.cfg.ProjectName)
			return nil
		},
	}
}
