// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/localmx/localmx/cmd/localmx/cli"
)

// SetupCommand returns the "setup" command: generate everything, pull
// images, bring the stack up.
func SetupCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "setup",
		Summary: "Generate all configuration, pull images, and start the stack",
		Description: `Bootstrap the stack from scratch: render the compose manifest, run
every enabled service's config generator, pull the referenced images,
and bring the container set up.

Safe to re-run. Existing generated files trigger a confirmation prompt
before being replaced; declining keeps the current file and continues
with the rest of the setup.`,
		Usage: "localmx setup [flags]",
		Examples: []cli.Example{
			{
				Description: "Bootstrap with the default configuration",
				Command:     "localmx setup",
			},
			{
				Description: "Bootstrap from a specific config file",
				Command:     "localmx setup --config ./staging.conf",
			},
		},
		Flags: func() *pflag.FlagSet {
			return configFlag("setup", &configPath)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := loadEnvironment(configPath, "setup")
			if err != nil {
				return err
			}
			if err := env.regenerate(false); err != nil {
				return err
			}
			if err := env.rt.Pull(context.Background()); err != nil {
				return err
			}
			if err := env.rt.Up(context.Background()); err != nil {
				return err
			}
			fmt.Printf("Stack %q is up. Run \"localmx links\" for service URLs.\n", env.cfg.ProjectName)
			return nil
		},
	}
}
