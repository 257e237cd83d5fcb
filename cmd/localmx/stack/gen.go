// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"github.com/spf13/pflag"

	"github.com/localmx/localmx/cmd/localmx/cli"
	"github.com/localmx/localmx/lib/genconf"
)

// GenCommand returns the "gen" command: regenerate one service's
// configuration files.
func GenCommand() *cli.Command {
	var (
		configPath string
		force      bool
	)

	return &cli.Command{
		Name:    "gen",
		Summary: "Regenerate one service's configuration files",
		Description: `Rerun a single config generator. Existing files trigger a
confirmation prompt unless --force is given; declining leaves them
byte-for-byte untouched.

Services: compose, synapse, element, mas, hookshot, nginx.`,
		Usage: "localmx gen <service> [flags]",
		Examples: []cli.Example{
			{
				Description: "Regenerate the homeserver configuration",
				Command:     "localmx gen synapse",
			},
			{
				Description: "Rewrite the compose manifest without prompting",
				Command:     "localmx gen compose --force",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := configFlag("gen", &configPath)
			flagSet.BoolVar(&force, "force", false, "overwrite existing files without prompting")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one service name\n\nUsage: localmx gen <service> [flags]")
			}
			env, err := loadEnvironment(configPath, "gen")
			if err != nil {
				return err
			}
			gen, err := genconf.ForName(env.cfg, args[0])
			if err != nil {
				return cli.NotFound("%v", err)
			}
			_, err = genconf.Run(env.genContext(force), gen)
			return err
		},
	}
}
