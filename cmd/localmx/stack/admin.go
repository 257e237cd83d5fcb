// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/localmx/localmx/cmd/localmx/cli"
)

// AdminCommand returns the "admin" command: register an admin user on
// the running homeserver using the registration shared secret.
func AdminCommand() *cli.Command {
	var (
		configPath string
		user       string
		password   string
	)

	return &cli.Command{
		Name:    "admin",
		Summary: "Register an admin user on the running homeserver",
		Description: `Create a homeserver admin account by running Synapse's own
register_new_matrix_user inside the synapse container, authenticated
with the stack's registration shared secret. The stack must be up.

Not available when MAS is enabled; MAS owns registration then.`,
		Usage: "localmx admin [flags]",
		Examples: []cli.Example{
			{
				Description: "Create the default admin account",
				Command:     "localmx admin --password hunter2",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := configFlag("admin", &configPath)
			flagSet.StringVarP(&user, "user", "u", "admin", "localpart of the account to create")
			flagSet.StringVarP(&password, "password", "p", "", "password for the account (required)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if password == "" {
				return cli.Validation("--password is required")
			}
			env, err := loadEnvironment(configPath, "admin")
			if err != nil {
				return err
			}
			if env.cfg.MAS.Enabled {
				return cli.Conflict("registration is delegated to MAS; create accounts there instead")
			}
			return env.rt.Exec(context.Background(), "synapse",
				"register_new_matrix_user",
				"--user", user,
				"--password", password,
				"--admin",
				"-c", "/data/homeserver.yaml",
				"http://localhost:8008",
			)
		},
	}
}
