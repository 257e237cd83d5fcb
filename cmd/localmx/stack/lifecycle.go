// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/localmx/localmx/cmd/localmx/cli"
	"github.com/localmx/localmx/lib/compose"
	"github.com/localmx/localmx/lib/genconf"
)

// StartCommand returns the "start" command: regenerate configuration
// and bring the container set up, recreating changed containers and
// pruning orphans from since-disabled services.
func StartCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "start",
		Summary: "Regenerate configuration and bring the stack up",
		Description: `Render the compose manifest and every enabled config generator, then
bring the container set up, recreating containers whose configuration
changed and removing orphans. Unlike setup, no images are pulled.`,
		Usage: "localmx start [flags]",
		Flags: func() *pflag.FlagSet {
			return configFlag("start", &configPath)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := loadEnvironment(configPath, "start")
			if err != nil {
				return err
			}
			if err := env.regenerate(false); err != nil {
				return err
			}
			return env.rt.Up(context.Background())
		},
	}
}

// RestartCommand returns the "restart" command. Without arguments it
// behaves like start (the whole set is recreated); with a service name
// it restarts just that container, plus the reverse proxy when the
// service sits behind it.
func RestartCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "restart",
		Summary: "Restart the whole stack or a single service",
		Description: `With no arguments, regenerate configuration and recreate the whole
container set. With a service name, restart exactly that container;
services routed through the reverse proxy also get the proxy restarted
so routing follows the new container.`,
		Usage: "localmx restart [service] [flags]",
		Examples: []cli.Example{
			{
				Description: "Recreate the whole stack",
				Command:     "localmx restart",
			},
			{
				Description: "Restart just the homeserver (and the proxy in front of it)",
				Command:     "localmx restart synapse",
			},
		},
		Flags: func() *pflag.FlagSet {
			return configFlag("restart", &configPath)
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return cli.Validation("expected at most one service name, got %d arguments", len(args))
			}
			env, err := loadEnvironment(configPath, "restart")
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if err := env.regenerate(false); err != nil {
					return err
				}
				return env.rt.Up(context.Background())
			}

			service := args[0]
			manifest, err := compose.Build(*env.cfg, env.derived)
			if err != nil {
				return err
			}
			if !manifest.Services.Has(service) {
				return cli.NotFound("no service %q in this stack (services: %s)",
					service, strings.Join(manifest.Services.Names(), ", "))
			}

			targets := []string{service}
			if env.cfg.Nginx.Enabled && service != "nginx" &&
				slices.Contains(compose.FrontedBy(*env.cfg), service) {
				targets = append(targets, "nginx")
			}
			return env.rt.Restart(context.Background(), targets...)
		},
	}
}

// StopCommand returns the "stop" command: stop every container while
// preserving container state and volumes.
func StopCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "stop",
		Summary: "Stop the stack, keeping containers and volumes",
		Usage:   "localmx stop [flags]",
		Flags: func() *pflag.FlagSet {
			return configFlag("stop", &configPath)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := loadEnvironment(configPath, "stop")
			if err != nil {
				return err
			}
			return env.rt.Stop(context.Background())
		},
	}
}

// PullCommand returns the "pull" command: refresh every referenced
// image.
func PullCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "pull",
		Summary: "Pull current images for every service in the stack",
		Usage:   "localmx pull [flags]",
		Flags: func() *pflag.FlagSet {
			return configFlag("pull", &configPath)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := loadEnvironment(configPath, "pull")
			if err != nil {
				return err
			}
			// Pull needs the manifest on disk; generate it if this is
			// a fresh checkout.
			if err := ensureComposeFile(env); err != nil {
				return err
			}
			return env.rt.Pull(context.Background())
		},
	}
}

// ensureComposeFile generates the compose manifest when it does not
// exist yet. Existing manifests are left alone, stale or not.
func ensureComposeFile(env *environment) error {
	if _, err := os.Stat(env.cfg.ComposeFilePath()); err == nil {
		return nil
	}
	if err := (genconf.ComposeGenerator{}).Generate(env.genContext(false)); err != nil {
		return fmt.Errorf("generate compose manifest: %w", err)
	}
	return nil
}
