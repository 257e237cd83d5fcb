// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

// Package stack implements the lifecycle commands: setup, start,
// restart, stop, delete, pull, gen, and links. Every mutating command
// follows the same shape: load the environment configuration, derive
// secrets, regenerate whatever configuration the action needs, then
// delegate to the container runtime.
package stack

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/localmx/localmx/cmd/localmx/cli"
	"github.com/localmx/localmx/lib/config"
	"github.com/localmx/localmx/lib/genconf"
	"github.com/localmx/localmx/lib/runtime"
	"github.com/localmx/localmx/lib/secrets"
)

// defaultConfigPath is where commands look for the environment
// configuration unless --config overrides it. A missing file is fine;
// the defaults describe a working stack.
const defaultConfigPath = "localmx.conf"

// environment bundles everything a lifecycle command operates on.
type environment struct {
	cfg     *config.Config
	derived secrets.Secrets
	rt      *runtime.Runtime
	logger  *slog.Logger
}

// loadEnvironment loads and validates the configuration at path and
// wires up the runtime. Validation and the prerequisite sweep run
// here so every command fails on an incompatible feature combination
// or a missing runtime binary before touching any file.
func loadEnvironment(path, command string) (*environment, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("%v", err)
	}
	if err := runtime.Preflight(&cfg); err != nil {
		return nil, err
	}
	derived, err := secrets.Derive(cfg.SecretSeed)
	if err != nil {
		return nil, err
	}
	logger := cli.NewCommandLogger().With("command", command)
	return &environment{
		cfg:     &cfg,
		derived: derived,
		rt:      runtime.New(&cfg, logger),
		logger:  logger,
	}, nil
}

// genContext builds the generation context for this environment.
func (e *environment) genContext(force bool) *genconf.Context {
	return &genconf.Context{
		Ctx:     context.Background(),
		Config:  e.cfg,
		Secrets: e.derived,
		Runner:  e.rt,
		Logger:  e.logger,
		Confirm: cli.NewPrompter(),
		Force:   force,
	}
}

// regenerate runs every enabled generator under the overwrite
// protocol, then normalizes bind mount ownership for the directories
// the homeserver and bridge write to. FixOwnership only acts under
// rootless podman; Docker containers run the chown themselves as
// in-container root.
func (e *environment) regenerate(force bool) error {
	if err := genconf.RunAll(e.genContext(force), genconf.All(e.cfg)...); err != nil {
		return err
	}
	dirs := []string{e.cfg.SynapseDataDir()}
	if e.cfg.Hookshot.Enabled {
		dirs = append(dirs, e.cfg.HookshotDataDir())
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := e.rt.FixOwnership(context.Background(), dir, e.cfg.ContainerUID); err != nil {
			return cli.Internal("fix ownership of %s: %w", dir, err)
		}
	}
	return nil
}

// configFlag returns a flag set with the shared --config flag bound to
// target.
func configFlag(command string, target *string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(command, pflag.ContinueOnError)
	flagSet.StringVarP(target, "config", "c", defaultConfigPath, "path to the environment configuration file")
	return flagSet
}
