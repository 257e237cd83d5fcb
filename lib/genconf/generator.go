// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/localmx/localmx/lib/config"
	"github.com/localmx/localmx/lib/secrets"
)

// Confirmer asks the operator before files they may have touched are
// overwritten. *cli.Prompter satisfies it; tests supply canned answers.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// OneShotRunner starts a throwaway container that runs to completion,
// used for service images that emit their own default configuration
// ("generate" mode). Binds are host:container mount specs.
type OneShotRunner interface {
	RunOneShot(ctx context.Context, image string, env map[string]string, binds []string, args ...string) error
}

// Context carries everything a generator needs. One Context serves a
// whole generation pass; generators never mutate it.
type Context struct {
	Ctx     context.Context
	Config  *config.Config
	Secrets secrets.Secrets
	Runner  OneShotRunner
	Logger  *slog.Logger
	Confirm Confirmer

	// Force skips overwrite confirmation. Set by the gen command's
	// --force flag and by first-time setup where nothing exists yet.
	Force bool
}

// Generator produces the on-disk configuration for one service.
type Generator interface {
	// Name is the argument to "localmx gen <name>".
	Name() string

	// Outputs lists every file the generator owns. Run checks these
	// for the overwrite prompt and deletes them before regeneration.
	Outputs(cfg *config.Config) []string

	// Generate writes fresh output files. Prior outputs are already
	// removed when this runs.
	Generate(ctx *Context) error
}

// Run executes one generator under the overwrite protocol: existing
// outputs trigger a confirmation prompt (unless forced), a declined
// prompt skips this generator and leaves its files byte-for-byte
// untouched, and a confirmed run deletes prior outputs before
// generating. Returns whether the generator actually ran.
func Run(ctx *Context, gen Generator) (bool, error) {
	var existing []string
	edited := false
	for _, path := range gen.Outputs(ctx.Config) {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("inspect %s: %w", path, err)
		}
		existing = append(existing, path)
		if !IsManaged(data) || HandEdited(data) {
			edited = true
		}
	}

	if len(existing) > 0 && !ctx.Force {
		question := fmt.Sprintf("Configuration for %s already exists. Regenerate it?", gen.Name())
		if edited {
			question = fmt.Sprintf("Configuration for %s exists and has local edits. Regenerate and discard them?", gen.Name())
		}
		ok, err := ctx.Confirm.Confirm(question)
		if err != nil {
			return false, err
		}
		if !ok {
			ctx.Logger.Info("keeping existing configuration", "service", gen.Name())
			return false, nil
		}
	}

	for _, path := range existing {
		if err := os.Remove(path); err != nil {
			return false, fmt.Errorf("remove stale %s: %w", path, err)
		}
	}

	ctx.Logger.Info("generating configuration", "service", gen.Name())
	if err := gen.Generate(ctx); err != nil {
		return false, fmt.Errorf("generate %s configuration: %w", gen.Name(), err)
	}
	return true, nil
}

// RunAll runs every generator in order. A declined overwrite skips
// only that generator; a generation error stops the pass.
func RunAll(ctx *Context, gens ...Generator) error {
	for _, gen := range gens {
		if _, err := Run(ctx, gen); err != nil {
			return err
		}
	}
	return nil
}
