// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"fmt"

	"github.com/localmx/localmx/lib/compose"
	"github.com/localmx/localmx/lib/config"
)

// ComposeGenerator renders the compose manifest from the environment
// configuration. It runs first in every generation pass: the other
// generators write files the manifest bind-mounts.
type ComposeGenerator struct{}

func (ComposeGenerator) Name() string { return "compose" }

func (ComposeGenerator) Outputs(cfg *config.Config) []string {
	return []string{cfg.ComposeFilePath()}
}

func (ComposeGenerator) Generate(ctx *Context) error {
	manifest, err := compose.Build(*ctx.Config, ctx.Secrets)
	if err != nil {
		return err
	}
	body, err := manifest.Render()
	if err != nil {
		return fmt.Errorf("render compose manifest: %w", err)
	}
	return WriteManaged(ctx.Config.ComposeFilePath(), body)
}
