// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"fmt"
	"strings"

	"github.com/localmx/localmx/lib/config"
)

// enabled reports whether a generator applies to the configuration.
func enabled(gen Generator, cfg *config.Config) bool {
	switch gen.(type) {
	case ElementGenerator:
		return cfg.ElementWeb.Enabled
	case MASGenerator:
		return cfg.MAS.Enabled
	case HookshotGenerator:
		return cfg.Hookshot.Enabled
	case NginxGenerator:
		return cfg.Nginx.Enabled
	default:
		return true
	}
}

// everything lists all generators in generation order. Compose runs
// first so a failed cross-service validation stops the pass before
// any service config is touched; Synapse second because the other
// configs reference values its generation does not change.
func everything() []Generator {
	return []Generator{
		ComposeGenerator{},
		SynapseGenerator{},
		ElementGenerator{},
		MASGenerator{},
		HookshotGenerator{},
		NginxGenerator{},
	}
}

// All returns the generators applicable to the configuration, in
// generation order.
func All(cfg *config.Config) []Generator {
	var gens []Generator
	for _, gen := range everything() {
		if enabled(gen, cfg) {
			gens = append(gens, gen)
		}
	}
	return gens
}

// ForName resolves a generator by its command-line name. Disabled
// services and unknown names get distinct errors so the operator
// knows whether to fix the config or the spelling.
func ForName(cfg *config.Config, name string) (Generator, error) {
	for _, gen := range everything() {
		if gen.Name() != name {
			continue
		}
		if !enabled(gen, cfg) {
			return nil, fmt.Errorf("service %q is not enabled in the configuration", name)
		}
		return gen, nil
	}
	var names []string
	for _, gen := range everything() {
		names = append(names, gen.Name())
	}
	return nil, fmt.Errorf("unknown service %q (available: %s)", name, strings.Join(names, ", "))
}
