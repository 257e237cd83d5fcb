// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor implements the "localmx doctor" command: preflight
// checks for everything the lifecycle commands assume. All checks run
// and all failures print before the command exits, so a broken machine
// is diagnosed in one pass instead of one error at a time.
package doctor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/pflag"

	"github.com/localmx/localmx/cmd/localmx/cli"
	"github.com/localmx/localmx/lib/config"
	"github.com/localmx/localmx/lib/genconf"
	"github.com/localmx/localmx/lib/runtime"
)

// result is one completed check.
type result struct {
	name    string
	ok      bool
	warning bool
	detail  string
}

// commandParams holds the doctor command's flags.
type commandParams struct {
	Config string `flag:"config,c" desc:"path to the environment configuration file" default:"localmx.conf"`
}

// Command returns the "doctor" command.
func Command() *cli.Command {
	var params commandParams

	return &cli.Command{
		Name:    "doctor",
		Summary: "Check prerequisites and the health of generated files",
		Description: `Verify that the container runtime is installed, the configuration is
valid, and the generated files on disk are in the expected state.
Exits non-zero when any check fails; warnings (like a stack that has
not been set up yet) do not affect the exit code.`,
		Usage: "localmx doctor [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("doctor", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			results := runChecks(params.Config)
			failed := false
			for _, r := range results {
				switch {
				case r.ok:
					fmt.Printf("  ok   %-24s %s\n", r.name, r.detail)
				case r.warning:
					fmt.Printf("  warn %-24s %s\n", r.name, r.detail)
				default:
					failed = true
					fmt.Printf("  FAIL %-24s %s\n", r.name, r.detail)
				}
			}
			if failed {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func runChecks(configPath string) []result {
	var results []result

	cfg, err := config.Load(configPath)
	if err != nil {
		results = append(results, result{name: "configuration", detail: err.Error()})
		// Later checks need a runtime name; fall back to defaults.
		cfg = config.Default()
	} else if err := cfg.Validate(); err != nil {
		results = append(results, result{name: "configuration", detail: err.Error()})
	} else {
		detail := fmt.Sprintf("%s (runtime %s)", configPath, cfg.Runtime)
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			detail = "no config file, built-in defaults in effect"
		}
		results = append(results, result{name: "configuration", ok: true, detail: detail})
	}

	// Prerequisite binaries. Every missing program is reported; the
	// operator fixes them all in one round.
	for _, binary := range runtime.Prerequisites(&cfg) {
		if path, err := exec.LookPath(binary); err != nil {
			results = append(results, result{
				name:   binary,
				detail: "not found on PATH",
			})
		} else {
			results = append(results, result{name: binary, ok: true, detail: path})
		}
	}

	results = append(results, checkGeneratedFiles(&cfg)...)
	return results
}

// checkGeneratedFiles reports on the state of the generated tree: not
// yet generated is a warning, hand-edited managed files are warnings
// too (the overwrite prompt will catch them), an unmanaged file at a
// managed path is a failure because the tooling refuses to own it.
func checkGeneratedFiles(cfg *config.Config) []result {
	path := cfg.ComposeFilePath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []result{{
			name:    "compose manifest",
			warning: true,
			detail:  "not generated yet (run \"localmx setup\")",
		}}
	}
	if err != nil {
		return []result{{name: "compose manifest", detail: err.Error()}}
	}
	switch {
	case !genconf.IsManaged(data):
		return []result{{
			name:   "compose manifest",
			detail: path + " exists but was not generated by this tool",
		}}
	case genconf.HandEdited(data):
		return []result{{
			name:    "compose manifest",
			warning: true,
			detail:  path + " has local edits; regeneration will prompt",
		}}
	default:
		return []result{{name: "compose manifest", ok: true, detail: path}}
	}
}
