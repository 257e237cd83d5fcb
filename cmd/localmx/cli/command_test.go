// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "localmx",
		Subcommands: []*Command{
			{
				Name: "setup",
				Run: func(args []string) error {
					called = "setup"
					return nil
				},
			},
			{
				Name: "stop",
				Run: func(args []string) error {
					called = "stop"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"stop"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "stop" {
		t.Errorf("dispatched to %q, want %q", called, "stop")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "localmx",
		Subcommands: []*Command{
			{
				Name: "gen",
				Subcommands: []*Command{
					{
						Name: "synapse",
						Run: func(args []string) error {
							called = "gen synapse"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"gen", "synapse", "extra-arg"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "gen synapse" {
		t.Errorf("dispatched to %q, want %q", called, "gen synapse")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownCommandExitsCleanly(t *testing.T) {
	// Unrecognized input prints usage and exits zero: typos must never
	// be treated as destructive actions, and the original tooling
	// treats them as help requests.
	var ran bool
	root := &Command{
		Name: "localmx",
		Subcommands: []*Command{
			{Name: "setup", Summary: "create everything", Run: func(args []string) error {
				ran = true
				return nil
			}},
		},
	}

	if err := root.Execute([]string{"steup"}); err != nil {
		t.Fatalf("Execute() error: %v, want nil for unknown command", err)
	}
	if ran {
		t.Error("unknown command must not run any subcommand")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var configPath string
	var target string

	command := &Command{
		Name: "setup",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("setup", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "stack.conf", "config path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--config", "/custom.conf", "hookshot"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if configPath != "/custom.conf" {
		t.Errorf("configPath = %q, want %q", configPath, "/custom.conf")
	}
	if target != "hookshot" {
		t.Errorf("target = %q, want %q", target, "hookshot")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "gen",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("gen", pflag.ContinueOnError)
			flagSet.Bool("force", false, "skip overwrite confirmation")
			flagSet.String("config", "stack.conf", "config path")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--froce"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --force") {
		t.Errorf("error = %q, want suggestion for '--force'", errStr)
	}
	if !strings.Contains(errStr, "froce") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_PrintHelp_ListsSubcommands(t *testing.T) {
	root := &Command{
		Name:    "localmx",
		Summary: "local Matrix stack bootstrapper",
		Subcommands: []*Command{
			{Name: "setup", Summary: "generate configs and start the stack"},
			{Name: "delete", Summary: "tear everything down"},
		},
	}

	var buf bytes.Buffer
	root.PrintHelp(&buf)
	help := buf.String()

	for _, want := range []string{"setup", "delete", "generate configs", "tear everything down"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestCommand_Execute_HelpFlagVariants(t *testing.T) {
	for _, variant := range []string{"-h", "--help", "help"} {
		ran := false
		command := &Command{
			Name: "localmx",
			Run: func(args []string) error {
				ran = true
				return nil
			},
		}
		if err := command.Execute([]string{variant}); err != nil {
			t.Errorf("Execute(%q) error: %v", variant, err)
		}
		if ran {
			t.Errorf("Execute(%q) ran the command, want help only", variant)
		}
	}
}
