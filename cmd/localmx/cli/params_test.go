// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_AllTypes(t *testing.T) {
	type params struct {
		Config   string   `flag:"config,c" desc:"config path" default:"stack.conf"`
		Force    bool     `flag:"force"    desc:"skip prompts" default:"false"`
		Port     int      `flag:"port"     desc:"listen port"  default:"8008"`
		Services []string `flag:"service"  desc:"service names"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags() error: %v", err)
	}

	args := []string{"--config", "/tmp/other.conf", "--force", "--port", "9009",
		"--service", "synapse", "--service", "postgres"}
	if err := flagSet.Parse(args); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if p.Config != "/tmp/other.conf" {
		t.Errorf("Config = %q, want /tmp/other.conf", p.Config)
	}
	if !p.Force {
		t.Error("Force = false, want true")
	}
	if p.Port != 9009 {
		t.Errorf("Port = %d, want 9009", p.Port)
	}
	if len(p.Services) != 2 || p.Services[0] != "synapse" || p.Services[1] != "postgres" {
		t.Errorf("Services = %v, want [synapse postgres]", p.Services)
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Config string `flag:"config" default:"stack.conf"`
		Port   int    `flag:"port"   default:"8008"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags() error: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if p.Config != "stack.conf" {
		t.Errorf("Config default = %q, want stack.conf", p.Config)
	}
	if p.Port != 8008 {
		t.Errorf("Port default = %d, want 8008", p.Port)
	}
}

func TestBindFlags_RejectsNonStructPointer(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags("not a struct", flagSet); err == nil {
		t.Error("BindFlags(string) = nil error, want error")
	}
}

func TestBindFlags_EmbeddedStruct(t *testing.T) {
	type common struct {
		Config string `flag:"config" default:"stack.conf"`
	}
	type params struct {
		common
		Force bool `flag:"force"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags() error: %v", err)
	}
	if err := flagSet.Parse([]string{"--config", "x.conf", "--force"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if p.Config != "x.conf" {
		t.Errorf("embedded Config = %q, want x.conf", p.Config)
	}
	if !p.Force {
		t.Error("Force = false, want true")
	}
}
