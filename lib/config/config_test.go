// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.ElementWeb.Enabled {
		t.Error("expected Element Web enabled by default")
	}
	if cfg.Adminer.Enabled {
		t.Error("expected Adminer disabled by default")
	}
	if cfg.MAS.Enabled {
		t.Error("expected MAS disabled by default")
	}
	if cfg.Hookshot.Enabled {
		t.Error("expected Hookshot disabled by default")
	}
	if cfg.Runtime != "docker" {
		t.Errorf("expected runtime=docker, got %s", cfg.Runtime)
	}
	if cfg.SynapsePort != 8008 {
		t.Errorf("expected synapsePort=8008, got %d", cfg.SynapsePort)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.conf"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ProjectName != "localmx" {
		t.Errorf("expected default project name, got %q", cfg.ProjectName)
	}
	if !cfg.ElementWeb.Enabled {
		t.Error("expected Element Web enabled when no file present")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	content := `# stack configuration
serverName=example.test
bindHost=127.0.0.15

enableAdminer=true
adminerPort=9999
enableElementWeb=false
enableMAS=true
masPort=8080
runtime=podman
`
	path := writeConfig(t, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerName != "example.test" {
		t.Errorf("serverName = %q, want example.test", cfg.ServerName)
	}
	if cfg.BindHost != "127.0.0.15" {
		t.Errorf("bindHost = %q, want 127.0.0.15", cfg.BindHost)
	}
	if !cfg.Adminer.Enabled || cfg.Adminer.Port != 9999 {
		t.Errorf("adminer = %+v, want enabled on 9999", cfg.Adminer)
	}
	if cfg.ElementWeb.Enabled {
		t.Error("expected Element Web disabled")
	}
	if !cfg.MAS.Enabled || cfg.MAS.Port != 8080 {
		t.Errorf("mas = %+v, want enabled on 8080", cfg.MAS)
	}
	if cfg.Runtime != "podman" {
		t.Errorf("runtime = %q, want podman", cfg.Runtime)
	}
	// Untouched keys keep their defaults.
	if cfg.SynapsePort != 8008 {
		t.Errorf("synapsePort = %d, want default 8008", cfg.SynapsePort)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "enableAdminner=true\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() = nil error, want unknown-key error")
	}
	if !strings.Contains(err.Error(), "enableAdminner") {
		t.Errorf("error %q should name the unknown key", err)
	}
}

func TestLoad_MalformedLine(t *testing.T) {
	path := writeConfig(t, "this is not an assignment\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() = nil error, want parse error")
	}
}

func TestLoad_BadBool(t *testing.T) {
	path := writeConfig(t, "enableAdminer=maybe\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() = nil error, want bool parse error")
	}
}

func TestValidate_EncryptionAndMASExclusive(t *testing.T) {
	cfg := Default()
	cfg.Hookshot.Enabled = true
	cfg.HookshotEncryption = true
	cfg.MAS.Enabled = true

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want mutual-exclusion error")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error = %q, want mutual exclusion message", err)
	}
}

func TestValidate_EncryptionRequiresHookshot(t *testing.T) {
	cfg := Default()
	cfg.HookshotEncryption = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for encryption without hookshot")
	}
}

func TestValidate_BadRuntime(t *testing.T) {
	cfg := Default()
	cfg.Runtime = "containerd"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for unknown runtime")
	}
}

func TestURLFor_UsesServiceHostOverride(t *testing.T) {
	cfg := Default()
	cfg.BindHost = "127.0.0.1"
	cfg.MAS.Enabled = true
	cfg.MAS.Host = "127.0.0.15"
	cfg.MAS.Port = 8080

	if got := cfg.URLFor(cfg.MAS); got != "http://127.0.0.15:8080" {
		t.Errorf("URLFor(MAS) = %q, want http://127.0.0.15:8080", got)
	}
	// A service without its own host falls back to the bind host.
	if got := cfg.URLFor(cfg.ElementWeb); got != "http://127.0.0.1:8010" {
		t.Errorf("URLFor(ElementWeb) = %q, want http://127.0.0.1:8010", got)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stack.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
