// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/localmx/localmx/lib/config"
	"github.com/localmx/localmx/lib/genconf"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	return cfg
}

func findResult(results []result, name string) (result, bool) {
	for _, r := range results {
		if r.name == name {
			return r, true
		}
	}
	return result{}, false
}

func TestCheckGeneratedFilesMissingIsWarning(t *testing.T) {
	cfg := testConfig(t)
	results := checkGeneratedFiles(&cfg)
	r, ok := findResult(results, "compose manifest")
	if !ok {
		t.Fatal("no compose manifest result")
	}
	if r.ok || !r.warning {
		t.Fatalf("missing manifest should warn, got %+v", r)
	}
}

func TestCheckGeneratedFilesManagedIsOK(t *testing.T) {
	cfg := testConfig(t)
	if err := genconf.WriteManaged(cfg.ComposeFilePath(), []byte("services: {}\n")); err != nil {
		t.Fatalf("WriteManaged: %v", err)
	}
	r, _ := findResult(checkGeneratedFiles(&cfg), "compose manifest")
	if !r.ok {
		t.Fatalf("managed manifest should pass, got %+v", r)
	}
}

func TestCheckGeneratedFilesUnmanagedIsFailure(t *testing.T) {
	cfg := testConfig(t)
	path := cfg.ComposeFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("services: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r, _ := findResult(checkGeneratedFiles(&cfg), "compose manifest")
	if r.ok || r.warning {
		t.Fatalf("foreign manifest should fail, got %+v", r)
	}
}

func TestRunChecksRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "localmx.conf")
	content := "runtime=docker\nenableHookshot=true\nenableHookshotEncryption=true\nenableMAS=true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	r, ok := findResult(runChecks(path), "configuration")
	if !ok {
		t.Fatal("no configuration result")
	}
	if r.ok {
		t.Fatalf("incompatible feature combination passed validation: %+v", r)
	}
}
