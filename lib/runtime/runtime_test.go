// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/localmx/localmx/lib/config"
)

func testRuntime() *Runtime {
	cfg := config.Default()
	cfg.DataDir = "/tmp/stack"
	return New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestComposeArgs(t *testing.T) {
	r := testRuntime()
	got := r.composeArgs("up", "--detach")
	want := []string{
		"compose", "--project-name", "localmx",
		"--file", "/tmp/stack/compose.yaml",
		"up", "--detach",
	}
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args = %v, want %v", got, want)
		}
	}
}

func TestOneShotArgsDeterministic(t *testing.T) {
	env := map[string]string{
		"SYNAPSE_SERVER_NAME":  "localmx.test",
		"SYNAPSE_REPORT_STATS": "no",
	}
	got := oneShotArgs("matrixdotorg/synapse:latest", env,
		[]string{"/tmp/stack/synapse:/data"}, []string{"generate"})

	joined := strings.Join(got, " ")
	want := "run --rm" +
		" --env SYNAPSE_REPORT_STATS=no" +
		" --env SYNAPSE_SERVER_NAME=localmx.test" +
		" --volume /tmp/stack/synapse:/data" +
		" matrixdotorg/synapse:latest generate"
	if joined != want {
		t.Fatalf("args = %q, want %q", joined, want)
	}
}

func TestCommandErrorExitCode(t *testing.T) {
	inner := errors.New("exit status 125")
	err := &CommandError{Args: []string{"docker", "compose", "up"}, Code: 125, Err: inner}

	if err.ExitCode() != 125 {
		t.Fatalf("ExitCode = %d, want 125", err.ExitCode())
	}
	if !errors.Is(err, inner) {
		t.Fatal("CommandError does not unwrap to its cause")
	}
	var coder interface{ ExitCode() int }
	if !errors.As(error(err), &coder) {
		t.Fatal("CommandError does not satisfy the exit-code interface")
	}
}

func TestPodmanDetection(t *testing.T) {
	cfg := config.Default()
	cfg.Runtime = "podman"
	r := New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if !r.Podman() {
		t.Fatal("podman runtime not detected")
	}
	if testRuntime().Podman() {
		t.Fatal("docker runtime reported as podman")
	}
}

func TestPreflight(t *testing.T) {
	cfg := config.Default()
	cfg.Runtime = "localmx-no-such-runtime"
	err := Preflight(&cfg)
	if err == nil {
		t.Fatal("missing runtime binary not reported")
	}
	if !strings.Contains(err.Error(), "localmx-no-such-runtime") {
		t.Fatalf("error %q does not name the missing program", err)
	}

	cfg.Runtime = "sh"
	if err := Preflight(&cfg); err != nil {
		t.Fatalf("preflight with available binary: %v", err)
	}
}

func TestFixOwnershipDockerNoop(t *testing.T) {
	// Docker containers chown their own bind mounts as in-container
	// root, so the host side must not touch anything.
	r := testRuntime()
	if err := r.FixOwnership(context.Background(), "/does/not/exist", 991); err != nil {
		t.Fatalf("docker fixup is not a no-op: %v", err)
	}
}
