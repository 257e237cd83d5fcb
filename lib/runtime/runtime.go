// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/localmx/localmx/lib/config"
)

// Runtime issues container runtime commands for one stack.
type Runtime struct {
	binary      string
	project     string
	composeFile string
	logger      *slog.Logger
}

// Prerequisites lists the external programs the lifecycle commands
// shell out to for the given configuration.
func Prerequisites(cfg *config.Config) []string {
	return []string{cfg.Runtime}
}

// Preflight verifies every prerequisite program is on PATH. All
// missing programs are reported in a single error so the operator
// fixes them in one round.
func Preflight(cfg *config.Config) error {
	var missing []string
	for _, binary := range Prerequisites(cfg) {
		if _, err := exec.LookPath(binary); err != nil {
			missing = append(missing, binary)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required programs: %s", strings.Join(missing, ", "))
	}
	return nil
}

// New builds a Runtime from the environment configuration. It does not
// check that the binary exists; callers run Preflight first.
func New(cfg *config.Config, logger *slog.Logger) *Runtime {
	return &Runtime{
		binary:      cfg.Runtime,
		project:     cfg.ProjectName,
		composeFile: cfg.ComposeFilePath(),
		logger:      logger,
	}
}

// Podman reports whether the configured runtime is podman. Rootless
// podman needs different ownership handling for bind mounts.
func (r *Runtime) Podman() bool {
	return r.binary == "podman"
}

// CommandError wraps a runtime command failure, carrying the
// runtime's exit status through to the process exit code.
type CommandError struct {
	Args []string
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Args[0], e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the underlying command's exit status. main checks
// for this interface so the stack inherits the runtime's exit code
// rather than translating it.
func (e *CommandError) ExitCode() int { return e.Code }

// run executes the runtime binary with output streamed to the
// operator's terminal.
func (r *Runtime) run(ctx context.Context, args ...string) error {
	r.logger.Debug("running container runtime command", "binary", r.binary, "args", args)
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &CommandError{
			Args: append([]string{r.binary}, args...),
			Code: code,
			Err:  err,
		}
	}
	return nil
}

// composeArgs prefixes a compose subcommand with the stack's project
// and manifest selection.
func (r *Runtime) composeArgs(args ...string) []string {
	return append([]string{"compose", "--project-name", r.project, "--file", r.composeFile}, args...)
}

// compose executes a compose subcommand against the stack's manifest.
func (r *Runtime) compose(ctx context.Context, args ...string) error {
	return r.run(ctx, r.composeArgs(args...)...)
}

// Up creates or recreates the whole container set. Recreation is
// forced so config regeneration always takes effect, and orphans from
// since-disabled services are removed.
func (r *Runtime) Up(ctx context.Context) error {
	return r.compose(ctx, "up", "--detach", "--force-recreate", "--remove-orphans")
}

// Stop stops the container set without removing anything.
func (r *Runtime) Stop(ctx context.Context) error {
	return r.compose(ctx, "stop")
}

// Down removes the container set. With removeVolumes it also deletes
// the stack's named volumes, destroying all service state.
func (r *Runtime) Down(ctx context.Context, removeVolumes bool) error {
	args := []string{"down", "--remove-orphans"}
	if removeVolumes {
		args = append(args, "--volumes")
	}
	return r.compose(ctx, args...)
}

// Pull fetches current images for every service in the manifest.
func (r *Runtime) Pull(ctx context.Context) error {
	return r.compose(ctx, "pull")
}

// Restart restarts the named services, or the whole set when none are
// named.
func (r *Runtime) Restart(ctx context.Context, services ...string) error {
	return r.compose(ctx, append([]string{"restart"}, services...)...)
}

// Exec runs a command inside a running service container.
func (r *Runtime) Exec(ctx context.Context, service string, args ...string) error {
	return r.compose(ctx, append([]string{"exec", service}, args...)...)
}

// oneShotArgs builds the argument list for a throwaway container run.
// Environment keys are sorted so the command line is deterministic.
func oneShotArgs(image string, env map[string]string, binds []string, args []string) []string {
	full := []string{"run", "--rm"}
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		full = append(full, "--env", key+"="+env[key])
	}
	for _, bind := range binds {
		full = append(full, "--volume", bind)
	}
	full = append(full, image)
	return append(full, args...)
}

// RunOneShot runs an image to completion in a throwaway container.
// Used for service images with a config-emission mode.
func (r *Runtime) RunOneShot(ctx context.Context, image string, env map[string]string, binds []string, args ...string) error {
	return r.run(ctx, oneShotArgs(image, env, binds, args)...)
}
