// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

// Package runtime wraps the container runtime CLI (docker or podman)
// for one stack. It holds no model of container state: every operation
// shells out to "<runtime> compose" or "<runtime> run" against the
// generated manifest, streams the runtime's output through to the
// operator, and propagates the runtime's exit status unchanged.
package runtime
