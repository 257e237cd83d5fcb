// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

// Package genconf generates the per-service configuration files of a
// localmx stack: the compose manifest, the Synapse homeserver config
// and log config, the Element Web client config, the reverse proxy
// server blocks, the MAS config, and the Hookshot bridge config with
// its appservice registration and passkey.
//
// Every generator follows the same protocol. If its output files
// already exist, the operator is asked before they are overwritten
// (unless forced); declining skips that generator and the rest of the
// workflow continues with the stale files. On proceed, prior outputs
// are deleted, the new content is produced (from an embedded template,
// or by running the service's own config generator in a throwaway
// container), a fixed ordered patch list is applied, and the result is
// written with a managed-file marker.
//
// The patch lists are the configuration contract of each generator:
// key paths, literal values, and application order are what downstream
// services actually see, so they are defined as data
// ([]Patch literal) rather than scattered through rendering code.
//
// Generated files carry a marker line with a keyed BLAKE3 fingerprint
// of the body. The marker identifies the file as owned by this tooling
// (safe to overwrite and delete); the fingerprint detects hand-edits,
// which upgrades the overwrite prompt to an explicit warning.
package genconf
