// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the localmx environment configuration.
//
// Configuration is a flat key=value file (shell-assignment style, "#"
// comments) loaded once at process start. A missing file is not an
// error: every recognized key has a built-in default, so a bare
// "localmx setup" works out of the box. An unrecognized key is an
// error, catching typos like "enableAdminner=true" before they
// silently produce a stack without the service the operator asked for.
//
// The loaded [Config] is treated as immutable for the rest of the run:
// it is built once and passed by value into the generators and the
// lifecycle commands. Values are not validated beyond parsing; a bogus
// image reference propagates into the compose manifest as-is and fails
// there, which keeps this layer simple and the failure visible in the
// runtime's own words.
//
// The single cross-key invariant lives in [Config.Validate]: Hookshot
// end-to-end encryption and the Matrix Authentication Service cannot
// both be enabled.
package config
