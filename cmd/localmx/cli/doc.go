// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command tree, flag binding, prompting, and
// error plumbing for the localmx binary.
//
// Commands are plain [Command] values dispatched on positional
// subcommand names. Flags are bound either by constructing a
// *pflag.FlagSet directly or by tagging a params struct and calling
// [FlagsFromParams]. Unknown commands and flags produce "did you mean"
// suggestions based on edit distance.
//
// Errors returned by command Run functions are categorized [ToolError]
// values where the category matters (validation vs. internal), or
// [ExitError] when a command has already printed its own output and
// only needs a non-zero exit code.
package cli
