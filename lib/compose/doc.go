// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

// Package compose builds the multi-service compose manifest for a
// localmx stack as a typed document, then serializes it with yaml.v3.
//
// The manifest is a pure function of the loaded configuration: Synapse
// and Postgres are always present, optional services are appended in a
// fixed order when their enable flag is set, and named volumes for
// stateful optional services are declared whether or not the service
// is enabled (an unused named volume is harmless, and declaring it
// unconditionally keeps volume lifecycles independent of feature
// toggles).
//
// Build refuses to produce a manifest when Hookshot end-to-end
// encryption and MAS are both enabled; the two are incompatible and
// the failure happens before any file is written.
package compose
