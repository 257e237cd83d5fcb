// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import "embed"

// Embedded base templates the generators start from. The private keys
// in here are fixed public test literals, not secret material.
//
//go:embed templates
var templatesFS embed.FS

// templateFile returns an embedded template by name. A missing name is
// a programmer error, so it panics rather than returning an error.
func templateFile(name string) []byte {
	data, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		panic("missing embedded template " + name + ": " + err.Error())
	}
	return data
}
