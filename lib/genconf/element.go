// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/localmx/localmx/lib/config"
	"github.com/tidwall/jsonc"
)

// ElementGenerator writes the Element Web client configuration. The
// base template is commented JSONC for maintainers; the output is
// strict JSON because Element parses it with a plain JSON parser.
// JSON has no comments, so the managed-by marker rides along as a
// top-level "_managed_by" key instead.
type ElementGenerator struct{}

func (ElementGenerator) Name() string { return "element" }

func (ElementGenerator) Outputs(cfg *config.Config) []string {
	return []string{cfg.ElementConfigPath()}
}

func (ElementGenerator) Generate(ctx *Context) error {
	cfg := ctx.Config

	var doc map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(templateFile("element.jsonc")), &doc); err != nil {
		return fmt.Errorf("parse element template: %w", err)
	}

	server := map[string]any{
		"m.homeserver": map[string]any{
			"base_url":    cfg.SynapseURL(),
			"server_name": cfg.ServerName,
		},
	}
	if cfg.MAS.Enabled {
		// Element served on its own port never sees the reverse
		// proxy's well-known document, so the delegated-auth issuer
		// goes straight into the server config.
		server["org.matrix.msc2965.authentication"] = map[string]any{
			"issuer":  cfg.URLFor(cfg.MAS) + "/",
			"account": cfg.URLFor(cfg.MAS) + "/account",
		}
		doc["sso_redirect_options"] = map[string]any{
			"immediate":       false,
			"on_welcome_page": true,
		}
	}
	doc["default_server_config"] = server
	doc["_managed_by"] = markerPrefix + ". Regenerate with \"localmx gen element\"; do not edit by hand."

	body, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("serialize element config: %w", err)
	}
	body = append(body, '\n')

	path := cfg.ElementConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
