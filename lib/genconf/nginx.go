// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/localmx/localmx/lib/config"
)

// NginxGenerator writes the reverse proxy configuration: a default
// server block proxying the homeserver (and serving the well-known
// client discovery document) plus one virtual host per enabled
// fronted service, routed by server name and proxied to the service's
// container.
type NginxGenerator struct{}

func (NginxGenerator) Name() string { return "nginx" }

func (NginxGenerator) Outputs(cfg *config.Config) []string {
	return []string{cfg.NginxConfigPath()}
}

func (NginxGenerator) Generate(ctx *Context) error {
	cfg := ctx.Config

	tmpl, err := template.New("nginx.conf.tmpl").Parse(string(templateFile("nginx.conf.tmpl")))
	if err != nil {
		return fmt.Errorf("parse nginx template: %w", err)
	}

	data := struct {
		ServerName   string
		SynapseURL   string
		MASURL       string
		ElementWeb   bool
		MAS          bool
		Hookshot     bool
		SynapseAdmin bool
	}{
		ServerName:   cfg.ServerName,
		SynapseURL:   cfg.SynapseURL(),
		MASURL:       cfg.URLFor(cfg.MAS),
		ElementWeb:   cfg.ElementWeb.Enabled,
		MAS:          cfg.MAS.Enabled,
		Hookshot:     cfg.Hookshot.Enabled,
		SynapseAdmin: cfg.SynapseAdmin.Enabled,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render nginx config: %w", err)
	}
	return WriteManaged(cfg.NginxConfigPath(), buf.Bytes())
}
