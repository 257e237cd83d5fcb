// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/localmx/localmx/lib/config"
)

// SynapseGenerator produces the homeserver configuration. Rather than
// templating a homeserver.yaml from scratch, it runs the Synapse image
// in its own "generate" mode to emit an upstream default (including
// the server's signing key), then patches the default into shape for
// this stack. Upstream config churn then mostly takes care of itself.
type SynapseGenerator struct{}

func (SynapseGenerator) Name() string { return "synapse" }

func (SynapseGenerator) Outputs(cfg *config.Config) []string {
	return []string{
		cfg.SynapseConfigPath(),
		cfg.SynapseLogConfigPath(),
	}
}

func (SynapseGenerator) Generate(ctx *Context) error {
	cfg := ctx.Config

	dataDir, err := filepath.Abs(cfg.SynapseDataDir())
	if err != nil {
		return fmt.Errorf("resolve synapse data dir: %w", err)
	}
	// Create the mount point ourselves so the runtime does not create
	// it root-owned.
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dataDir, err)
	}

	env := map[string]string{
		"SYNAPSE_SERVER_NAME":  cfg.ServerName,
		"SYNAPSE_REPORT_STATS": "no",
		"UID":                  fmt.Sprint(cfg.ContainerUID),
		"GID":                  fmt.Sprint(cfg.ContainerUID),
	}
	if err := ctx.Runner.RunOneShot(ctx.Ctx, cfg.SynapseImage, env,
		[]string{dataDir + ":/data"}, "generate"); err != nil {
		return fmt.Errorf("run synapse config generation: %w", err)
	}

	upstream, err := os.ReadFile(cfg.SynapseConfigPath())
	if err != nil {
		return fmt.Errorf("read generated homeserver.yaml: %w", err)
	}

	body, err := ParseAndPatch(upstream, synapsePatches(ctx))
	if err != nil {
		return fmt.Errorf("patch homeserver.yaml: %w", err)
	}
	if err := WriteManaged(cfg.SynapseConfigPath(), body); err != nil {
		return err
	}

	// The generate mode emits a log config too; replace it with ours.
	return WriteManaged(cfg.SynapseLogConfigPath(), templateFile("synapse-log.yaml"))
}

// synapsePatches is the fixed patch list turning an upstream default
// homeserver.yaml into one wired for this stack. Order matters: the
// MAS block at the end overrides registration and password settings
// patched earlier.
func synapsePatches(ctx *Context) []Patch {
	cfg := ctx.Config
	derived := ctx.Secrets

	patches := []Patch{
		// The default binds localhost only, which is unreachable from
		// the other containers.
		{Path: "listeners.0.bind_addresses", Value: []string{"0.0.0.0"}},
		{Path: "database", Value: map[string]any{
			"name": "psycopg2",
			"args": map[string]any{
				"user":     cfg.PostgresUser,
				"password": derived.PostgresPassword,
				"database": cfg.PostgresDatabase,
				"host":     "postgres",
				"cp_min":   5,
				"cp_max":   10,
			},
		}},
		{Path: "public_baseurl", Value: cfg.SynapseURL() + "/"},
		{Path: "enable_registration", Value: true},
		{Path: "enable_registration_without_verification", Value: true},
		{Path: "presence.enabled", Value: false},
		{Path: "report_stats", Value: false},
		{Path: "registration_shared_secret", Value: derived.RegistrationSharedSecret},
		{Path: "macaroon_secret_key", Value: derived.MacaroonSecretKey},
		{Path: "form_secret", Value: derived.FormSecret},
		// No outbound key fetching for a local test server.
		{Path: "trusted_key_servers", Value: []any{}},
		{Path: "suppress_key_server_warning", Value: true},
	}

	if cfg.Mailhog.Enabled {
		patches = append(patches,
			Patch{Path: "email.smtp_host", Value: "mailhog"},
			Patch{Path: "email.smtp_port", Value: 1025},
			Patch{Path: "email.force_tls", Value: false},
			Patch{Path: "email.notif_from", Value: fmt.Sprintf("%%(app)s <noreply@%s>", cfg.ServerName)},
		)
	}

	if cfg.Hookshot.Enabled {
		patches = append(patches, Patch{
			Path:  "app_service_config_files",
			Value: []string{"/data/hookshot-registration.yml"},
		})
	}
	if cfg.HookshotEncryption {
		patches = append(patches,
			Patch{Path: "experimental_features.msc2409_to_device_messages_enabled", Value: true},
			Patch{Path: "experimental_features.msc3202_device_masquerading", Value: true},
			Patch{Path: "experimental_features.msc3202_transaction_extensions", Value: true},
		)
	}

	if cfg.MAS.Enabled {
		patches = append(patches,
			Patch{Path: "experimental_features.msc3861.enabled", Value: true},
			Patch{Path: "experimental_features.msc3861.issuer", Value: cfg.URLFor(cfg.MAS) + "/"},
			Patch{Path: "experimental_features.msc3861.client_id", Value: masSynapseClientID},
			Patch{Path: "experimental_features.msc3861.client_auth_method", Value: "client_secret_basic"},
			Patch{Path: "experimental_features.msc3861.client_secret", Value: derived.MASSynapseClientSecret},
			Patch{Path: "experimental_features.msc3861.admin_token", Value: derived.MASMatrixSecret},
			// MAS owns registration and passwords once auth is
			// delegated.
			Patch{Path: "enable_registration", Value: false},
			Patch{Path: "enable_registration_without_verification", Value: false},
			Patch{Path: "password_config.enabled", Value: false},
		)
	}

	return patches
}
