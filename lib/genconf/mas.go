// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/localmx/localmx/lib/config"
)

// masSynapseClientID is the OAuth client ID Synapse uses against MAS.
// MAS requires client IDs to be ULIDs; this fixed value is the
// conventional one for the Synapse client.
const masSynapseClientID = "0000000000000000000SYNAPSE"

// MASGenerator writes the Matrix Authentication Service configuration
// and the Postgres init script that creates MAS's database. MAS shares
// the stack's Postgres instance but insists on its own database, and
// the Postgres image only creates databases on first boot, so the init
// script has to exist before the volume is first populated.
type MASGenerator struct{}

func (MASGenerator) Name() string { return "mas" }

func (MASGenerator) Outputs(cfg *config.Config) []string {
	return []string{
		cfg.MASConfigPath(),
		cfg.PostgresInitPath(),
	}
}

func (MASGenerator) Generate(ctx *Context) error {
	cfg := ctx.Config
	derived := ctx.Secrets

	databaseURI := fmt.Sprintf("postgresql://%s:%s@postgres/mas",
		cfg.PostgresUser, derived.PostgresPassword)

	body, err := ParseAndPatch(templateFile("mas.yaml"), []Patch{
		{Path: "http.public_base", Value: cfg.URLFor(cfg.MAS)},
		{Path: "database.uri", Value: databaseURI},
		{Path: "matrix.homeserver", Value: cfg.ServerName},
		{Path: "matrix.secret", Value: derived.MASMatrixSecret},
		{Path: "secrets.encryption", Value: derived.MASEncryptionSecret},
		// Fixed test-only signing key; see templates.go.
		{Path: "secrets.keys", Value: []map[string]any{{
			"kid": "localmx",
			"key": string(templateFile("mas-signing-key.pem")),
		}}},
		{Path: "clients.0.client_secret", Value: derived.MASSynapseClientSecret},
	})
	if err != nil {
		return fmt.Errorf("patch mas config: %w", err)
	}
	if err := WriteManaged(cfg.MASConfigPath(), body); err != nil {
		return err
	}

	initSQL := []byte(fmt.Sprintf("CREATE DATABASE mas OWNER %s;\n", cfg.PostgresUser))
	return writeManagedSQL(cfg.PostgresInitPath(), initSQL)
}

// writeManagedSQL writes a managed SQL file. SQL line comments start
// with "--", so the standard "#" marker would break psql.
func writeManagedSQL(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	content := append([]byte(markerLine("--", body)), body...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
