// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package config

import "path/filepath"

// Generated file layout under DataDir. The delete action removes
// DataDir wholesale, so everything the generators write must live
// below it.

// ComposeFilePath is the compose manifest location.
func (c *Config) ComposeFilePath() string {
	return filepath.Join(c.DataDir, "compose.yaml")
}

// SynapseDataDir holds homeserver.yaml, the log config, signing keys,
// and Synapse's media store. Bind-mounted into the synapse container
// as /data.
func (c *Config) SynapseDataDir() string {
	return filepath.Join(c.DataDir, "synapse")
}

// SynapseConfigPath is the homeserver configuration file.
func (c *Config) SynapseConfigPath() string {
	return filepath.Join(c.SynapseDataDir(), "homeserver.yaml")
}

// SynapseLogConfigPath is the homeserver logging configuration.
func (c *Config) SynapseLogConfigPath() string {
	return filepath.Join(c.SynapseDataDir(), c.ServerName+".log.config")
}

// PostgresInitPath is the SQL script Postgres runs on first boot to
// create the MAS database. Only mounted when MAS is enabled.
func (c *Config) PostgresInitPath() string {
	return filepath.Join(c.DataDir, "postgres", "init.sql")
}

// ElementConfigPath is the Element Web client configuration (JSON).
func (c *Config) ElementConfigPath() string {
	return filepath.Join(c.DataDir, "element", "config.json")
}

// NginxConfigPath is the reverse proxy server-block file.
func (c *Config) NginxConfigPath() string {
	return filepath.Join(c.DataDir, "nginx", "localmx.conf")
}

// MASConfigPath is the Matrix Authentication Service configuration.
func (c *Config) MASConfigPath() string {
	return filepath.Join(c.DataDir, "mas", "config.yaml")
}

// HookshotDataDir holds the bridge config, its appservice
// registration, and the passkey. Bind-mounted into the hookshot
// container as /data.
func (c *Config) HookshotDataDir() string {
	return filepath.Join(c.DataDir, "hookshot")
}

// HookshotConfigPath is the bridge configuration file.
func (c *Config) HookshotConfigPath() string {
	return filepath.Join(c.HookshotDataDir(), "config.yml")
}

// HookshotRegistrationPath is the appservice registration descriptor.
// Synapse reads it too, via the synapse data dir bind mount, so the
// compose manifest mounts the hookshot dir into both containers.
func (c *Config) HookshotRegistrationPath() string {
	return filepath.Join(c.HookshotDataDir(), "registration.yml")
}

// HookshotPasskeyPath is the bridge's at-rest encryption key (a fixed
// test-only literal, not generated key material).
func (c *Config) HookshotPasskeyPath() string {
	return filepath.Join(c.HookshotDataDir(), "passkey.pem")
}
