// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/localmx/localmx/lib/config"
	"gopkg.in/yaml.v3"
)

// HookshotGenerator produces the webhook bridge's three artifacts: its
// configuration, the appservice registration the homeserver loads, and
// the at-rest encryption passkey. The passkey is a fixed embedded test
// key, not generated material; anything this bridge encrypts is
// readable by anyone with a copy of this repository, which is the
// point of a throwaway test stack.
type HookshotGenerator struct{}

func (HookshotGenerator) Name() string { return "hookshot" }

// Outputs deliberately omits the passkey: it is a byte-for-byte
// constant, so there is no stale state to prompt about, and a marker
// comment ahead of the PEM could trip strict key parsers.
func (HookshotGenerator) Outputs(cfg *config.Config) []string {
	return []string{
		cfg.HookshotConfigPath(),
		cfg.HookshotRegistrationPath(),
	}
}

func (HookshotGenerator) Generate(ctx *Context) error {
	cfg := ctx.Config

	patches := []Patch{
		{Path: "bridge.domain", Value: cfg.ServerName},
		{Path: "bridge.mediaUrl", Value: cfg.SynapseURL()},
		{Path: "generic.urlPrefix", Value: cfg.URLFor(cfg.Hookshot) + "/webhook"},
	}
	if cfg.HookshotEncryption {
		patches = append(patches,
			Patch{Path: "encryption.storagePath", Value: "/cache/encryption"})
	}

	body, err := ParseAndPatch(templateFile("hookshot.yml"), patches)
	if err != nil {
		return fmt.Errorf("patch hookshot config: %w", err)
	}
	if err := WriteManaged(cfg.HookshotConfigPath(), body); err != nil {
		return err
	}

	registration, err := buildRegistration(ctx)
	if err != nil {
		return err
	}
	if err := WriteManaged(cfg.HookshotRegistrationPath(), registration); err != nil {
		return err
	}

	passkeyPath := cfg.HookshotPasskeyPath()
	if err := os.MkdirAll(filepath.Dir(passkeyPath), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(passkeyPath), err)
	}
	if err := os.WriteFile(passkeyPath, templateFile("passkey.pem"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", passkeyPath, err)
	}
	return nil
}

// registrationNamespace scopes a namespace pattern in an appservice
// registration.
type registrationNamespace struct {
	Regex     string `yaml:"regex"`
	Exclusive bool   `yaml:"exclusive"`
}

// registration is the appservice registration descriptor Synapse loads
// to route bridge traffic.
type registration struct {
	ID         string `yaml:"id"`
	ASToken    string `yaml:"as_token"`
	HSToken    string `yaml:"hs_token"`
	Namespaces struct {
		Users []registrationNamespace `yaml:"users"`
		Rooms []registrationNamespace `yaml:"rooms"`
	} `yaml:"namespaces"`
	SenderLocalpart string `yaml:"sender_localpart"`
	URL             string `yaml:"url"`
	RateLimited     bool   `yaml:"rate_limited"`

	// Encrypted bridging needs ephemeral event push and device
	// masquerading from the homeserver.
	PushEphemeral    bool `yaml:"de.sorunome.msc2409.push_ephemeral,omitempty"`
	MSC3202          bool `yaml:"org.matrix.msc3202,omitempty"`
	ReceiveEphemeral bool `yaml:"receive_ephemeral,omitempty"`
}

func buildRegistration(ctx *Context) ([]byte, error) {
	cfg := ctx.Config

	reg := registration{
		ID:              cfg.ProjectName + "-hookshot",
		ASToken:         ctx.Secrets.HookshotASToken,
		HSToken:         ctx.Secrets.HookshotHSToken,
		SenderLocalpart: "hookshot",
		URL:             "http://hookshot:9993",
		RateLimited:     false,
	}
	// The bridge exclusively owns its virtual webhook users.
	reg.Namespaces.Users = []registrationNamespace{{
		Regex:     fmt.Sprintf("@_webhooks_.*:%s", cfg.ServerName),
		Exclusive: true,
	}}
	reg.Namespaces.Rooms = []registrationNamespace{}
	if cfg.HookshotEncryption {
		reg.PushEphemeral = true
		reg.MSC3202 = true
		reg.ReceiveEphemeral = true
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(reg); err != nil {
		return nil, fmt.Errorf("serialize appservice registration: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("serialize appservice registration: %w", err)
	}
	return buf.Bytes(), nil
}
