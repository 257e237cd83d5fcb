// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"testing"

	"github.com/localmx/localmx/lib/config"
)

func TestStackLinksMASAddress(t *testing.T) {
	cfg := config.Default()
	cfg.MAS.Enabled = true
	cfg.MAS.Host = "127.0.0.15"
	cfg.MAS.Port = 8080

	found := false
	for _, l := range stackLinks(&cfg) {
		if l.url == "http://127.0.0.15:8080" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no link with the MAS address, got %+v", stackLinks(&cfg))
	}
}

func TestStackLinksOmitDisabledServices(t *testing.T) {
	cfg := config.Default()
	cfg.Adminer.Enabled = false
	cfg.Mailhog.Enabled = false

	for _, l := range stackLinks(&cfg) {
		if l.name == "adminer" || l.name == "mailhog" || l.name == "mailhog-smtp" {
			t.Fatalf("disabled service %q listed", l.name)
		}
	}
}

func TestStackLinksAlwaysIncludeSynapse(t *testing.T) {
	cfg := config.Default()
	cfg.ElementWeb.Enabled = false
	cfg.Nginx.Enabled = false

	links := stackLinks(&cfg)
	if len(links) == 0 || links[0].name != "synapse" {
		t.Fatalf("synapse not first in %+v", links)
	}
	if links[0].url != cfg.SynapseURL() {
		t.Fatalf("synapse url = %q, want %q", links[0].url, cfg.SynapseURL())
	}
}
