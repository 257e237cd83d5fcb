// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/localmx/localmx/cmd/localmx/cli"
	"github.com/localmx/localmx/lib/config"
)

// link is one externally reachable endpoint of the stack.
type link struct {
	name string
	url  string
	note string
}

// stackLinks computes the reachable URL for every enabled service.
// Pure; nothing is probed.
func stackLinks(cfg *config.Config) []link {
	links := []link{
		{"synapse", cfg.SynapseURL(), "Matrix client API"},
	}
	if cfg.Nginx.Enabled {
		links = append(links, link{"nginx", cfg.URLFor(cfg.Nginx), "reverse proxy, routes by virtual host"})
	}
	if cfg.ElementWeb.Enabled {
		links = append(links, link{"element", cfg.URLFor(cfg.ElementWeb), "Element Web client"})
	}
	if cfg.MAS.Enabled {
		links = append(links, link{"mas", cfg.URLFor(cfg.MAS), "authentication service"})
	}
	if cfg.Hookshot.Enabled {
		links = append(links, link{"hookshot", cfg.URLFor(cfg.Hookshot), "webhook bridge"})
	}
	if cfg.SynapseAdmin.Enabled {
		links = append(links, link{"synapse-admin", cfg.URLFor(cfg.SynapseAdmin), "homeserver admin UI"})
	}
	if cfg.Adminer.Enabled {
		links = append(links, link{"adminer", cfg.URLFor(cfg.Adminer), "database UI"})
	}
	if cfg.Mailhog.Enabled {
		links = append(links,
			link{"mailhog", cfg.URLFor(cfg.Mailhog), "captured mail UI"},
			link{"mailhog-smtp", fmt.Sprintf("smtp://%s:%d", cfg.HostFor(cfg.Mailhog), cfg.MailhogSMTPPort), "SMTP endpoint"},
		)
	}
	return links
}

var (
	linkNameStyle = lipgloss.NewStyle().Bold(true).Width(15)
	linkURLStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	linkNoteStyle = lipgloss.NewStyle().Faint(true)
)

// LinksCommand returns the "links" command: print the URL of every
// enabled service.
func LinksCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "links",
		Summary: "Print the URL of every enabled service",
		Usage:   "localmx links [flags]",
		Flags: func() *pflag.FlagSet {
			return configFlag("links", &configPath)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := loadEnvironment(configPath, "links")
			if err != nil {
				return err
			}
			for _, l := range stackLinks(env.cfg) {
				fmt.Fprintf(os.Stdout, "%s %s  %s\n",
					linkNameStyle.Render(l.name),
					linkURLStyle.Render(l.url),
					linkNoteStyle.Render(l.note))
			}
			return nil
		},
	}
}
