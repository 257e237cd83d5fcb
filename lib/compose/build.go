// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package compose

import (
	"fmt"

	"github.com/localmx/localmx/lib/config"
	"github.com/localmx/localmx/lib/secrets"
)

// Stateful optional services get a named volume declared whether or
// not the service is enabled. Volume lifecycle then never depends on
// feature toggles: enabling a service later finds its volume already
// declared, and the delete action always knows the full volume set.
const (
	volumePostgres = "postgres-data"
	volumeMAS      = "mas-data"
	volumeHookshot = "hookshot-cache"
)

// Build produces the compose manifest for the given configuration.
// Core services (Synapse, Postgres) are unconditional; optional
// services are appended in a fixed order gated by their enable flags.
//
// Build fails before producing anything when Hookshot encryption and
// MAS are both enabled: the combination is unsupported downstream, and
// failing here guarantees no file is written for an impossible stack.
func Build(cfg config.Config, derived secrets.Secrets) (*Manifest, error) {
	if cfg.HookshotEncryption && cfg.MAS.Enabled {
		return nil, fmt.Errorf("hookshot encryption and MAS are mutually exclusive; disable one")
	}

	manifest := &Manifest{
		Name:    cfg.ProjectName,
		Volumes: VolumeList{volumePostgres, volumeMAS, volumeHookshot},
	}

	postgres := ServiceSpec{
		Image:         cfg.PostgresImage,
		ContainerName: cfg.ProjectName + "-postgres",
		Restart:       "unless-stopped",
		Environment: map[string]string{
			"POSTGRES_DB":       cfg.PostgresDatabase,
			"POSTGRES_USER":     cfg.PostgresUser,
			"POSTGRES_PASSWORD": derived.PostgresPassword,
			// Synapse refuses to run against a database with a
			// locale-dependent collation.
			"POSTGRES_INITDB_ARGS": "--encoding=UTF8 --locale=C",
		},
		Volumes: []string{volumePostgres + ":/var/lib/postgresql/data"},
	}
	if cfg.MAS.Enabled {
		// MAS needs its own database on the shared instance; the init
		// script creates it on first boot.
		postgres.Volumes = append(postgres.Volumes,
			"./postgres/init.sql:/docker-entrypoint-initdb.d/10-mas.sql:ro")
	}
	manifest.Services.add("postgres", postgres)

	synapse := ServiceSpec{
		Image:         cfg.SynapseImage,
		ContainerName: cfg.ProjectName + "-synapse",
		Restart:       "unless-stopped",
		Environment: map[string]string{
			"SYNAPSE_CONFIG_PATH": "/data/homeserver.yaml",
		},
		Ports:     []string{fmt.Sprintf("%s:%d:8008", cfg.BindHost, cfg.SynapsePort)},
		Volumes:   []string{"./synapse:/data"},
		DependsOn: []string{"postgres"},
	}
	if cfg.Hookshot.Enabled {
		// Synapse reads the bridge's appservice registration from its
		// own /data tree.
		synapse.Volumes = append(synapse.Volumes,
			"./hookshot/registration.yml:/data/hookshot-registration.yml:ro")
	}
	manifest.Services.add("synapse", synapse)

	if cfg.ElementWeb.Enabled {
		manifest.Services.add("elementweb", ServiceSpec{
			Image:         cfg.ElementWeb.Image,
			ContainerName: cfg.ProjectName + "-elementweb",
			Restart:       "unless-stopped",
			Ports:         []string{fmt.Sprintf("%s:%d:80", cfg.HostFor(cfg.ElementWeb), cfg.ElementWeb.Port)},
			Volumes:       []string{"./element/config.json:/app/config.json:ro"},
			DependsOn:     []string{"synapse"},
		})
	}

	if cfg.MAS.Enabled {
		manifest.Services.add("mas", ServiceSpec{
			Image:         cfg.MAS.Image,
			ContainerName: cfg.ProjectName + "-mas",
			Restart:       "unless-stopped",
			Command:       []string{"server", "--config", "/config.yaml"},
			Ports:         []string{fmt.Sprintf("%s:%d:8080", cfg.HostFor(cfg.MAS), cfg.MAS.Port)},
			Volumes: []string{
				"./mas/config.yaml:/config.yaml:ro",
				volumeMAS + ":/data",
			},
			DependsOn: []string{"postgres"},
		})
	}

	if cfg.Hookshot.Enabled {
		manifest.Services.add("hookshot", ServiceSpec{
			Image:         cfg.Hookshot.Image,
			ContainerName: cfg.ProjectName + "-hookshot",
			Restart:       "unless-stopped",
			Ports:         []string{fmt.Sprintf("%s:%d:9000", cfg.HostFor(cfg.Hookshot), cfg.Hookshot.Port)},
			Volumes: []string{
				"./hookshot:/data",
				volumeHookshot + ":/cache",
			},
			DependsOn: []string{"synapse"},
		})
	}

	if cfg.SynapseAdmin.Enabled {
		manifest.Services.add("synapseadmin", ServiceSpec{
			Image:         cfg.SynapseAdmin.Image,
			ContainerName: cfg.ProjectName + "-synapseadmin",
			Restart:       "unless-stopped",
			Ports:         []string{fmt.Sprintf("%s:%d:80", cfg.HostFor(cfg.SynapseAdmin), cfg.SynapseAdmin.Port)},
			DependsOn:     []string{"synapse"},
		})
	}

	if cfg.Adminer.Enabled {
		manifest.Services.add("adminer", ServiceSpec{
			Image:         cfg.Adminer.Image,
			ContainerName: cfg.ProjectName + "-adminer",
			Restart:       "unless-stopped",
			Environment:   map[string]string{"ADMINER_DEFAULT_SERVER": "postgres"},
			Ports:         []string{fmt.Sprintf("%s:%d:8080", cfg.HostFor(cfg.Adminer), cfg.Adminer.Port)},
			DependsOn:     []string{"postgres"},
		})
	}

	if cfg.Mailhog.Enabled {
		manifest.Services.add("mailhog", ServiceSpec{
			Image:         cfg.Mailhog.Image,
			ContainerName: cfg.ProjectName + "-mailhog",
			Restart:       "unless-stopped",
			Ports: []string{
				fmt.Sprintf("%s:%d:8025", cfg.HostFor(cfg.Mailhog), cfg.Mailhog.Port),
				fmt.Sprintf("%s:%d:1025", cfg.HostFor(cfg.Mailhog), cfg.MailhogSMTPPort),
			},
		})
	}

	if cfg.Nginx.Enabled {
		nginx := ServiceSpec{
			Image:         cfg.Nginx.Image,
			ContainerName: cfg.ProjectName + "-nginx",
			Restart:       "unless-stopped",
			Ports:         []string{fmt.Sprintf("%s:%d:80", cfg.HostFor(cfg.Nginx), cfg.Nginx.Port)},
			Volumes:       []string{"./nginx/localmx.conf:/etc/nginx/conf.d/default.conf:ro"},
			DependsOn:     []string{"synapse"},
		}
		for _, fronted := range []struct {
			name    string
			enabled bool
		}{
			{"elementweb", cfg.ElementWeb.Enabled},
			{"mas", cfg.MAS.Enabled},
			{"hookshot", cfg.Hookshot.Enabled},
			{"synapseadmin", cfg.SynapseAdmin.Enabled},
		} {
			if fronted.enabled {
				nginx.DependsOn = append(nginx.DependsOn, fronted.name)
			}
		}
		manifest.Services.add("nginx", nginx)
	}

	return manifest, nil
}

// FrontedBy returns the compose service names the reverse proxy routes
// to for the given configuration. Used by restart-one: restarting a
// fronted service also restarts the proxy so routing follows the new
// container.
func FrontedBy(cfg config.Config) []string {
	fronted := []string{"synapse"}
	if cfg.ElementWeb.Enabled {
		fronted = append(fronted, "elementweb")
	}
	if cfg.MAS.Enabled {
		fronted = append(fronted, "mas")
	}
	if cfg.Hookshot.Enabled {
		fronted = append(fronted, "hookshot")
	}
	if cfg.SynapseAdmin.Enabled {
		fronted = append(fronted, "synapseadmin")
	}
	return fronted
}
