// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Service describes one optional stack service: whether it is part of
// the deployment, which image runs it, and where its HTTP surface is
// published on the host. Host may be empty, meaning the stack-wide
// bind host applies.
type Service struct {
	Enabled bool
	Image   string
	Host    string
	Port    int
}

// Config is the full environment configuration for one localmx stack.
// It is loaded once at startup and never mutated afterwards.
type Config struct {
	// ProjectName is the compose project name. Container, network, and
	// volume names all derive from it, as does the delete confirmation
	// phrase.
	ProjectName string

	// Runtime selects the container runtime CLI: "docker" or "podman".
	Runtime string

	// ServerName is the Matrix server name baked into user and room IDs.
	ServerName string

	// BindHost is the host address published ports bind to. Individual
	// services may override it with their own Host.
	BindHost string

	// DataDir is the root for generated config files and bind-mounted
	// service data. Deleted wholesale by the delete action.
	DataDir string

	// ContainerUID is the UID the Synapse process runs as inside its
	// container. The permission fixer chowns bind mounts to it.
	ContainerUID int

	// SecretSeed is the master seed all per-service secrets are derived
	// from. This is a throwaway local test deployment; the seed is not
	// a secret and defaults to a fixed string.
	SecretSeed string

	// Core services. Synapse and Postgres are always part of the stack.
	SynapseImage     string
	SynapsePort      int
	PostgresImage    string
	PostgresDatabase string
	PostgresUser     string

	// Optional services.
	ElementWeb   Service
	Adminer      Service
	Mailhog      Service
	SynapseAdmin Service
	MAS          Service
	Hookshot     Service
	Nginx        Service

	// MailhogSMTPPort is the host port for Mailhog's SMTP listener,
	// alongside the web UI port in Mailhog.Port.
	MailhogSMTPPort int

	// HookshotEncryption enables Hookshot's end-to-end encryption
	// support. Incompatible with MAS; see Validate.
	HookshotEncryption bool
}

// Default returns the built-in configuration. Every recognized key has
// a value here, so a missing config file produces a working stack:
// Synapse + Postgres + Element Web behind Nginx, everything else off.
func Default() Config {
	return Config{
		ProjectName:  "localmx",
		Runtime:      "docker",
		ServerName:   "localmx.test",
		BindHost:     "127.0.0.1",
		DataDir:      "./localmx-data",
		ContainerUID: 991,
		SecretSeed:   "localmx-insecure-test-seed",

		SynapseImage:     "matrixdotorg/synapse:latest",
		SynapsePort:      8008,
		PostgresImage:    "docker.io/postgres:16-alpine",
		PostgresDatabase: "synapse",
		PostgresUser:     "synapse",

		ElementWeb: Service{
			Enabled: true,
			Image:   "vectorim/element-web:latest",
			Port:    8010,
		},
		Adminer: Service{
			Image: "adminer:latest",
			Port:  8015,
		},
		Mailhog: Service{
			Image: "mailhog/mailhog:latest",
			Port:  8025,
		},
		SynapseAdmin: Service{
			Image: "awesometechnologies/synapse-admin:latest",
			Port:  8088,
		},
		MAS: Service{
			Image: "ghcr.io/element-hq/matrix-authentication-service:latest",
			Port:  8080,
		},
		Hookshot: Service{
			Image: "halfshot/matrix-hookshot:latest",
			Port:  9000,
		},
		Nginx: Service{
			Enabled: true,
			Image:   "docker.io/nginx:alpine",
			Port:    8000,
		},

		MailhogSMTPPort: 1025,
	}
}

// Load reads the key=value configuration file at path over the built-in
// defaults. A missing file yields the defaults unchanged. Unknown keys
// and malformed lines are errors.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return Config{}, fmt.Errorf("%s:%d: expected KEY=VALUE, got %q", path, lineNumber, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := cfg.apply(key, value); err != nil {
			return Config{}, fmt.Errorf("%s:%d: %w", path, lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return cfg, nil
}

// apply sets a single configuration key. The key names match the
// shell-assignment style the config file has always used.
func (c *Config) apply(key, value string) error {
	switch key {
	case "projectName":
		c.ProjectName = value
	case "runtime":
		c.Runtime = value
	case "serverName":
		c.ServerName = value
	case "bindHost":
		c.BindHost = value
	case "dataDir":
		c.DataDir = value
	case "containerUID":
		return setInt(&c.ContainerUID, key, value)
	case "secretSeed":
		c.SecretSeed = value

	case "synapseImage":
		c.SynapseImage = value
	case "synapsePort":
		return setInt(&c.SynapsePort, key, value)
	case "postgresImage":
		c.PostgresImage = value
	case "postgresDatabase":
		c.PostgresDatabase = value
	case "postgresUser":
		c.PostgresUser = value

	case "enableElementWeb":
		return setBool(&c.ElementWeb.Enabled, key, value)
	case "elementWebImage":
		c.ElementWeb.Image = value
	case "elementWebHost":
		c.ElementWeb.Host = value
	case "elementWebPort":
		return setInt(&c.ElementWeb.Port, key, value)

	case "enableAdminer":
		return setBool(&c.Adminer.Enabled, key, value)
	case "adminerImage":
		c.Adminer.Image = value
	case "adminerHost":
		c.Adminer.Host = value
	case "adminerPort":
		return setInt(&c.Adminer.Port, key, value)

	case "enableMailhog":
		return setBool(&c.Mailhog.Enabled, key, value)
	case "mailhogImage":
		c.Mailhog.Image = value
	case "mailhogHost":
		c.Mailhog.Host = value
	case "mailhogPort":
		return setInt(&c.Mailhog.Port, key, value)
	case "mailhogSMTPPort":
		return setInt(&c.MailhogSMTPPort, key, value)

	case "enableSynapseAdmin":
		return setBool(&c.SynapseAdmin.Enabled, key, value)
	case "synapseAdminImage":
		c.SynapseAdmin.Image = value
	case "synapseAdminHost":
		c.SynapseAdmin.Host = value
	case "synapseAdminPort":
		return setInt(&c.SynapseAdmin.Port, key, value)

	case "enableMAS":
		return setBool(&c.MAS.Enabled, key, value)
	case "masImage":
		c.MAS.Image = value
	case "masHost":
		c.MAS.Host = value
	case "masPort":
		return setInt(&c.MAS.Port, key, value)

	case "enableHookshot":
		return setBool(&c.Hookshot.Enabled, key, value)
	case "hookshotImage":
		c.Hookshot.Image = value
	case "hookshotHost":
		c.Hookshot.Host = value
	case "hookshotPort":
		return setInt(&c.Hookshot.Port, key, value)
	case "enableHookshotEncryption":
		return setBool(&c.HookshotEncryption, key, value)

	case "enableNginx":
		return setBool(&c.Nginx.Enabled, key, value)
	case "nginxImage":
		c.Nginx.Image = value
	case "nginxHost":
		c.Nginx.Host = value
	case "nginxPort":
		return setInt(&c.Nginx.Port, key, value)

	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}

func setBool(target *bool, key, value string) error {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: expected a boolean, got %q", key, value)
	}
	*target = parsed
	return nil
}

func setInt(target *int, key, value string) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: expected an integer, got %q", key, value)
	}
	*target = parsed
	return nil
}

// Validate checks the cross-key invariants. It runs before anything is
// generated or written so an invalid combination never leaves partial
// output behind.
func (c *Config) Validate() error {
	if c.Runtime != "docker" && c.Runtime != "podman" {
		return fmt.Errorf("runtime must be \"docker\" or \"podman\", got %q", c.Runtime)
	}
	if c.HookshotEncryption && !c.Hookshot.Enabled {
		return fmt.Errorf("enableHookshotEncryption requires enableHookshot=true")
	}
	// Hookshot's encrypted appservice mode talks to Synapse's device
	// APIs directly and cannot work behind MAS-delegated auth.
	if c.HookshotEncryption && c.MAS.Enabled {
		return fmt.Errorf("enableHookshotEncryption and enableMAS are mutually exclusive")
	}
	return nil
}

// HostFor returns the bind host for a service: its own Host if set,
// otherwise the stack-wide BindHost.
func (c *Config) HostFor(s Service) string {
	if s.Host != "" {
		return s.Host
	}
	return c.BindHost
}

// URLFor returns the externally reachable HTTP URL for a service.
func (c *Config) URLFor(s Service) string {
	return fmt.Sprintf("http://%s:%d", c.HostFor(s), s.Port)
}

// SynapseURL returns the externally reachable client API URL for the
// homeserver.
func (c *Config) SynapseURL() string {
	return fmt.Sprintf("http://%s:%d", c.BindHost, c.SynapsePort)
}
