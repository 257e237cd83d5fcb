// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package compose

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the top-level compose document.
type Manifest struct {
	// Name is the compose project name. Container, network, and volume
	// names derive from it.
	Name string `yaml:"name"`

	// Services are the service blocks, serialized in the order they
	// were appended. Ordering is part of the file's contract: diffs
	// between regenerations stay minimal and reviewable.
	Services ServiceList `yaml:"services"`

	// Volumes are the named volumes, serialized in declaration order.
	Volumes VolumeList `yaml:"volumes,omitempty"`
}

// ServiceSpec describes a single service block.
type ServiceSpec struct {
	Image         string            `yaml:"image"`
	ContainerName string            `yaml:"container_name,omitempty"`
	Restart       string            `yaml:"restart,omitempty"`
	Command       []string          `yaml:"command,omitempty,flow"`
	Environment   map[string]string `yaml:"environment,omitempty"`
	Ports         []string          `yaml:"ports,omitempty"`
	Volumes       []string          `yaml:"volumes,omitempty"`
	DependsOn     []string          `yaml:"depends_on,omitempty"`
}

// namedService pairs a service block with its manifest key.
type namedService struct {
	name string
	spec ServiceSpec
}

// ServiceList is an ordered set of service blocks. yaml.v3 sorts map
// keys on marshal, which would destroy the fixed block ordering, so
// the list marshals itself into a mapping node by hand.
type ServiceList []namedService

// add appends a service block.
func (l *ServiceList) add(name string, spec ServiceSpec) {
	*l = append(*l, namedService{name: name, spec: spec})
}

// Has reports whether a service block with the given name is present.
func (l ServiceList) Has(name string) bool {
	for _, s := range l {
		if s.name == name {
			return true
		}
	}
	return false
}

// Names returns the service names in manifest order.
func (l ServiceList) Names() []string {
	names := make([]string, len(l))
	for i, s := range l {
		names[i] = s.name
	}
	return names
}

// Get returns the named service block.
func (l ServiceList) Get(name string) (ServiceSpec, bool) {
	for _, s := range l {
		if s.name == name {
			return s.spec, true
		}
	}
	return ServiceSpec{}, false
}

// MarshalYAML serializes the list as a mapping in insertion order.
func (l ServiceList) MarshalYAML() (any, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, service := range l {
		keyNode := &yaml.Node{}
		keyNode.SetString(service.name)

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(service.spec); err != nil {
			return nil, fmt.Errorf("encode service %q: %w", service.name, err)
		}

		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}
	return mapping, nil
}

// VolumeList is an ordered set of named volume declarations. Each
// volume uses the runtime's defaults, so the value side is an empty
// mapping.
type VolumeList []string

// MarshalYAML serializes the volumes as "name: {}" entries in
// declaration order.
func (l VolumeList) MarshalYAML() (any, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range l {
		keyNode := &yaml.Node{}
		keyNode.SetString(name)

		valueNode := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}

		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}
	return mapping, nil
}

// Render serializes the manifest to YAML with conventional two-space
// indentation.
func (m *Manifest) Render() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return nil, fmt.Errorf("marshal compose manifest: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("marshal compose manifest: %w", err)
	}
	return buf.Bytes(), nil
}
