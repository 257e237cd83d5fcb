// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Patch assigns a literal value at a dotted key path in a YAML
// document. "database.args.host" descends through mappings;
// numeric segments like "listeners.0" index into sequences.
type Patch struct {
	Path  string
	Value any
}

// ApplyPatches applies patches to a parsed YAML document in order.
// Intermediate mappings are created as needed; when two patches touch
// the same path, the later one wins. Key order of untouched keys is
// preserved, which keeps regenerated files diffable against what the
// upstream generator emitted.
func ApplyPatches(doc *yaml.Node, patches []Patch) error {
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			root.Content = append(root.Content, mapping)
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("document root is %v, expected a mapping", root.Kind)
	}

	for _, patch := range patches {
		if err := applyPatch(root, patch); err != nil {
			return fmt.Errorf("patch %q: %w", patch.Path, err)
		}
	}
	return nil
}

// applyPatch walks the path, creating intermediate mappings, and sets
// the final value.
func applyPatch(root *yaml.Node, patch Patch) error {
	segments := strings.Split(patch.Path, ".")
	current := root

	for i, segment := range segments {
		last := i == len(segments)-1

		switch current.Kind {
		case yaml.SequenceNode:
			index, err := strconv.Atoi(segment)
			if err != nil {
				return fmt.Errorf("segment %q indexes a sequence but is not a number", segment)
			}
			if index < 0 || index >= len(current.Content) {
				return fmt.Errorf("index %d out of range (sequence has %d items)", index, len(current.Content))
			}
			if last {
				valueNode := &yaml.Node{}
				if err := valueNode.Encode(patch.Value); err != nil {
					return fmt.Errorf("encode value: %w", err)
				}
				*current.Content[index] = *valueNode
				return nil
			}
			current = current.Content[index]

		case yaml.MappingNode:
			valueIndex := mappingValueIndex(current, segment)
			if last {
				valueNode := &yaml.Node{}
				if err := valueNode.Encode(patch.Value); err != nil {
					return fmt.Errorf("encode value: %w", err)
				}
				if valueIndex >= 0 {
					*current.Content[valueIndex] = *valueNode
				} else {
					keyNode := &yaml.Node{}
					keyNode.SetString(segment)
					current.Content = append(current.Content, keyNode, valueNode)
				}
				return nil
			}
			if valueIndex >= 0 {
				current = current.Content[valueIndex]
				// A scalar (often null) in the middle of the path is
				// replaced by a mapping so the descent can continue.
				if current.Kind == yaml.ScalarNode {
					*current = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
				}
			} else {
				keyNode := &yaml.Node{}
				keyNode.SetString(segment)
				child := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
				current.Content = append(current.Content, keyNode, child)
				current = child
			}

		default:
			return fmt.Errorf("segment %q: cannot descend into node kind %v", segment, current.Kind)
		}
	}
	return nil
}

// mappingValueIndex returns the Content index of the value node for
// the given key, or -1 when the key is absent.
func mappingValueIndex(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i + 1
		}
	}
	return -1
}

// ParseAndPatch unmarshals YAML, applies the patch list, and
// serializes the result with two-space indentation.
func ParseAndPatch(data []byte, patches []Patch) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if doc.Kind == 0 {
		// Empty input: start from an empty document.
		doc = yaml.Node{Kind: yaml.DocumentNode}
	}
	if err := ApplyPatches(&doc, patches); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return nil, fmt.Errorf("serialize YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("serialize YAML: %w", err)
	}
	return buf.Bytes(), nil
}
