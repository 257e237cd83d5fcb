// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseAndPatchReplacesScalar(t *testing.T) {
	input := []byte("server_name: placeholder.example\nreport_stats: true\n")
	out, err := ParseAndPatch(input, []Patch{
		{Path: "server_name", Value: "localmx.test"},
		{Path: "report_stats", Value: false},
	})
	if err != nil {
		t.Fatalf("ParseAndPatch: %v", err)
	}
	var got map[string]any
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got["server_name"] != "localmx.test" {
		t.Fatalf("server_name = %v", got["server_name"])
	}
	if got["report_stats"] != false {
		t.Fatalf("report_stats = %v", got["report_stats"])
	}
}

func TestParseAndPatchCreatesIntermediateMappings(t *testing.T) {
	out, err := ParseAndPatch([]byte("server_name: localmx.test\n"), []Patch{
		{Path: "experimental_features.msc3861.enabled", Value: true},
	})
	if err != nil {
		t.Fatalf("ParseAndPatch: %v", err)
	}
	var got struct {
		Experimental struct {
			MSC3861 struct {
				Enabled bool `yaml:"enabled"`
			} `yaml:"msc3861"`
		} `yaml:"experimental_features"`
	}
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !got.Experimental.MSC3861.Enabled {
		t.Fatalf("nested value not set, output:\n%s", out)
	}
}

func TestParseAndPatchIndexesSequences(t *testing.T) {
	input := []byte(`listeners:
  - port: 8008
    bind_addresses: ['::1', '127.0.0.1']
  - port: 9093
`)
	out, err := ParseAndPatch(input, []Patch{
		{Path: "listeners.0.bind_addresses", Value: []string{"0.0.0.0"}},
	})
	if err != nil {
		t.Fatalf("ParseAndPatch: %v", err)
	}
	var got struct {
		Listeners []struct {
			Port          int      `yaml:"port"`
			BindAddresses []string `yaml:"bind_addresses"`
		} `yaml:"listeners"`
	}
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(got.Listeners) != 2 || got.Listeners[1].Port != 9093 {
		t.Fatalf("sequence structure disturbed: %+v", got.Listeners)
	}
	if len(got.Listeners[0].BindAddresses) != 1 || got.Listeners[0].BindAddresses[0] != "0.0.0.0" {
		t.Fatalf("bind_addresses = %v", got.Listeners[0].BindAddresses)
	}
}

func TestParseAndPatchLaterPatchWins(t *testing.T) {
	out, err := ParseAndPatch([]byte("a: 1\n"), []Patch{
		{Path: "a", Value: 2},
		{Path: "a", Value: 3},
	})
	if err != nil {
		t.Fatalf("ParseAndPatch: %v", err)
	}
	if !strings.Contains(string(out), "a: 3") {
		t.Fatalf("later patch did not win:\n%s", out)
	}
}

func TestParseAndPatchPreservesKeyOrder(t *testing.T) {
	input := []byte("first: 1\nsecond: 2\nthird: 3\n")
	out, err := ParseAndPatch(input, []Patch{{Path: "second", Value: 20}})
	if err != nil {
		t.Fatalf("ParseAndPatch: %v", err)
	}
	text := string(out)
	if !(strings.Index(text, "first:") < strings.Index(text, "second:") &&
		strings.Index(text, "second:") < strings.Index(text, "third:")) {
		t.Fatalf("key order disturbed:\n%s", text)
	}
}

func TestParseAndPatchReplacesNullWithMapping(t *testing.T) {
	out, err := ParseAndPatch([]byte("presence:\n"), []Patch{
		{Path: "presence.enabled", Value: false},
	})
	if err != nil {
		t.Fatalf("ParseAndPatch: %v", err)
	}
	var got struct {
		Presence struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"presence"`
	}
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if got.Presence.Enabled {
		t.Fatal("expected enabled=false under previously null key")
	}
}

func TestParseAndPatchSequenceIndexOutOfRange(t *testing.T) {
	_, err := ParseAndPatch([]byte("items:\n  - a\n"), []Patch{
		{Path: "items.5", Value: "b"},
	})
	if err == nil {
		t.Fatal("expected out-of-range error")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("unexpected error: %v", err)
	}
}
