// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "testing"

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"setup", "setup", 0},
		{"steup", "setup", 2},
		{"stp", "stop", 1},
		{"", "pull", 4},
		{"links", "", 5},
		{"delete", "stop", 6},
	}

	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "setup"},
		{Name: "stop"},
		{Name: "delete"},
		{Name: "pull"},
	}

	cases := []struct {
		input string
		want  string
	}{
		{"steup", "setup"},
		{"stpo", "stop"},
		{"delte", "delete"},
		{"xyzzyxyz", ""},
	}

	for _, c := range cases {
		if got := suggestCommand(c.input, commands); got != c.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
