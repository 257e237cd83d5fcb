// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks the operator yes/no and typed-phrase questions on a
// terminal. A zero Prompter is not usable; construct with NewPrompter
// or build one around test readers/writers.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading from stdin and writing to stderr.
// Prompts go to stderr so command stdout stays clean for piping.
func NewPrompter() *Prompter {
	return &Prompter{in: bufio.NewReader(os.Stdin), out: os.Stderr}
}

// NewPrompterFrom returns a Prompter with explicit reader and writer.
// Used by tests and by callers that script confirmation input.
func NewPrompterFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question and returns true only for an explicit
// "y" or "yes" answer (case-insensitive). EOF and empty input count as
// no: declining is always the safe default.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// ConfirmPhrase asks the operator to type an exact phrase and returns
// true only on an exact match. Used for destructive actions where a
// stray "y" must not be enough.
func (p *Prompter) ConfirmPhrase(question, phrase string) (bool, error) {
	fmt.Fprintf(p.out, "%s\nType %q to confirm: ", question, phrase)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return strings.TrimSpace(line) == phrase, nil
}
