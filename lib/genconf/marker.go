// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package genconf

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// markerDomainKey is the BLAKE3 keyed-hash key for generated-file
// fingerprints. The bytes are the ASCII domain name zero-padded to 32,
// readable in hex dumps without losing any property of keyed hashing.
var markerDomainKey = [32]byte{
	'l', 'o', 'c', 'a', 'l', 'm', 'x', '.', 'g', 'e', 'n', 'c', 'o', 'n', 'f', '.',
	'f', 'i', 'l', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// markerPrefix identifies a file as owned by this tooling. Anything
// carrying it is safe to overwrite or delete.
const markerPrefix = "Managed by localmx"

// Fingerprint returns the keyed BLAKE3 digest of a generated file
// body, truncated to 8 bytes and hex-encoded. Truncation is fine:
// this detects accidental hand-edits, not adversaries.
func Fingerprint(body []byte) string {
	// NewKeyed errors only on a wrong key length, which the fixed-size
	// array rules out.
	hasher, err := blake3.NewKeyed(markerDomainKey[:])
	if err != nil {
		panic("genconf: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(body)
	sum := hasher.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

// markerLine builds the marker comment for a body, using the given
// line-comment prefix ("#" for YAML and server blocks, "//" is not
// needed since JSON carries its marker as a key instead).
func markerLine(comment string, body []byte) string {
	return fmt.Sprintf("%s %s. fingerprint=%s. Regenerate with \"localmx gen\"; do not edit by hand.\n",
		comment, markerPrefix, Fingerprint(body))
}

// WriteManaged writes body to path with a leading marker comment,
// creating parent directories as needed.
func WriteManaged(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	content := append([]byte(markerLine("#", body)), body...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// IsManaged reports whether data carries this tooling's marker. The
// marker is the first line for comment-capable formats; JSON output
// carries it as a top-level key, which lands on the second line, so
// the scan covers the first few lines.
func IsManaged(data []byte) bool {
	rest := data
	for i := 0; i < 3 && len(rest) > 0; i++ {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte("\n"))
		if bytes.Contains(line, []byte(markerPrefix)) {
			return true
		}
	}
	return false
}

// HandEdited reports whether a managed file's body no longer matches
// the fingerprint in its marker. Returns false for unmanaged files;
// callers check IsManaged first when the distinction matters.
func HandEdited(data []byte) bool {
	firstLine, body, found := bytes.Cut(data, []byte("\n"))
	if !found || !bytes.Contains(firstLine, []byte(markerPrefix)) {
		return false
	}
	recorded := fingerprintFromMarker(string(firstLine))
	if recorded == "" {
		return false
	}
	return recorded != Fingerprint(body)
}

// fingerprintFromMarker extracts the fingerprint hex from a marker line.
func fingerprintFromMarker(line string) string {
	const tag = "fingerprint="
	index := strings.Index(line, tag)
	if index < 0 {
		return ""
	}
	rest := line[index+len(tag):]
	end := strings.IndexByte(rest, '.')
	if end < 0 {
		return rest
	}
	return rest[:end]
}
