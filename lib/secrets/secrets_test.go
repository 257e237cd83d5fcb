// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package secrets

import "testing"

func TestDerive_Deterministic(t *testing.T) {
	a, err := Derive("seed-one")
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	b, err := Derive("seed-one")
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}

	if a != b {
		t.Error("same seed must produce identical secrets")
	}
}

func TestDerive_SeedChangesEverything(t *testing.T) {
	a, err := Derive("seed-one")
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	b, err := Derive("seed-two")
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}

	if a.PostgresPassword == b.PostgresPassword {
		t.Error("different seeds must produce different postgres passwords")
	}
	if a.HookshotASToken == b.HookshotASToken {
		t.Error("different seeds must produce different AS tokens")
	}
}

func TestDerive_DomainSeparation(t *testing.T) {
	s, err := Derive("seed")
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}

	values := map[string]string{
		"PostgresPassword":         s.PostgresPassword,
		"RegistrationSharedSecret": s.RegistrationSharedSecret,
		"MacaroonSecretKey":        s.MacaroonSecretKey,
		"FormSecret":               s.FormSecret,
		"HookshotASToken":          s.HookshotASToken,
		"HookshotHSToken":          s.HookshotHSToken,
		"MASEncryptionSecret":      s.MASEncryptionSecret,
		"MASMatrixSecret":          s.MASMatrixSecret,
		"MASSynapseClientSecret":   s.MASSynapseClientSecret,
	}

	seen := make(map[string]string)
	for name, value := range values {
		if len(value) != 64 {
			t.Errorf("%s: length %d, want 64 hex characters", name, len(value))
		}
		if previous, ok := seen[value]; ok {
			t.Errorf("%s and %s derived the same value", name, previous)
		}
		seen[value] = name
	}
}
