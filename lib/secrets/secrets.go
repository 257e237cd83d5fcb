// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

// Package secrets derives the per-service secrets a localmx stack
// needs (database password, homeserver secrets, appservice tokens)
// from a single master seed using HKDF-SHA256.
//
// Deterministic derivation is the point: regenerating a config file
// reproduces the same secrets, so the homeserver config, the bridge
// registration, and the compose manifest stay consistent with each
// other no matter which generator ran last or how often. The info
// strings provide domain separation between the derived values.
//
// Everything here is for throwaway local test deployments. The default
// seed is a fixed public string and none of the derived values may be
// treated as production secrets.
package secrets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDF info strings. One per derived secret; changing any of these
// changes that secret for every stack derived from an existing seed.
const (
	infoPostgresPassword   = "localmx.postgres.password.v1"
	infoRegistrationShared = "localmx.synapse.registration_shared_secret.v1"
	infoMacaroonKey        = "localmx.synapse.macaroon_secret_key.v1"
	infoFormSecret         = "localmx.synapse.form_secret.v1"
	infoHookshotASToken    = "localmx.hookshot.as_token.v1"
	infoHookshotHSToken    = "localmx.hookshot.hs_token.v1"
	infoMASEncryption      = "localmx.mas.encryption_secret.v1"
	infoMASMatrixSecret    = "localmx.mas.matrix_shared_secret.v1"
	infoMASSynapseClient   = "localmx.mas.synapse_client_secret.v1"
)

// Secrets holds every derived secret for one stack.
type Secrets struct {
	// PostgresPassword protects the shared Postgres instance.
	PostgresPassword string

	// RegistrationSharedSecret lets admin tooling register users
	// against Synapse without a registration token.
	RegistrationSharedSecret string

	// MacaroonSecretKey signs Synapse's login tokens.
	MacaroonSecretKey string

	// FormSecret protects Synapse's HTML form submissions.
	FormSecret string

	// HookshotASToken authenticates the bridge to the homeserver.
	HookshotASToken string

	// HookshotHSToken authenticates the homeserver to the bridge.
	HookshotHSToken string

	// MASEncryptionSecret is MAS's at-rest encryption secret.
	MASEncryptionSecret string

	// MASMatrixSecret is the shared secret between MAS and Synapse.
	MASMatrixSecret string

	// MASSynapseClientSecret is the OAuth client secret Synapse uses
	// when delegating auth to MAS.
	MASSynapseClientSecret string
}

// Derive expands the master seed into the full secret set.
func Derive(seed string) (Secrets, error) {
	derive := func(info string) (string, error) {
		return deriveHex(seed, info)
	}

	var s Secrets
	var err error
	if s.PostgresPassword, err = derive(infoPostgresPassword); err != nil {
		return Secrets{}, err
	}
	if s.RegistrationSharedSecret, err = derive(infoRegistrationShared); err != nil {
		return Secrets{}, err
	}
	if s.MacaroonSecretKey, err = derive(infoMacaroonKey); err != nil {
		return Secrets{}, err
	}
	if s.FormSecret, err = derive(infoFormSecret); err != nil {
		return Secrets{}, err
	}
	if s.HookshotASToken, err = derive(infoHookshotASToken); err != nil {
		return Secrets{}, err
	}
	if s.HookshotHSToken, err = derive(infoHookshotHSToken); err != nil {
		return Secrets{}, err
	}
	if s.MASEncryptionSecret, err = derive(infoMASEncryption); err != nil {
		return Secrets{}, err
	}
	if s.MASMatrixSecret, err = derive(infoMASMatrixSecret); err != nil {
		return Secrets{}, err
	}
	if s.MASSynapseClientSecret, err = derive(infoMASSynapseClient); err != nil {
		return Secrets{}, err
	}
	return s, nil
}

// deriveHex runs HKDF-SHA256 over the seed with the given info string
// and returns 32 bytes hex-encoded. No salt: the seed is already a
// full-entropy input in the only case that matters here, and identical
// output across machines is desired.
func deriveHex(seed, info string) (string, error) {
	reader := hkdf.New(sha256.New, []byte(seed), nil, []byte(info))
	key := make([]byte, 32)
	if _, err := io.ReadFull(reader, key); err != nil {
		return "", fmt.Errorf("derive %s: %w", info, err)
	}
	return hex.EncodeToString(key), nil
}
