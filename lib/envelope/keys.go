// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
)

// Keypair is an age X25519 identity in its text forms.
type Keypair struct {
	// Identity is the secret key, AGE-SECRET-KEY-1... Never log it.
	Identity string

	// Recipient is the public key, age1... Safe to share.
	Recipient string
}

// GenerateKeypair creates a new X25519 identity.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age keypair: %w", err)
	}
	return &Keypair{
		Identity:  identity.String(),
		Recipient: identity.Recipient().String(),
	}, nil
}

// ParseRecipients parses age1... public keys.
func ParseRecipients(keys []string) ([]age.Recipient, error) {
	recipients := make([]age.Recipient, 0, len(keys))
	for _, key := range keys {
		recipient, err := age.ParseX25519Recipient(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("parsing recipient %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}
	return recipients, nil
}

// ParseIdentities reads an age identity file: one AGE-SECRET-KEY-1...
// per line, with # comments and blank lines ignored.
func ParseIdentities(reader io.Reader) ([]age.Identity, error) {
	identities, err := age.ParseIdentities(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing identities: %w", err)
	}
	return identities, nil
}
