// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package sr25519 wraps ChainSafe/go-schnorrkel's public-key verification behind the
// small surface the rest of the node needs: build a PublicKey from raw bytes, verify a
// signature over a message.
package sr25519

import (
	"fmt"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
)

// SigningContext is the domain-separation label collator and validator signatures are
// bound under, matching the label Substrate's runtime uses for the same payloads.
const SigningContext = "substrate"

// PublicKey size constants.
const (
	PublicKeyLength = 32
	SignatureLength = 64
)

// PublicKey is an sr25519 (schnorrkel) public key.
type PublicKey struct {
	key *schnorrkel.PublicKey
}

// NewPublicKey builds a PublicKey from its 32-byte encoding.
func NewPublicKey(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeyLength {
		return nil, fmt.Errorf("invalid public key length: expected %d, got %d", PublicKeyLength, len(b))
	}
	var buf [32]byte
	copy(buf[:], b)
	return &PublicKey{key: schnorrkel.NewPublicKey(buf)}, nil
}

// Verify reports whether sig is a valid schnorrkel signature over msg under this key.
func (k *PublicKey) Verify(msg, sig []byte) (bool, error) {
	if len(sig) != SignatureLength {
		return false, fmt.Errorf("invalid signature length: expected %d, got %d", SignatureLength, len(sig))
	}
	var sigBuf [64]byte
	copy(sigBuf[:], sig)

	signature := &schnorrkel.Signature{}
	if err := signature.Decode(sigBuf); err != nil {
		return false, fmt.Errorf("decoding signature: %w", err)
	}

	signingContext := schnorrkel.NewSigningContext([]byte(SigningContext), msg)
	return k.key.Verify(signature, signingContext)
}

// Encode returns the public key's 32-byte encoding.
func (k *PublicKey) Encode() [32]byte {
	return k.key.Encode()
}

// Keypair is an sr25519 signing keypair. This repository never signs collator
// statements in production (it only verifies them), but a keypair generator belongs
// next to the verifier it pairs with, and tests need one to build fixtures.
type Keypair struct {
	secret *schnorrkel.SecretKey
	public *schnorrkel.PublicKey
}

// GenerateKeypair produces a new random sr25519 keypair.
func GenerateKeypair() (*Keypair, error) {
	secret, public, err := schnorrkel.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("generating schnorrkel keypair: %w", err)
	}
	return &Keypair{secret: secret, public: public}, nil
}

// Public returns the keypair's public key.
func (kp *Keypair) Public() *PublicKey {
	return &PublicKey{key: kp.public}
}

// Sign produces a schnorrkel signature over msg under SigningContext.
func (kp *Keypair) Sign(msg []byte) ([]byte, error) {
	signingContext := schnorrkel.NewSigningContext([]byte(SigningContext), msg)
	sig, err := kp.secret.Sign(signingContext)
	if err != nil {
		return nil, fmt.Errorf("signing: %w", err)
	}
	enc := sig.Encode()
	return enc[:], nil
}
