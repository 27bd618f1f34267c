// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package signing

import (
	"crypto/ed25519"

	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
)

// Signer produces ed25519 signatures. An account, a private key, or a
// hardware or remote signer can all serve.
type Signer interface {
	PublicKey() ed25519.PublicKey
	Sign(message []byte) ([]byte, error)
}

// PrivateKey is a Signer backed by an in-memory ed25519 key.
type PrivateKey []byte

func (k PrivateKey) PublicKey() ed25519.PublicKey {
	if len(k) != ed25519.PrivateKeySize {
		return nil
	}
	return ed25519.PublicKey(k[32:])
}

func (k PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(k) != ed25519.PrivateKeySize {
		return nil, errors.BadRequest.With("invalid private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(k), message), nil
}

// nullSigner returns the public key of another signer and an all-zero
// signature. Nodes accept it for simulation and reject it for submission.
type nullSigner struct {
	Signer
}

func (nullSigner) Sign([]byte) ([]byte, error) {
	return make([]byte, ed25519.SignatureSize), nil
}
