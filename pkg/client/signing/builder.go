// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package signing

import (
	"crypto/ed25519"
	"strings"

	"gitlab.com/accumulatenetwork/moveclient/pkg/account"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/txn"
)

type Builder struct {
	Signer Signer

	// Simulate replaces the signature with zeros.
	Simulate bool
}

func (s *Builder) SetSigner(signer Signer) *Builder {
	s.Signer = signer
	return s
}

func (s *Builder) SetPrivateKey(privKey []byte) *Builder {
	s.Signer = PrivateKey(privKey)
	return s
}

func (s *Builder) ForSimulation() *Builder {
	s.Simulate = true
	return s
}

func (s *Builder) prepare(raw *txn.RawTransaction) (Signer, error) {
	var errs []string
	if raw == nil {
		errs = append(errs, "missing transaction")
	}
	if s.Signer == nil {
		errs = append(errs, "missing signer")
	} else if len(s.Signer.PublicKey()) != ed25519.PublicKeySize {
		errs = append(errs, "invalid public key")
	}
	if len(errs) > 0 {
		return nil, errors.BadRequest.WithFormat("cannot prepare signature: %s", strings.Join(errs, ", "))
	}

	if s.Simulate {
		return nullSigner{s.Signer}, nil
	}
	return s.Signer, nil
}

// Sign signs the raw transaction and returns the signed transaction. The
// signature covers the raw transaction salt followed by the canonical
// encoding.
func (s *Builder) Sign(raw *txn.RawTransaction) (*txn.SignedTransaction, error) {
	signer, err := s.prepare(raw)
	if err != nil {
		return nil, err
	}

	msg, err := txn.SigningMessage(raw)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("sign: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return nil, errors.InternalError.WithFormat("signer returned a %d-byte signature", len(sig))
	}

	signed := new(txn.SignedTransaction)
	signed.Raw = *raw
	signed.Authenticator.Ed25519 = &txn.Ed25519Authenticator{
		PublicKey: append([]byte{}, signer.PublicKey()...),
		Signature: sig,
	}
	return signed, nil
}

// Sign signs the raw transaction with the signer.
func Sign(raw *txn.RawTransaction, signer Signer) (*txn.SignedTransaction, error) {
	return new(Builder).SetSigner(signer).Sign(raw)
}

// Verify checks a signed transaction the way the node does: the signature
// must be valid over the signing message and the public key must
// authenticate the sender.
func Verify(signed *txn.SignedTransaction) error {
	auth := signed.Authenticator.Ed25519
	if auth == nil {
		return errors.Unauthenticated.With("not an ed25519 authenticator")
	}
	if len(auth.PublicKey) != ed25519.PublicKeySize {
		return errors.Unauthenticated.WithFormat("invalid public key length %d", len(auth.PublicKey))
	}
	if len(auth.Signature) != ed25519.SignatureSize {
		return errors.Unauthenticated.WithFormat("invalid signature length %d", len(auth.Signature))
	}

	if account.AuthenticationKey(auth.PublicKey) != signed.Raw.Sender {
		return errors.Unauthenticated.WithFormat("public key does not authenticate %v", signed.Raw.Sender)
	}

	msg, err := txn.SigningMessage(&signed.Raw)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !ed25519.Verify(auth.PublicKey, msg, auth.Signature) {
		return errors.Unauthenticated.With("invalid signature")
	}
	return nil
}
