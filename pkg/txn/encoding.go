// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package txn

import (
	"encoding/hex"

	"github.com/fardream/go-bcs/bcs"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// Domain separators. The verifier derives the same prefixes, so these are
// part of the wire contract.
const (
	RawTransactionSalt = "APTOS::RawTransaction"
	TransactionSalt    = "APTOS::Transaction"
)

// userTransactionVariant is the index of user transactions in the ledger's
// transaction enum, which the transaction hash covers.
const userTransactionVariant = 0

var (
	rawTransactionPrefix = sha3.Sum256([]byte(RawTransactionSalt))
	transactionPrefix    = sha3.Sum256([]byte(TransactionSalt))
)

// Encode returns the canonical encoding of the raw transaction.
func Encode(raw *RawTransaction) ([]byte, error) {
	if err := raw.check(); err != nil {
		return nil, err
	}
	b, err := bcs.Marshal(*raw)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("encode raw transaction: %w", err)
	}
	return b, nil
}

// Decode decodes a raw transaction. Trailing bytes are an error.
func Decode(b []byte) (*RawTransaction, error) {
	raw := new(RawTransaction)
	err := decodeExact(b, func(d *decoder) error { return d.rawTransaction(raw) })
	if err != nil {
		return nil, errors.EncodingError.WithFormat("decode raw transaction: %w", err)
	}
	return raw, nil
}

// EncodeSigned returns the canonical encoding of the signed transaction. This
// is the submission body.
func EncodeSigned(signed *SignedTransaction) ([]byte, error) {
	if err := signed.Raw.check(); err != nil {
		return nil, err
	}
	if signed.Authenticator.Ed25519 == nil && signed.Authenticator.MultiEd25519 == nil {
		return nil, errors.EncodingError.With("signed transaction has no authenticator")
	}
	b, err := bcs.Marshal(*signed)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("encode signed transaction: %w", err)
	}
	return b, nil
}

// DecodeSigned decodes a signed transaction. Trailing bytes are an error.
func DecodeSigned(b []byte) (*SignedTransaction, error) {
	signed := new(SignedTransaction)
	err := decodeExact(b, func(d *decoder) error {
		err := d.rawTransaction(&signed.Raw)
		if err != nil {
			return err
		}
		return d.authenticator(&signed.Authenticator)
	})
	if err != nil {
		return nil, errors.EncodingError.WithFormat("decode signed transaction: %w", err)
	}
	return signed, nil
}

// SigningMessage returns the bytes a sender signs: the raw transaction salt
// hash followed by the encoded raw transaction.
func SigningMessage(raw *RawTransaction) ([]byte, error) {
	b, err := Encode(raw)
	if err != nil {
		return nil, err
	}
	msg := make([]byte, 0, len(rawTransactionPrefix)+len(b))
	msg = append(msg, rawTransactionPrefix[:]...)
	msg = append(msg, b...)
	return msg, nil
}

// Hash returns the hash the node reports for the signed transaction.
func Hash(signed *SignedTransaction) ([32]byte, error) {
	b, err := EncodeSigned(signed)
	if err != nil {
		return [32]byte{}, err
	}
	h := sha3.New256()
	_, _ = h.Write(transactionPrefix[:])
	_, _ = h.Write([]byte{userTransactionVariant})
	_, _ = h.Write(b)
	var hash [32]byte
	copy(hash[:], h.Sum(nil))
	return hash, nil
}

// HashString formats a transaction hash the way the node does.
func HashString(hash [32]byte) string {
	return "0x" + hex.EncodeToString(hash[:])
}

func (raw *RawTransaction) check() error {
	p := raw.Payload
	n := 0
	if p.Script != nil {
		n++
	}
	if p.ModuleBundle != nil {
		n++
	}
	if p.EntryFunction != nil {
		n++
	}
	if n != 1 {
		return errors.EncodingError.WithFormat("transaction payload must have exactly one variant, got %d", n)
	}
	return nil
}

func decodeExact(b []byte, decode func(*decoder) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.EncodingError.WithFormat("malformed input: %v", r)
		}
	}()

	d := &decoder{buf: b}
	err = decode(d)
	if err != nil {
		return err
	}
	if d.pos != len(b) {
		return errors.EncodingError.WithFormat("%d trailing bytes", len(b)-d.pos)
	}
	return nil
}
