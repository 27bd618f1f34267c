// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package account

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"golang.org/x/crypto/sha3"
)

// SingleKeyScheme is the authentication scheme byte for a single ed25519
// key.
const SingleKeyScheme = 0x00

// Account is a sender: an address and the key that controls it. An Account
// is immutable once constructed.
type Account struct {
	address move.Address
	key     ed25519.PrivateKey
}

// AuthenticationKey returns the address derived from an ed25519 public key,
// SHA3-256(key || scheme).
func AuthenticationKey(pub ed25519.PublicKey) move.Address {
	h := sha3.New256()
	_, _ = h.Write(pub)
	_, _ = h.Write([]byte{SingleKeyScheme})
	var addr move.Address
	copy(addr[:], h.Sum(nil))
	return addr
}

// New returns an account for the given private key. The address is derived
// from the public key.
func New(key ed25519.PrivateKey) (*Account, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.BadRequest.WithFormat("invalid private key length %d", len(key))
	}
	a := new(Account)
	a.key = make(ed25519.PrivateKey, len(key))
	copy(a.key, key)
	a.address = AuthenticationKey(a.PublicKey())
	return a, nil
}

// Generate returns an account with a fresh random key.
func Generate() (*Account, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.InternalError.WithFormat("generate key: %w", err)
	}
	return New(key)
}

// FromHex parses a hex-encoded key, with or without a 0x prefix. Both a
// 32-byte seed and a 64-byte seed||public key are accepted.
func FromHex(s string) (*Account, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("private key is not hex: %w", err)
	}

	switch len(b) {
	case ed25519.SeedSize:
		return New(ed25519.NewKeyFromSeed(b))
	case ed25519.PrivateKeySize:
		key := ed25519.PrivateKey(b)
		if !ed25519.NewKeyFromSeed(b[:ed25519.SeedSize]).Equal(key) {
			return nil, errors.BadRequest.With("private key does not match its public key")
		}
		return New(key)
	default:
		return nil, errors.BadRequest.WithFormat("invalid private key length %d", len(b))
	}
}

// FromEnv loads a hex-encoded key from an environment variable.
func FromEnv(name string) (*Account, error) {
	s, ok := os.LookupEnv(name)
	if !ok || s == "" {
		return nil, errors.NotFound.WithFormat("environment variable %s is not set", name)
	}
	a, err := FromHex(s)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load key from %s: %w", name, err)
	}
	return a, nil
}

// FromDotEnv loads a hex-encoded key from a variable defined in a dotenv
// file. The process environment is not consulted.
func FromDotEnv(path, name string) (*Account, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.NotFound.WithFormat("read %s: %w", path, err)
	}
	s, ok := env[name]
	if !ok || s == "" {
		return nil, errors.NotFound.WithFormat("%s does not define %s", path, name)
	}
	a, err := FromHex(s)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load key from %s in %s: %w", name, path, err)
	}
	return a, nil
}

// FromFile loads a hex-encoded key from a file.
func FromFile(path string) (*Account, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NotFound.WithFormat("read key file: %w", err)
	}
	a, err := FromHex(string(b))
	if err != nil {
		return nil, errors.UnknownError.WithFormat("load key from %s: %w", path, err)
	}
	return a, nil
}

// Address returns the account address.
func (a *Account) Address() move.Address { return a.address }

// PublicKey returns the account's public key.
func (a *Account) PublicKey() ed25519.PublicKey {
	return a.key.Public().(ed25519.PublicKey)
}

// Sign signs the message with the account's key.
func (a *Account) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(a.key, message), nil
}

// Seed returns the 32-byte private key seed, the form FromHex accepts.
func (a *Account) Seed() []byte {
	return a.key.Seed()
}

// String returns the address. The key is never formatted.
func (a *Account) String() string { return a.address.String() }

// GoString keeps the key out of %#v output.
func (a *Account) GoString() string { return "account(" + a.address.String() + ")" }
