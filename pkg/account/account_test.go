// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package account

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"golang.org/x/crypto/sha3"
)

var seed = strings.Repeat("07", 32)

func TestAddressDerivation(t *testing.T) {
	a, err := FromHex(seed)
	require.NoError(t, err)

	key := ed25519.NewKeyFromSeed(mustHex(seed))
	want := sha3.Sum256(append(append([]byte{}, key[32:]...), 0))
	addr := a.Address()
	require.Equal(t, want[:], addr[:])
	require.Equal(t, ed25519.PublicKey(key[32:]), a.PublicKey())
}

func TestFromHex(t *testing.T) {
	full := hex.EncodeToString(ed25519.NewKeyFromSeed(mustHex(seed)))
	bad := hex.EncodeToString(append(mustHex(seed), make([]byte, 32)...))

	cases := []struct {
		name, s string
		ok      bool
	}{
		{"seed", seed, true},
		{"prefixed seed", "0x" + seed, true},
		{"seed with newline", seed + "\n", true},
		{"full key", full, true},
		{"mismatched public key", bad, false},
		{"short", "abcd", false},
		{"not hex", "zz", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := FromHex(c.s)
			if !c.ok {
				require.Error(t, err)
				require.True(t, errors.Is(err, errors.BadRequest))
				return
			}
			require.NoError(t, err)
			expect, _ := FromHex(seed)
			require.Equal(t, expect.Address(), a.Address())
		})
	}
}

func TestSignVerifies(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	sig, err := a.Sign([]byte("message"))
	require.NoError(t, err)
	require.True(t, ed25519.Verify(a.PublicKey(), []byte("message"), sig))
}

func TestSources(t *testing.T) {
	expect, err := FromHex(seed)
	require.NoError(t, err)

	t.Setenv("MOVECLIENT_TEST_KEY", seed)
	a, err := Source{Env: "MOVECLIENT_TEST_KEY"}.Load()
	require.NoError(t, err)
	require.Equal(t, expect.Address(), a.Address())

	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte(seed+"\n"), 0600))
	a, err = Source{File: path}.Load()
	require.NoError(t, err)
	require.Equal(t, expect.Address(), a.Address())

	_, err = Source{}.Load()
	require.Error(t, err)
	_, err = Source{Env: "X", Hex: seed}.Load()
	require.Error(t, err)

	_, err = Source{Env: "MOVECLIENT_TEST_KEY_UNSET"}.Load()
	require.True(t, errors.Is(err, errors.NotFound))
}

func TestDotEnvSource(t *testing.T) {
	expect, err := FromHex(seed)
	require.NoError(t, err)

	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("# signing keys\nMOVECLIENT_DOTENV_KEY="+seed+"\nOTHER=1\n"), 0600))

	// The dotenv file fills in an unset variable
	a, err := Source{Env: "MOVECLIENT_DOTENV_KEY", DotEnv: dotenv}.Load()
	require.NoError(t, err)
	require.Equal(t, expect.Address(), a.Address())

	// The process environment wins
	other, err := Generate()
	require.NoError(t, err)
	t.Setenv("MOVECLIENT_DOTENV_KEY", hex.EncodeToString(other.Seed()))
	a, err = Source{Env: "MOVECLIENT_DOTENV_KEY", DotEnv: dotenv}.Load()
	require.NoError(t, err)
	require.Equal(t, other.Address(), a.Address())

	// A missing dotenv file reports the missing variable
	_, err = Source{Env: "MOVECLIENT_DOTENV_UNSET", DotEnv: filepath.Join(dir, "missing.env")}.Load()
	require.True(t, errors.Is(err, errors.NotFound))

	_, err = FromDotEnv(dotenv, "MOVECLIENT_DOTENV_UNSET")
	require.True(t, errors.Is(err, errors.NotFound))

	_, err = Source{DotEnv: dotenv}.Load()
	require.True(t, errors.Is(err, errors.BadRequest))
}

func TestFormattingHidesKey(t *testing.T) {
	a, err := FromHex(seed)
	require.NoError(t, err)
	for _, s := range []string{fmt.Sprint(a), fmt.Sprintf("%v", a), fmt.Sprintf("%#v", a)} {
		require.NotContains(t, s, seed)
		require.Contains(t, s, a.Address().String())
	}
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestSeedRoundTrip(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := FromHex(hex.EncodeToString(a.Seed()))
	require.NoError(t, err)
	require.Equal(t, a.Address(), b.Address())
}
