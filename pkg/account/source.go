// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package account

import (
	"os"

	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
)

// Source names where a key comes from. Exactly one of Env, File, and Hex
// should be set. Keys are always injected, never compiled in.
type Source struct {
	Env  string `toml:"env" mapstructure:"env"`
	File string `toml:"file" mapstructure:"file"`
	Hex  string `toml:"hex" mapstructure:"hex"`

	// DotEnv is a dotenv file that defines Env when the process environment
	// does not.
	DotEnv string `toml:"dotenv,omitempty" mapstructure:"dotenv"`
}

// Load loads the account the source describes.
func (s Source) Load() (*Account, error) {
	n := 0
	for _, v := range []string{s.Env, s.File, s.Hex} {
		if v != "" {
			n++
		}
	}
	if n != 1 {
		return nil, errors.BadRequest.WithFormat("key source must set exactly one of env, file, or hex, got %d", n)
	}

	if s.DotEnv != "" && s.Env == "" {
		return nil, errors.BadRequest.With("key source sets dotenv without env")
	}

	switch {
	case s.Env != "":
		a, err := FromEnv(s.Env)
		if err == nil || s.DotEnv == "" || !errors.Is(err, errors.NotFound) {
			return a, err
		}
		if _, statErr := os.Stat(s.DotEnv); statErr != nil {
			return nil, err
		}
		return FromDotEnv(s.DotEnv, s.Env)
	case s.File != "":
		return FromFile(s.File)
	default:
		return FromHex(s.Hex)
	}
}
