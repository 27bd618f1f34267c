// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package moveclient

const unknownVersion = "version unknown"

// Version is set at build time with
// -ldflags "-X gitlab.com/accumulatenetwork/moveclient.Version=...".
var Version = unknownVersion

// Commit is the git commit the binary was built from, if known.
var Commit string

func IsVersionKnown() bool {
	return Version != unknownVersion
}

// UserAgent is sent with every node request.
func UserAgent() string {
	if !IsVersionKnown() {
		return "moveclient"
	}
	return "moveclient/" + Version
}
