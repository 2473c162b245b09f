// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package version exposes this module's own release version and the
// wire protocol version it implements.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// raw is the module's release version string, overridable at link
// time with -ldflags "-X datoviz.org/dvz/internal/version.raw=1.2.3".
var raw = "0.1.0-dev"

// Protocol is the wire protocol version this build implements (spec.md
// §4.9/§9 "protocol version pinned to 1"). It is independent of the
// module's own semver release.
const Protocol = 1

// Version returns the module's release version, parsed as a semver
// value. A malformed raw value (should only happen if set incorrectly
// via -ldflags) falls back to 0.0.0.
func Version() *semver.Version {
	v, err := semver.NewVersion(raw)
	if err != nil {
		v, _ = semver.NewVersion("0.0.0")
	}
	return v
}

// String returns "<release> (protocol <n>)", the form printed by
// `datoviz info`.
func String() string {
	return fmt.Sprintf("%s (protocol %d)", Version().String(), Protocol)
}
