// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package systemd

import (
	"path/filepath"

	"github.com/juju/errors"
)

// Mode selects which systemd instance is managed: the system-wide one or
// the per-user one of the invoking user.
type Mode int

const (
	SystemMode Mode = iota
	UserMode
)

const (
	// EtcSystemdDir is where system-wide unit files are installed.
	EtcSystemdDir = "/etc/systemd/system"

	// userSystemdDir is the user unit directory, relative to $HOME.
	userSystemdDir = ".config/systemd/user"

	systemDefaultTarget = "multi-user.target"
	userDefaultTarget   = "default.target"

	userFlag = "--user"
)

// ModeFor returns UserMode if userMode is set and SystemMode otherwise.
func ModeFor(userMode bool) Mode {
	if userMode {
		return UserMode
	}
	return SystemMode
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == UserMode {
		return "user"
	}
	return "system"
}

// DefaultTarget returns the target services are normally wanted by.
func (m Mode) DefaultTarget() string {
	if m == UserMode {
		return userDefaultTarget
	}
	return systemDefaultTarget
}

// ScopeArgs returns the arguments that select the mode's systemd
// instance on the systemctl command line.
func (m Mode) ScopeArgs() []string {
	if m == UserMode {
		return []string{userFlag}
	}
	return nil
}

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// ServicesDir returns the directory unit files are installed into for
// the given mode. In user mode this is derived from $HOME, which must be
// set.
func ServicesDir(mode Mode, lookupEnv LookupEnvFunc) (string, error) {
	if mode != UserMode {
		return EtcSystemdDir, nil
	}
	home, ok := lookupEnv("HOME")
	if !ok || home == "" {
		return "", errors.NotFoundf("HOME environment variable")
	}
	return filepath.Join(home, userSystemdDir), nil
}
