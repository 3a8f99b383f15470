// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package systemd

import (
	"github.com/coreos/go-systemd/v22/util"
)

var isRunningSystemd = util.IsRunningSystemd

// IsRunning reports whether the host was booted with systemd. When it
// was not, unit files can still be written but no systemctl invocation
// will work.
func IsRunning() bool {
	running := isRunningSystemd()
	if !running {
		logger.Debugf("/run/systemd/system not found; systemd is not the init system")
	}
	return running
}
