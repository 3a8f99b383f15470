// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package systemd_test

import (
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/unitctl/service/systemd"
)

type runningSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&runningSuite{})

func (s *runningSuite) TestIsRunning(c *gc.C) {
	s.PatchValue(systemd.IsRunningSystemd, func() bool { return true })
	c.Check(systemd.IsRunning(), jc.IsTrue)

	s.PatchValue(systemd.IsRunningSystemd, func() bool { return false })
	c.Check(systemd.IsRunning(), jc.IsFalse)
}
