// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands_test

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/cmd/v3/cmdtesting"
	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/unitctl/cmd/unitctl/commands"
	"github.com/juju/unitctl/service/common"
)

type lifecycleSuite struct {
	baseSuite
}

var _ = gc.Suite(&lifecycleSuite{})

var lifecycleCommands = []struct {
	verb    string
	command func() cmd.Command
}{
	{"start", commands.NewStartCommand},
	{"stop", commands.NewStopCommand},
	{"restart", commands.NewRestartCommand},
	{"reload", commands.NewReloadCommand},
	{"enable", commands.NewEnableCommand},
	{"disable", commands.NewDisableCommand},
	{"status", commands.NewStatusCommand},
}

func (s *lifecycleSuite) TestRuns(c *gc.C) {
	for _, test := range lifecycleCommands {
		c.Logf("%s", test.verb)
		s.runner.ResetCalls()

		_, err := cmdtesting.RunCommand(c, test.command(), "nginx")
		c.Assert(err, jc.ErrorIsNil)
		s.runner.CheckCall(c, 0, "Run", "systemctl "+test.verb+" nginx")
	}
}

func (s *lifecycleSuite) TestRunsUser(c *gc.C) {
	for _, test := range lifecycleCommands {
		c.Logf("%s", test.verb)
		s.runner.ResetCalls()

		_, err := cmdtesting.RunCommand(c, test.command(), "--user", "nginx")
		c.Assert(err, jc.ErrorIsNil)
		s.runner.CheckCall(c, 0, "Run", "systemctl --user "+test.verb+" nginx")
	}
}

func (s *lifecycleSuite) TestDryRun(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewRestartCommand(), "--dry-run", "--user", "my app")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "systemctl --user restart 'my app'\n")
	s.runner.CheckNoCalls(c)
}

func (s *lifecycleSuite) TestExitCodePassedThrough(c *gc.C) {
	inv := common.NewInvocation("systemctl", "status", "nginx")
	s.runner.SetErrors(&common.ExitError{Invocation: inv, Code: 3})

	_, err := cmdtesting.RunCommand(c, commands.NewStatusCommand(), "nginx")
	c.Assert(err, gc.NotNil)
	rcErr, ok := err.(*cmd.RcPassthroughError)
	c.Assert(ok, jc.IsTrue)
	c.Check(rcErr.Code, gc.Equals, 3)
}

func (s *lifecycleSuite) TestRunnerFails(c *gc.C) {
	s.runner.SetErrors(errors.New("exec format error"))

	_, err := cmdtesting.RunCommand(c, commands.NewStartCommand(), "nginx")
	c.Assert(err, gc.ErrorMatches, "exec format error")
}

func (s *lifecycleSuite) TestMissingName(c *gc.C) {
	_, err := cmdtesting.RunCommand(c, commands.NewStartCommand())
	c.Assert(err, gc.ErrorMatches, "no service name specified")
}

func (s *lifecycleSuite) TestTooManyArgs(c *gc.C) {
	_, err := cmdtesting.RunCommand(c, commands.NewStopCommand(), "a", "b")
	c.Assert(err, gc.ErrorMatches, `unrecognized args: \["b"\]`)
}

func (s *lifecycleSuite) TestDaemonReload(c *gc.C) {
	_, err := cmdtesting.RunCommand(c, commands.NewDaemonReloadCommand(), "--user")
	c.Assert(err, jc.ErrorIsNil)
	s.runner.CheckCall(c, 0, "Run", "systemctl --user daemon-reload")

	ctx, err := cmdtesting.RunCommand(c, commands.NewDaemonReloadCommand(), "--dry-run")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "systemctl daemon-reload\n")
	s.runner.CheckCallNames(c, "Run")
}
