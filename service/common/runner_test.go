// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package common_test

import (
	"bytes"
	"context"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/unitctl/service/common"
)

type runnerSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&runnerSuite{})

func (*runnerSuite) TestRunWiresStreams(c *gc.C) {
	var stdout, stderr bytes.Buffer
	inv := common.NewInvocation("sh", "-c", "cat; echo oops >&2")
	err := common.NewExecRunner().Run(context.Background(), inv, strings.NewReader("hello\n"), &stdout, &stderr)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(stdout.String(), gc.Equals, "hello\n")
	c.Check(stderr.String(), gc.Equals, "oops\n")
}

func (*runnerSuite) TestRunExitCode(c *gc.C) {
	inv := common.NewInvocation("sh", "-c", "exit 3")
	err := common.NewExecRunner().Run(context.Background(), inv, nil, nil, nil)
	c.Assert(err, gc.NotNil)
	c.Check(common.IsExitError(err), jc.IsTrue)

	var exitErr *common.ExitError
	c.Assert(errors.As(err, &exitErr), jc.IsTrue)
	c.Check(exitErr.Code, gc.Equals, 3)
	c.Check(exitErr.Invocation.Equal(inv), jc.IsTrue)
}

func (*runnerSuite) TestOutput(c *gc.C) {
	out, err := common.NewExecRunner().Output(context.Background(), common.NewInvocation("echo", "a", "b"))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(out), gc.Equals, "a b\n")
}

func (*runnerSuite) TestOutputCapturesStderrOnFailure(c *gc.C) {
	inv := common.NewInvocation("sh", "-c", "echo broken >&2; exit 1")
	_, err := common.NewExecRunner().Output(context.Background(), inv)
	c.Assert(err, gc.ErrorMatches, `sh -c .*: exit status 1: broken`)
}

func (*runnerSuite) TestMissingProgram(c *gc.C) {
	inv := common.NewInvocation("unitctl-no-such-program")
	err := common.NewExecRunner().Run(context.Background(), inv, nil, nil, nil)
	c.Assert(err, gc.ErrorMatches, `running unitctl-no-such-program: .*`)
	c.Check(common.IsExitError(err), jc.IsFalse)
}
