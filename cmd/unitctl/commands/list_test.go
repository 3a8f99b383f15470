// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands_test

import (
	"encoding/json"

	"github.com/juju/cmd/v3/cmdtesting"
	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/unitctl/cmd/unitctl/commands"
	"github.com/juju/unitctl/service/systemd"
)

type listSuite struct {
	baseSuite
}

var _ = gc.Suite(&listSuite{})

func (s *listSuite) SetUpTest(c *gc.C) {
	s.baseSuite.SetUpTest(c)
	s.query.records = []systemd.ServiceRecord{
		{Name: "nginx", Active: true, Enabled: true, Memory: 10485760},
		{Name: "cron"},
	}
}

func (s *listSuite) TestTabular(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewListCommand())
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, ""+
		"NAME   ACTIVE    ENABLED   MEMORY\n"+
		"nginx  active    enabled   10 MiB\n"+
		"cron   inactive  disabled  \n")
	c.Check(s.mode, gc.Equals, systemd.SystemMode)
	s.query.CheckCallNames(c, "Services")
}

func (s *listSuite) TestRaw(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewListCommand(), "--format", "raw")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "nginx true true 10485760\ncron false false 0\n")
}

func (s *listSuite) TestJSON(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewListCommand(), "--format", "json")
	c.Assert(err, jc.ErrorIsNil)

	var records []systemd.ServiceRecord
	c.Assert(json.Unmarshal([]byte(cmdtesting.Stdout(ctx)), &records), jc.ErrorIsNil)
	c.Check(records, jc.DeepEquals, s.query.records)
}

func (s *listSuite) TestJSONEmpty(c *gc.C) {
	s.query.records = nil
	ctx, err := cmdtesting.RunCommand(c, commands.NewListCommand(), "--format", "json")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Matches, `\[\]\n?`)
}

func (s *listSuite) TestActive(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewListCommand(), "--active", "--format", "raw")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "nginx true true 10485760\n")
}

func (s *listSuite) TestUserFlag(c *gc.C) {
	_, err := cmdtesting.RunCommand(c, commands.NewListCommand(), "--user")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(s.mode, gc.Equals, systemd.UserMode)
}

func (s *listSuite) TestConfiguredUserMode(c *gc.C) {
	s.config.User = true
	_, err := cmdtesting.RunCommand(c, commands.NewListCommand())
	c.Assert(err, jc.ErrorIsNil)
	c.Check(s.mode, gc.Equals, systemd.UserMode)

	_, err = cmdtesting.RunCommand(c, commands.NewListCommand(), "--system")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(s.mode, gc.Equals, systemd.SystemMode)
}

func (s *listSuite) TestUserAndSystem(c *gc.C) {
	_, err := cmdtesting.RunCommand(c, commands.NewListCommand(), "--user", "--system")
	c.Assert(err, gc.ErrorMatches, "cannot specify both --user and --system")
}

func (s *listSuite) TestConfiguredFormat(c *gc.C) {
	s.config.Format = "raw"
	ctx, err := cmdtesting.RunCommand(c, commands.NewListCommand())
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "nginx true true 10485760\ncron false false 0\n")

	// The command line wins.
	ctx, err = cmdtesting.RunCommand(c, commands.NewListCommand(), "--format", "json")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Matches, `\[.*\]\n?`)
}

func (s *listSuite) TestConfiguredFormatInvalid(c *gc.C) {
	s.config.Format = "xml"
	_, err := cmdtesting.RunCommand(c, commands.NewListCommand())
	c.Assert(err, jc.Satisfies, errors.IsNotValid)
}

func (s *listSuite) TestQueryFails(c *gc.C) {
	s.query.SetErrors(errors.New("bus gone"))
	_, err := cmdtesting.RunCommand(c, commands.NewListCommand())
	c.Assert(err, gc.ErrorMatches, "querying system services: bus gone")
}

func (s *listSuite) TestExtraArgs(c *gc.C) {
	_, err := cmdtesting.RunCommand(c, commands.NewListCommand(), "nginx")
	c.Assert(err, gc.ErrorMatches, `unrecognized args: \["nginx"\]`)
}
