// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/cmd/v3/cmdtesting"
	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/unitctl/cmd/unitctl/commands"
	"github.com/juju/unitctl/service/unitfile"
)

const webUnit = `[Unit]
Description=static files

[Service]
ExecStart=/usr/bin/python3 -m http.server
Restart=on-failure

[Install]
WantedBy=default.target
`

type showUnitSuite struct {
	baseSuite
}

var _ = gc.Suite(&showUnitSuite{})

func (s *showUnitSuite) SetUpTest(c *gc.C) {
	s.baseSuite.SetUpTest(c)
	s.config.User = true
	dir := s.userDir(c)
	c.Assert(os.WriteFile(filepath.Join(dir, "web.service"), []byte(webUnit), 0644), jc.ErrorIsNil)
}

func (s *showUnitSuite) TestTabular(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewShowUnitCommand(), "web")
	c.Assert(err, jc.ErrorIsNil)

	lines := strings.Split(strings.TrimRight(cmdtesting.Stdout(ctx), "\n"), "\n")
	c.Assert(lines, gc.HasLen, 5)
	c.Check(strings.Fields(lines[0]), jc.DeepEquals, []string{"SECTION", "KEY", "VALUE"})
	c.Check(strings.Fields(lines[1]), jc.DeepEquals, []string{"Unit", "Description", "static", "files"})
	c.Check(strings.Fields(lines[3]), jc.DeepEquals, []string{"Service", "Restart", "on-failure"})
	c.Check(strings.Fields(lines[4]), jc.DeepEquals, []string{"Install", "WantedBy", "default.target"})
}

func (s *showUnitSuite) TestUnitFormat(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewShowUnitCommand(), "web", "--format", "unit")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, webUnit)
}

func (s *showUnitSuite) TestJSON(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewShowUnitCommand(), "web", "--format", "json")
	c.Assert(err, jc.ErrorIsNil)

	var unit unitfile.Unit
	c.Assert(json.Unmarshal([]byte(cmdtesting.Stdout(ctx)), &unit), jc.ErrorIsNil)
	c.Check(unit.Values(unitfile.SectionService, "ExecStart"), jc.DeepEquals, []string{"/usr/bin/python3 -m http.server"})
	c.Check(unit.Values(unitfile.SectionInstall, "WantedBy"), jc.DeepEquals, []string{"default.target"})
}

func (s *showUnitSuite) TestMissing(c *gc.C) {
	_, err := cmdtesting.RunCommand(c, commands.NewShowUnitCommand(), "ghost")
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
}

type installedSuite struct {
	baseSuite
}

var _ = gc.Suite(&installedSuite{})

func (s *installedSuite) TestInstalled(c *gc.C) {
	dir := s.userDir(c)
	for _, name := range []string{"web.service", "api.service", "notes.txt"} {
		c.Assert(os.WriteFile(filepath.Join(dir, name), nil, 0644), jc.ErrorIsNil)
	}

	ctx, err := cmdtesting.RunCommand(c, commands.NewInstalledCommand(), "--user")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "api\nweb\n")
}

func (s *installedSuite) TestInstalledNoDirectory(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewInstalledCommand(), "--user", "--format", "json")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Matches, `\[\]\n?`)
}
