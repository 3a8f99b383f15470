// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"os"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/unitctl/service/unitfile"
)

const installDoc = `
Write a unit file for a service into the systemd services directory,
replacing any existing file for that service, then reload systemd.

The unit is either built from the flags, in which case --exec is
required, or read from an existing unit file with --from. A unit built
from flags is wanted by the default target (multi-user.target, or
default.target with --user) unless --wanted-by says otherwise.

Examples:
    unitctl install web --exec "/usr/bin/python3 -m http.server" --restart on-failure --enable --start
    unitctl install --user sync --from ./sync.service
`

func newInstallCommand() cmd.Command {
	return &installCommand{}
}

type installCommand struct {
	baseCommand

	service  string
	from     string
	params   unitfile.ServiceParams
	wantedBy []string
	enable   bool
	start    bool
}

// Info implements cmd.Command.
func (c *installCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "install",
		Args:    "<service>",
		Purpose: "Install a unit file for a service.",
		Doc:     installDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *installCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.StringVar(&c.params.ExecStart, "exec", "", "Command line the service runs")
	f.StringVar(&c.params.Description, "description", "", "Description of the service")
	f.Var(cmd.NewAppendStringsValue(&c.params.After), "after", "Unit the service starts after (may be repeated)")
	f.StringVar(&c.params.Restart, "restart", "", "Restart policy, eg on-failure or always")
	f.StringVar(&c.params.User, "user-name", "", "Account the service runs as")
	f.StringVar(&c.params.WorkingDirectory, "working-dir", "", "Directory the service runs in")
	f.Var(cmd.NewAppendStringsValue(&c.params.Environment), "env", "KEY=VALUE environment assignment (may be repeated)")
	f.Var(cmd.NewAppendStringsValue(&c.wantedBy), "wanted-by", "Target that wants the service (may be repeated)")
	f.StringVar(&c.from, "from", "", "Install this unit file instead of building one")
	f.BoolVar(&c.enable, "enable", false, "Enable the service once installed")
	f.BoolVar(&c.start, "start", false, "Start the service once installed")
}

// Init implements cmd.Command.
func (c *installCommand) Init(args []string) (err error) {
	c.service, args, err = serviceName(args)
	if err != nil {
		return errors.Trace(err)
	}
	if c.from != "" {
		if c.params.ExecStart != "" || c.params.Description != "" || c.params.Restart != "" ||
			c.params.User != "" || c.params.WorkingDirectory != "" ||
			len(c.params.After) > 0 || len(c.params.Environment) > 0 || len(c.wantedBy) > 0 {
			return errors.New("--from cannot be combined with flags describing the unit")
		}
	} else if c.params.ExecStart == "" {
		return errors.New("one of --exec or --from is required")
	}
	return c.baseCommand.Init(args)
}

// Run implements cmd.Command.
func (c *installCommand) Run(ctx *cmd.Context) error {
	sm, err := c.serviceManager()
	if err != nil {
		return errors.Trace(err)
	}
	unit, err := c.unit(ctx, sm)
	if err != nil {
		return errors.Trace(err)
	}

	if err := sm.Init(); err != nil {
		return errors.Trace(err)
	}
	if err := sm.InstallService(c.service, unit); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("installed %s", sm.UnitPath(c.service))

	if c.config.DaemonReload {
		if err := c.run(ctx, sm.DaemonReload()); err != nil {
			return err
		}
	}
	if c.enable {
		if err := c.run(ctx, sm.Enable(c.service)); err != nil {
			return err
		}
	}
	if c.start {
		if err := c.run(ctx, sm.Start(c.service)); err != nil {
			return err
		}
	}
	return nil
}

func (c *installCommand) unit(ctx *cmd.Context, sm ServiceManager) (unitfile.Unit, error) {
	if c.from != "" {
		path := ctx.AbsPath(c.from)
		data, err := os.ReadFile(path)
		if err != nil {
			return unitfile.Unit{}, errors.Annotatef(err, "reading %q", path)
		}
		unit, err := unitfile.Parse(data)
		return unit, errors.Annotatef(err, "%q", path)
	}

	params := c.params
	params.WantedBy = c.wantedBy
	if len(params.WantedBy) == 0 {
		params.WantedBy = []string{sm.DefaultTarget()}
	}
	unit, err := unitfile.NewServiceUnit(params)
	return unit, errors.Trace(err)
}
