// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
)

const uninstallDoc = `
Remove a service's unit file from the systemd services directory, then
reload systemd. It is an error if the service has no unit file there.

Use --stop and --disable to stop and disable the service before its unit
file is removed.

Examples:
    unitctl uninstall web --stop --disable
`

func newUninstallCommand() cmd.Command {
	return &uninstallCommand{}
}

type uninstallCommand struct {
	baseCommand

	service string
	stop    bool
	disable bool
}

// Info implements cmd.Command.
func (c *uninstallCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "uninstall",
		Args:    "<service>",
		Purpose: "Remove the unit file of a service.",
		Doc:     uninstallDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *uninstallCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.BoolVar(&c.stop, "stop", false, "Stop the service first")
	f.BoolVar(&c.disable, "disable", false, "Disable the service first")
}

// Init implements cmd.Command.
func (c *uninstallCommand) Init(args []string) (err error) {
	c.service, args, err = serviceName(args)
	if err != nil {
		return errors.Trace(err)
	}
	return c.baseCommand.Init(args)
}

// Run implements cmd.Command.
func (c *uninstallCommand) Run(ctx *cmd.Context) error {
	sm, err := c.serviceManager()
	if err != nil {
		return errors.Trace(err)
	}

	if c.stop {
		if err := c.run(ctx, sm.Stop(c.service)); err != nil {
			return err
		}
	}
	if c.disable {
		if err := c.run(ctx, sm.Disable(c.service)); err != nil {
			return err
		}
	}
	if err := sm.UninstallService(c.service); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("removed %s", sm.UnitPath(c.service))

	if c.config.DaemonReload {
		return c.run(ctx, sm.DaemonReload())
	}
	return nil
}
