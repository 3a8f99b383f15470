// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/unitctl/service/common"
)

const lifecycleDoc = `
Run "systemctl %s" for the named service, against the system or the
user instance of systemd. The exit code of systemctl becomes the exit
code of unitctl.

With --dry-run the systemctl command line is printed instead of run.
`

// lifecycleCommand runs one systemctl verb for one service.
type lifecycleCommand struct {
	baseCommand

	verb    string
	purpose string
	build   func(ServiceManager, string) common.Invocation

	service string
	dryRun  bool
}

func newStartCommand() cmd.Command {
	return newLifecycleCommand("start", "Start a service.", ServiceManager.Start)
}

func newStopCommand() cmd.Command {
	return newLifecycleCommand("stop", "Stop a service.", ServiceManager.Stop)
}

func newRestartCommand() cmd.Command {
	return newLifecycleCommand("restart", "Restart a service.", ServiceManager.Restart)
}

func newReloadCommand() cmd.Command {
	return newLifecycleCommand("reload", "Ask a service to reload its configuration.", ServiceManager.Reload)
}

func newEnableCommand() cmd.Command {
	return newLifecycleCommand("enable", "Enable a service.", ServiceManager.Enable)
}

func newDisableCommand() cmd.Command {
	return newLifecycleCommand("disable", "Disable a service.", ServiceManager.Disable)
}

func newStatusCommand() cmd.Command {
	return newLifecycleCommand("status", "Show the runtime status of a service.", ServiceManager.Status)
}

func newLifecycleCommand(verb, purpose string, build func(ServiceManager, string) common.Invocation) *lifecycleCommand {
	return &lifecycleCommand{
		verb:    verb,
		purpose: purpose,
		build:   build,
	}
}

// Info implements cmd.Command.
func (c *lifecycleCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    c.verb,
		Args:    "<service>",
		Purpose: c.purpose,
		Doc:     fmt.Sprintf(lifecycleDoc, c.verb),
	}
}

// SetFlags implements cmd.Command.
func (c *lifecycleCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.BoolVar(&c.dryRun, "dry-run", false, "Print the systemctl command instead of running it")
}

// Init implements cmd.Command.
func (c *lifecycleCommand) Init(args []string) (err error) {
	c.service, args, err = serviceName(args)
	if err != nil {
		return errors.Trace(err)
	}
	return c.baseCommand.Init(args)
}

// Run implements cmd.Command.
func (c *lifecycleCommand) Run(ctx *cmd.Context) error {
	sm, err := c.serviceManager()
	if err != nil {
		return errors.Trace(err)
	}
	return c.runOrPrint(ctx, c.build(sm, c.service), c.dryRun)
}

func (c *baseCommand) runOrPrint(ctx *cmd.Context, inv common.Invocation, dryRun bool) error {
	if dryRun {
		_, err := fmt.Fprintln(ctx.Stdout, inv)
		return errors.Trace(err)
	}
	return c.run(ctx, inv)
}

const daemonReloadDoc = `
Run "systemctl daemon-reload" so that systemd picks up changed unit
files. install and uninstall do this themselves unless configured not
to.

With --dry-run the systemctl command line is printed instead of run.
`

func newDaemonReloadCommand() cmd.Command {
	return &daemonReloadCommand{}
}

type daemonReloadCommand struct {
	baseCommand

	dryRun bool
}

// Info implements cmd.Command.
func (c *daemonReloadCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "daemon-reload",
		Purpose: "Make systemd reload unit files.",
		Doc:     daemonReloadDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *daemonReloadCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	f.BoolVar(&c.dryRun, "dry-run", false, "Print the systemctl command instead of running it")
}

// Run implements cmd.Command.
func (c *daemonReloadCommand) Run(ctx *cmd.Context) error {
	sm, err := c.serviceManager()
	if err != nil {
		return errors.Trace(err)
	}
	return c.runOrPrint(ctx, sm.DaemonReload(), c.dryRun)
}
