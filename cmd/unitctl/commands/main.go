// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"
)

// EnvLoggingConfig names the environment variable holding the default
// logging configuration.
const EnvLoggingConfig = "UNITCTL_LOGGING_CONFIG"

// Version is the unitctl release.
const Version = "0.1.0"

var logger = loggo.GetLogger("unitctl.cmd")

var unitctlDoc = `
unitctl manages systemd services: it lists them with their state and
memory use, starts and stops them, and installs or removes their unit
files.

By default system services are managed. Pass --user, or set "user: true"
in the configuration file, to manage the invoking user's services.
`

// Main registers subcommands for the unitctl executable, and hands over
// control to the cmd package.
func Main(args []string) int {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	return cmd.Main(NewUnitctlCommand(), ctx, args[1:])
}

// NewUnitctlCommand returns the unitctl super command with every
// subcommand registered.
func NewUnitctlCommand() *cmd.SuperCommand {
	super := cmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "unitctl",
		Purpose: "Manage systemd services.",
		Doc:     unitctlDoc,
		Version: Version,
		Log: &cmd.Log{
			DefaultConfig: os.Getenv(EnvLoggingConfig),
		},
		NotifyRun: runNotifier,
	})
	registerCommands(super)
	return super
}

type commandRegistry interface {
	Register(cmd.Command)
}

func registerCommands(r commandRegistry) {
	// Reporting commands.
	r.Register(newListCommand())
	r.Register(newInstalledCommand())
	r.Register(newShowUnitCommand())

	// Lifecycle commands.
	r.Register(newStartCommand())
	r.Register(newStopCommand())
	r.Register(newRestartCommand())
	r.Register(newReloadCommand())
	r.Register(newEnableCommand())
	r.Register(newDisableCommand())
	r.Register(newStatusCommand())
	r.Register(newDaemonReloadCommand())

	// Unit file commands.
	r.Register(newInstallCommand())
	r.Register(newUninstallCommand())
}

func runNotifier(name string) {
	logger.Infof("running %s [%s %s %s]", name, Version, runtime.Compiler, runtime.Version())
}
