// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"
	"os"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/unitctl/internal/config"
	"github.com/juju/unitctl/service/common"
	"github.com/juju/unitctl/service/systemd"
	"github.com/juju/unitctl/service/unitfile"
)

// ServiceManager is the view of the systemd adapter the commands use.
type ServiceManager interface {
	Mode() systemd.Mode
	DirName() string
	DefaultTarget() string
	UnitPath(name string) string

	Init() error
	Start(name string) common.Invocation
	Stop(name string) common.Invocation
	Restart(name string) common.Invocation
	Reload(name string) common.Invocation
	Enable(name string) common.Invocation
	Disable(name string) common.Invocation
	Status(name string) common.Invocation
	DaemonReload() common.Invocation

	InstallService(name string, unit unitfile.Unit) error
	UninstallService(name string) error
	ReadService(name string) (unitfile.Unit, error)
	InstalledServices() ([]string, error)
	Services(ctx context.Context) ([]systemd.ServiceRecord, error)
}

var loadConfig = func() (config.Config, error) {
	return config.LoadDefault(os.LookupEnv)
}

var newRunner = func() common.Runner {
	return common.NewExecRunner()
}

var systemdRunning = systemd.IsRunning

var newServiceManager = func(mode systemd.Mode, cfg config.Config, runner common.Runner) (ServiceManager, error) {
	if !systemdRunning() {
		logger.Warningf("systemd does not appear to be the running init system")
	}
	var query systemd.Query
	if cfg.Query == config.QuerySystemctl {
		query = systemd.NewSystemctlQuery(mode, runner)
	}
	sm, err := systemd.New(systemd.Params{
		Mode:  mode,
		Query: query,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return sm, nil
}

// baseCommand holds what every service command shares: the choice of
// systemd instance, the client configuration and the runner used for
// systemctl.
type baseCommand struct {
	cmd.CommandBase

	user   bool
	system bool

	config config.Config
	runner common.Runner
}

// SetFlags implements cmd.Command.
func (c *baseCommand) SetFlags(f *gnuflag.FlagSet) {
	c.CommandBase.SetFlags(f)
	f.BoolVar(&c.user, "user", false, "Manage the invoking user's services")
	f.BoolVar(&c.system, "system", false, "Manage system services (the default unless configured otherwise)")
}

// Init implements cmd.Command.
func (c *baseCommand) Init(args []string) error {
	if c.user && c.system {
		return errors.New("cannot specify both --user and --system")
	}
	return cmd.CheckEmpty(args)
}

// serviceManager loads the configuration and returns the adapter for
// the selected mode. Flags win over the configured default.
func (c *baseCommand) serviceManager() (ServiceManager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, errors.Trace(err)
	}
	c.config = cfg

	userMode := cfg.User
	if c.user {
		userMode = true
	} else if c.system {
		userMode = false
	}

	c.runner = newRunner()
	sm, err := newServiceManager(systemd.ModeFor(userMode), cfg, c.runner)
	if err != nil {
		return nil, errors.Trace(err)
	}
	logger.Debugf("managing %s services in %q", sm.Mode(), sm.DirName())
	return sm, nil
}

// run executes inv with the command context's standard streams. A
// non-zero exit from the program becomes the exit code of unitctl.
func (c *baseCommand) run(ctx *cmd.Context, inv common.Invocation) error {
	logger.Infof("running %s", inv)
	err := c.runner.Run(context.Background(), inv, ctx.Stdin, ctx.Stdout, ctx.Stderr)
	var exitErr *common.ExitError
	if errors.As(err, &exitErr) {
		return cmd.NewRcPassthroughError(exitErr.Code)
	}
	return errors.Trace(err)
}

// serviceName takes the single service name argument.
func serviceName(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, errors.New("no service name specified")
	}
	return args[0], args[1:], nil
}
