// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"
	"io"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
)

const installedDoc = `
List the services that have a unit file in the systemd services
directory, that is the services unitctl install manages. Unlike list, it
does not ask systemd anything.
`

func newInstalledCommand() cmd.Command {
	return &installedCommand{}
}

type installedCommand struct {
	baseCommand

	out cmd.Output
}

// Info implements cmd.Command.
func (c *installedCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "installed",
		Purpose: "List services with a unit file in the services directory.",
		Doc:     installedDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *installedCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	c.out.AddFlags(f, "line", map[string]cmd.Formatter{
		"line": formatLines,
		"json": cmd.FormatJson,
		"yaml": cmd.FormatYaml,
	})
}

// Run implements cmd.Command.
func (c *installedCommand) Run(ctx *cmd.Context) error {
	sm, err := c.serviceManager()
	if err != nil {
		return errors.Trace(err)
	}
	names, err := sm.InstalledServices()
	if errors.Is(err, errors.NotFound) {
		logger.Debugf("%v", err)
		names = nil
	} else if err != nil {
		return errors.Trace(err)
	}
	if names == nil {
		names = []string{}
	}
	return errors.Trace(c.out.Write(ctx, names))
}

func formatLines(writer io.Writer, value interface{}) error {
	names, ok := value.([]string)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", names, value)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(writer, name); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
