// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/unitctl/service/unitfile"
)

const showUnitDoc = `
Show the unit file unitctl installed for a service, option by option.
The unit format prints the file as it would be written.

Examples:
    unitctl show-unit web
    unitctl show-unit --user sync --format unit
`

func newShowUnitCommand() cmd.Command {
	return &showUnitCommand{}
}

type showUnitCommand struct {
	baseCommand

	out     cmd.Output
	service string
}

// Info implements cmd.Command.
func (c *showUnitCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "show-unit",
		Args:    "<service>",
		Purpose: "Show the installed unit file of a service.",
		Doc:     showUnitDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *showUnitCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"tabular": formatUnitTabular,
		"unit":    formatUnitFile,
		"json":    cmd.FormatJson,
		"yaml":    cmd.FormatYaml,
	})
}

// Init implements cmd.Command.
func (c *showUnitCommand) Init(args []string) (err error) {
	c.service, args, err = serviceName(args)
	if err != nil {
		return errors.Trace(err)
	}
	return c.baseCommand.Init(args)
}

// Run implements cmd.Command.
func (c *showUnitCommand) Run(ctx *cmd.Context) error {
	sm, err := c.serviceManager()
	if err != nil {
		return errors.Trace(err)
	}
	unit, err := sm.ReadService(c.service)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.out.Write(ctx, unit))
}

// formatUnitTabular returns a table with one row per option.
func formatUnitTabular(writer io.Writer, value interface{}) error {
	unit, ok := value.(unitfile.Unit)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", unit, value)
	}

	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true
	table.AddRow("SECTION", "KEY", "VALUE")
	for _, section := range unitfile.Sections {
		for _, opt := range unit.Options(section) {
			table.AddRow(section, opt.Key, opt.Value)
		}
	}
	_, err := fmt.Fprintln(writer, table)
	return errors.Trace(err)
}

func formatUnitFile(writer io.Writer, value interface{}) error {
	unit, ok := value.(unitfile.Unit)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", unit, value)
	}
	data, err := unitfile.Serialize(unit)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = writer.Write(data)
	return errors.Trace(err)
}
