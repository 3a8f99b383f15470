// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/unitctl/service/systemd"
)

const listDoc = `
List every service known to systemd, whether or not it is loaded, with
whether it is active, whether it is enabled and its current memory use.

Services are shown in the order systemd reports them. Memory is blank
when systemd does not account for it.

The raw format prints one "name active enabled memory" line per service,
with memory in bytes, for use in scripts.

Examples:
    unitctl list
    unitctl list --user --active
    unitctl list --format raw
`

func newListCommand() cmd.Command {
	return &listCommand{}
}

type listCommand struct {
	baseCommand

	out    cmd.Output
	flags  *gnuflag.FlagSet
	active bool
}

// Info implements cmd.Command.
func (c *listCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "list",
		Purpose: "List services with their state and memory use.",
		Doc:     listDoc,
		Aliases: []string{"ls"},
	}
}

// SetFlags implements cmd.Command.
func (c *listCommand) SetFlags(f *gnuflag.FlagSet) {
	c.baseCommand.SetFlags(f)
	c.flags = f
	f.BoolVar(&c.active, "active", false, "Only list active services")
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"tabular": c.formatTabular,
		"raw":     formatRaw,
		"json":    cmd.FormatJson,
		"yaml":    cmd.FormatYaml,
	})
}

// Run implements cmd.Command.
func (c *listCommand) Run(ctx *cmd.Context) error {
	sm, err := c.serviceManager()
	if err != nil {
		return errors.Trace(err)
	}
	if err := c.applyConfiguredFormat(); err != nil {
		return errors.Trace(err)
	}

	records, err := sm.Services(context.Background())
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.out.Write(ctx, c.filter(records)))
}

// applyConfiguredFormat selects the configured default format unless
// one was given on the command line.
func (c *listCommand) applyConfiguredFormat() error {
	explicit := false
	c.flags.Visit(func(f *gnuflag.Flag) {
		if f.Name == "format" {
			explicit = true
		}
	})
	if explicit || c.config.Format == "" {
		return nil
	}
	if err := c.flags.Set("format", c.config.Format); err != nil {
		return errors.NotValidf("configured format %q", c.config.Format)
	}
	return nil
}

func (c *listCommand) filter(records []systemd.ServiceRecord) []systemd.ServiceRecord {
	result := make([]systemd.ServiceRecord, 0, len(records))
	for _, record := range records {
		if c.active && !record.Active {
			continue
		}
		result = append(result, record)
	}
	return result
}
