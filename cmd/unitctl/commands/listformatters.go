// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/juju/ansiterm"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"

	"github.com/juju/unitctl/internal/config"
	"github.com/juju/unitctl/service/systemd"
)

var (
	goodColor = ansiterm.Foreground(ansiterm.Green)
	badColor  = ansiterm.Foreground(ansiterm.Yellow)
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (c *listCommand) colorCapable(w io.Writer) bool {
	switch c.config.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return isTerminal(w)
}

// formatTabular writes an aligned table of services.
func (c *listCommand) formatTabular(writer io.Writer, value interface{}) error {
	records, ok := value.([]systemd.ServiceRecord)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", records, value)
	}

	tw := ansiterm.NewTabWriter(writer, 0, 1, 2, ' ', 0)
	tw.SetColorCapable(c.colorCapable(writer))

	fmt.Fprintln(tw, "NAME\tACTIVE\tENABLED\tMEMORY")
	for _, record := range records {
		fmt.Fprintf(tw, "%s\t", record.Name)
		printState(tw, record.Active, "active", "inactive")
		fmt.Fprint(tw, "\t")
		printState(tw, record.Enabled, "enabled", "disabled")
		fmt.Fprintf(tw, "\t%s\n", formatMemory(record))
	}
	return errors.Trace(tw.Flush())
}

func printState(tw *ansiterm.TabWriter, on bool, yes, no string) {
	if on {
		goodColor.Fprint(tw, yes)
	} else {
		badColor.Fprint(tw, no)
	}
}

func formatMemory(record systemd.ServiceRecord) string {
	if !record.HasMemory() {
		return ""
	}
	return humanize.IBytes(record.Memory)
}

// formatRaw writes one space separated line per service.
func formatRaw(writer io.Writer, value interface{}) error {
	records, ok := value.([]systemd.ServiceRecord)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", records, value)
	}
	for _, record := range records {
		_, err := fmt.Fprintf(writer, "%s %t %t %d\n", record.Name, record.Active, record.Enabled, record.Memory)
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
