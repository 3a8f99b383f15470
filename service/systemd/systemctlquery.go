// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package systemd

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"gopkg.in/ini.v1"

	"github.com/juju/unitctl/service/common"
)

var showProperties = []string{"Id", "ActiveState", "UnitFileState", "MemoryCurrent"}

// SystemctlQuery implements Query by running systemctl and parsing its
// output. It is slower than DBusQuery but needs no bus access.
type SystemctlQuery struct {
	mode   Mode
	runner common.Runner
}

// NewSystemctlQuery returns a Query for the given mode that runs
// systemctl through runner.
func NewSystemctlQuery(mode Mode, runner common.Runner) *SystemctlQuery {
	return &SystemctlQuery{
		mode:   mode,
		runner: runner,
	}
}

func (q *SystemctlQuery) systemctl(args ...string) common.Invocation {
	return common.NewInvocation(Executable, append(q.mode.ScopeArgs(), args...)...)
}

// Services implements Query.
func (q *SystemctlQuery) Services(ctx context.Context) ([]ServiceRecord, error) {
	out, err := q.runner.Output(ctx, q.systemctl(
		"list-units", "--type=service", "--all", "--plain", "--no-legend", "--no-pager",
	))
	if err != nil {
		return nil, errors.Annotate(err, "listing service units")
	}
	units := parseUnitList(out)

	var records []ServiceRecord
	seen := set.NewStrings()
	if len(units) > 0 {
		args := []string{"show", "--no-pager", "--property=" + strings.Join(showProperties, ",")}
		out, err := q.runner.Output(ctx, q.systemctl(append(args, units...)...))
		if err != nil {
			return nil, errors.Annotate(err, "reading service properties")
		}
		records, err = parseShowOutput(out)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for _, record := range records {
			seen.Add(record.Name)
		}
	}

	out, err = q.runner.Output(ctx, q.systemctl(
		"list-unit-files", "--type=service", "--no-legend", "--no-pager",
	))
	if err != nil {
		return nil, errors.Annotate(err, "listing service unit files")
	}
	for _, file := range parseUnitFileList(out) {
		if seen.Contains(file.Name) {
			continue
		}
		seen.Add(file.Name)
		records = append(records, file)
	}
	logger.Debugf("systemctl reported %d services", len(records))
	return records, nil
}

// parseUnitList returns the unit names from the output of
// "systemctl list-units --plain --no-legend".
func parseUnitList(out []byte) []string {
	var units []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		// Failed units may still be flagged with a leading bullet.
		for len(fields) > 0 && (fields[0] == "●" || fields[0] == "*") {
			fields = fields[1:]
		}
		if len(fields) == 0 {
			continue
		}
		if _, ok := serviceName(fields[0]); ok {
			units = append(units, fields[0])
		}
	}
	return units
}

// parseUnitFileList returns records for the output of
// "systemctl list-unit-files --no-legend".
func parseUnitFileList(out []byte) []ServiceRecord {
	var records []ServiceRecord
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		name, ok := serviceName(fields[0])
		if !ok {
			continue
		}
		records = append(records, ServiceRecord{
			Name:    name,
			Enabled: isEnabledState(fields[1]),
		})
	}
	return records
}

// parseShowOutput parses "systemctl show" output for several units: one
// block of Key=Value lines per unit, blocks separated by a blank line.
func parseShowOutput(out []byte) ([]ServiceRecord, error) {
	var records []ServiceRecord
	for _, block := range bytes.Split(out, []byte("\n\n")) {
		if len(bytes.TrimSpace(block)) == 0 {
			continue
		}
		record, ok, err := parseShowBlock(block)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if ok {
			records = append(records, record)
		}
	}
	return records, nil
}

func parseShowBlock(block []byte) (ServiceRecord, bool, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
		KeyValueDelimiters:      "=",
	}, block)
	if err != nil {
		return ServiceRecord{}, false, errors.Annotate(err, "parsing systemctl show output")
	}
	props := cfg.Section(ini.DefaultSection)

	name, ok := serviceName(props.Key("Id").String())
	if !ok {
		return ServiceRecord{}, false, nil
	}
	record := ServiceRecord{
		Name:    name,
		Active:  isActiveState(props.Key("ActiveState").String()),
		Enabled: isEnabledState(props.Key("UnitFileState").String()),
	}
	// "[not set]" and empty values leave Memory at zero.
	if memory, err := strconv.ParseUint(props.Key("MemoryCurrent").String(), 10, 64); err == nil {
		record.Memory = normaliseMemory(memory)
	}
	return record, true, nil
}
