// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package systemd

import (
	"context"
	"path"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/juju/collections/set"
	"github.com/juju/errors"
)

// DBusAPI is the subset of *dbus.Conn used to query service state.
type DBusAPI interface {
	Close()
	ListUnitsByPatternsContext(ctx context.Context, states []string, patterns []string) ([]dbus.UnitStatus, error)
	ListUnitFilesByPatternsContext(ctx context.Context, states []string, patterns []string) ([]dbus.UnitFile, error)
	GetUnitPropertyContext(ctx context.Context, unit string, propertyName string) (*dbus.Property, error)
	GetUnitTypePropertyContext(ctx context.Context, unit string, unitType string, propertyName string) (*dbus.Property, error)
}

// DBusAPIFactory opens a new connection to a systemd instance.
type DBusAPIFactory = func(ctx context.Context) (DBusAPI, error)

// NewDBusAPIFactory returns a factory connecting to the system bus in
// system mode and to the invoking user's bus in user mode.
func NewDBusAPIFactory(mode Mode) DBusAPIFactory {
	return func(ctx context.Context) (DBusAPI, error) {
		var (
			conn *dbus.Conn
			err  error
		)
		if mode == UserMode {
			conn, err = dbus.NewUserConnectionContext(ctx)
		} else {
			conn, err = dbus.NewWithContext(ctx)
		}
		if err != nil {
			return nil, errors.Annotatef(err, "connecting to %s systemd over dbus", mode)
		}
		return conn, nil
	}
}

// DBusQuery implements Query over systemd's D-Bus API.
type DBusQuery struct {
	newDBus DBusAPIFactory
}

// NewDBusQuery returns a Query that opens a fresh connection with
// newDBus on every call.
func NewDBusQuery(newDBus DBusAPIFactory) *DBusQuery {
	return &DBusQuery{newDBus: newDBus}
}

// Services implements Query. Loaded services come first, in the order
// systemd lists them; installed unit files that are not loaded follow,
// reported as inactive with no memory figure.
func (q *DBusQuery) Services(ctx context.Context) ([]ServiceRecord, error) {
	conn, err := q.newDBus(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer conn.Close()

	units, err := conn.ListUnitsByPatternsContext(ctx, nil, []string{servicePattern})
	if err != nil {
		return nil, errors.Annotate(err, "listing service units")
	}

	seen := set.NewStrings()
	records := make([]ServiceRecord, 0, len(units))
	for _, unit := range units {
		name, ok := serviceName(unit.Name)
		if !ok || seen.Contains(name) {
			continue
		}
		seen.Add(name)

		record, err := q.loadedRecord(ctx, conn, name, unit)
		if err != nil {
			return nil, errors.Trace(err)
		}
		records = append(records, record)
	}

	files, err := conn.ListUnitFilesByPatternsContext(ctx, nil, []string{servicePattern})
	if err != nil {
		return nil, errors.Annotate(err, "listing service unit files")
	}
	for _, file := range files {
		name, ok := serviceName(path.Base(file.Path))
		if !ok || seen.Contains(name) {
			continue
		}
		seen.Add(name)
		records = append(records, ServiceRecord{
			Name:    name,
			Enabled: isEnabledState(file.Type),
		})
	}
	logger.Debugf("dbus reported %d services", len(records))
	return records, nil
}

func (q *DBusQuery) loadedRecord(ctx context.Context, conn DBusAPI, name string, unit dbus.UnitStatus) (ServiceRecord, error) {
	fileState, err := conn.GetUnitPropertyContext(ctx, unit.Name, "UnitFileState")
	if err != nil {
		return ServiceRecord{}, errors.Annotatef(err, "reading UnitFileState of %q", unit.Name)
	}
	memory, err := conn.GetUnitTypePropertyContext(ctx, unit.Name, "Service", "MemoryCurrent")
	if err != nil {
		return ServiceRecord{}, errors.Annotatef(err, "reading MemoryCurrent of %q", unit.Name)
	}

	state, _ := fileState.Value.Value().(string)
	bytes, _ := memory.Value.Value().(uint64)
	return ServiceRecord{
		Name:    name,
		Active:  isActiveState(unit.ActiveState),
		Enabled: isEnabledState(state),
		Memory:  normaliseMemory(bytes),
	}, nil
}
