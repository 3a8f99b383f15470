// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package systemd

import (
	"context"
	"strings"
)

const (
	serviceSuffix  = ".service"
	servicePattern = "*" + serviceSuffix

	// memoryNotSet is what systemd reports for MemoryCurrent when memory
	// accounting is off or the service is not running.
	memoryNotSet = ^uint64(0)
)

// ServiceRecord is the live state of one service, as reported by the
// service manager.
type ServiceRecord struct {
	// Name is the unit name without the ".service" suffix.
	Name string `json:"name" yaml:"name"`
	// Active is true if the service is currently active.
	Active bool `json:"active" yaml:"active"`
	// Enabled is true if the service is enabled to start on boot (or
	// login, in user mode).
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Memory is the service's current memory use in bytes, or 0 when the
	// manager does not report it.
	Memory uint64 `json:"memory" yaml:"memory"`
}

// HasMemory reports whether the manager reported a memory figure.
func (r ServiceRecord) HasMemory() bool {
	return r.Memory != 0
}

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/query_mock.go github.com/juju/unitctl/service/systemd Query

// Query reports the live state of every service known to a service
// manager.
type Query interface {
	// Services returns a snapshot of all services, in the order the
	// manager reports them. A failure anywhere fails the whole query.
	Services(ctx context.Context) ([]ServiceRecord, error)
}

// serviceName strips the ".service" suffix from a unit name. The second
// result is false for units that are not services, and for templates
// (foo@.service), which cannot run without an instance name.
func serviceName(unitName string) (string, bool) {
	name, ok := strings.CutSuffix(unitName, serviceSuffix)
	if !ok || name == "" || strings.HasSuffix(name, "@") {
		return "", false
	}
	return name, true
}

func isActiveState(state string) bool {
	return state == "active" || state == "reloading"
}

func isEnabledState(state string) bool {
	return state == "enabled" || state == "enabled-runtime"
}

func normaliseMemory(v uint64) uint64 {
	if v == memoryNotSet {
		return 0
	}
	return v
}
