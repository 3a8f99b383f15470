// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package unitfile

import (
	"github.com/juju/errors"
)

// ServiceParams describes a simple long-running service.
type ServiceParams struct {
	// Description is the human readable description of the service.
	Description string
	// After lists units this service is ordered after.
	After []string
	// ExecStart is the command line to run. It is required.
	ExecStart string
	// WorkingDirectory is the directory the command runs in.
	WorkingDirectory string
	// User is the account the command runs as.
	User string
	// Environment holds KEY=VALUE assignments.
	Environment []string
	// Restart is the systemd restart policy, eg "on-failure".
	Restart string
	// WantedBy lists the targets that pull the service in when enabled.
	WantedBy []string
}

// Validate checks the parameters.
func (p ServiceParams) Validate() error {
	if p.ExecStart == "" {
		return errors.NotValidf("missing ExecStart")
	}
	return nil
}

// NewServiceUnit builds a unit from the given parameters. Options are
// emitted in a fixed order so the same parameters always produce the
// same file.
func NewServiceUnit(p ServiceParams) (Unit, error) {
	if err := p.Validate(); err != nil {
		return Unit{}, errors.Trace(err)
	}

	var u Unit
	add := func(section Section, key, value string) {
		if value != "" {
			// Sections here are all known, so Add cannot fail.
			_ = u.Add(section, key, value)
		}
	}

	add(SectionUnit, "Description", p.Description)
	for _, after := range p.After {
		add(SectionUnit, "After", after)
	}

	add(SectionService, "ExecStart", p.ExecStart)
	add(SectionService, "WorkingDirectory", p.WorkingDirectory)
	add(SectionService, "User", p.User)
	for _, env := range p.Environment {
		add(SectionService, "Environment", env)
	}
	add(SectionService, "Restart", p.Restart)

	for _, target := range p.WantedBy {
		add(SectionInstall, "WantedBy", target)
	}

	if err := u.Validate(); err != nil {
		return Unit{}, errors.Trace(err)
	}
	return u, nil
}
