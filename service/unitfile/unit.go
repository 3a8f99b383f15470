// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package unitfile models a systemd service unit file and converts it to
// and from the on-disk format.
//
// A unit holds exactly three sections, [Unit], [Service] and [Install].
// Each section is an ordered list of key/value options. Keys may repeat
// (a unit may be wanted by several targets, for example) and the order
// of options is kept on write, so the model deliberately does not use
// maps.
package unitfile

import (
	"strings"

	sdunit "github.com/coreos/go-systemd/v22/unit"
	"github.com/juju/errors"
)

// Section names one of the sections of a service unit file.
type Section string

const (
	SectionUnit    Section = "Unit"
	SectionService Section = "Service"
	SectionInstall Section = "Install"
)

// Sections lists every section in the order it is written.
var Sections = []Section{
	SectionUnit,
	SectionService,
	SectionInstall,
}

// Validate returns an error if s is not one of the known sections.
func (s Section) Validate() error {
	switch s {
	case SectionUnit, SectionService, SectionInstall:
		return nil
	}
	return errors.NotValidf("section %q", string(s))
}

// Option is a single key=value line within a section.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Unit is the in-memory form of a service unit file.
type Unit struct {
	Unit    []Option `json:"unit,omitempty" yaml:"unit,omitempty"`
	Service []Option `json:"service,omitempty" yaml:"service,omitempty"`
	Install []Option `json:"install,omitempty" yaml:"install,omitempty"`
}

// Add appends key=value to the given section.
func (u *Unit) Add(section Section, key, value string) error {
	opts, err := u.section(section)
	if err != nil {
		return errors.Trace(err)
	}
	*opts = append(*opts, Option{Key: key, Value: value})
	return nil
}

// Options returns the options of the given section, in order. An unknown
// section has no options.
func (u Unit) Options(section Section) []Option {
	opts, err := u.section(section)
	if err != nil {
		return nil
	}
	return *opts
}

// Values returns every value recorded for key in the given section.
func (u Unit) Values(section Section, key string) []string {
	var values []string
	for _, opt := range u.Options(section) {
		if opt.Key == key {
			values = append(values, opt.Value)
		}
	}
	return values
}

// IsZero reports whether the unit has no options at all.
func (u Unit) IsZero() bool {
	return len(u.Unit) == 0 && len(u.Service) == 0 && len(u.Install) == 0
}

func (u *Unit) section(section Section) (*[]Option, error) {
	switch section {
	case SectionUnit:
		return &u.Unit, nil
	case SectionService:
		return &u.Service, nil
	case SectionInstall:
		return &u.Install, nil
	}
	return nil, errors.NotValidf("section %q", string(section))
}

// Validate checks that every option can be written and read back
// unchanged.
func (u Unit) Validate() error {
	for _, section := range Sections {
		for _, opt := range u.Options(section) {
			if err := validateOption(opt); err != nil {
				return errors.Annotatef(err, "[%s]", section)
			}
		}
	}
	return nil
}

// MaxLineLen is the longest "key=value" line, without its newline, that
// systemd reads back whole.
const MaxLineLen = sdunit.SYSTEMD_LINE_MAX - 1

func optionLineLen(opt Option) int {
	return len(opt.Key) + len("=") + len(opt.Value)
}

func validateOption(opt Option) error {
	switch {
	case opt.Key == "":
		return errors.NotValidf("empty key")
	case strings.ContainsAny(opt.Key, "= \t\r\n"):
		return errors.NotValidf("key %q", opt.Key)
	case strings.ContainsAny(opt.Key[:1], "#;["):
		return errors.NotValidf("key %q", opt.Key)
	case strings.ContainsAny(opt.Value, "\r\n"):
		return errors.NotValidf("multi-line value for %q", opt.Key)
	case strings.TrimSpace(opt.Value) != opt.Value:
		return errors.NotValidf("value for %q with surrounding whitespace", opt.Key)
	case strings.HasSuffix(opt.Value, `\`):
		return errors.NotValidf("value for %q ending in a backslash", opt.Key)
	case optionLineLen(opt) > MaxLineLen:
		return errors.NotValidf("%d byte line for %q (max %d)", optionLineLen(opt), opt.Key, MaxLineLen)
	}
	return nil
}
