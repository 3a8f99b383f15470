// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package unitfile

import (
	"bytes"
	"io"

	sdunit "github.com/coreos/go-systemd/v22/unit"
	"github.com/juju/errors"
)

// Serialize renders the unit in the unit-file format. Sections are
// written in the fixed order [Unit], [Service], [Install]; a section
// without options is left out.
func Serialize(u Unit) ([]byte, error) {
	if err := u.Validate(); err != nil {
		return nil, errors.Trace(err)
	}

	var opts []*sdunit.UnitOption
	for _, section := range Sections {
		for _, opt := range u.Options(section) {
			opts = append(opts, sdunit.NewUnitOption(string(section), opt.Key, opt.Value))
		}
	}

	data, err := io.ReadAll(sdunit.Serialize(opts))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return data, nil
}

// Deserialize parses unit-file text. Comments and blank lines are
// dropped. An option in any section other than [Unit], [Service] or
// [Install] is rejected.
func Deserialize(r io.Reader) (Unit, error) {
	opts, err := sdunit.Deserialize(r)
	if err != nil {
		return Unit{}, errors.Annotate(err, "parsing unit file")
	}

	var u Unit
	for _, opt := range opts {
		section := Section(opt.Section)
		if err := section.Validate(); err != nil {
			return Unit{}, errors.NotSupportedf("section %q", opt.Section)
		}
		if err := u.Add(section, opt.Name, opt.Value); err != nil {
			return Unit{}, errors.Trace(err)
		}
	}
	return u, nil
}

// Parse is Deserialize for data already in memory.
func Parse(data []byte) (Unit, error) {
	u, err := Deserialize(bytes.NewReader(data))
	return u, errors.Trace(err)
}
