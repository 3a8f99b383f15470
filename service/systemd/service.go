// Copyright 2015 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package systemd

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/naturalsort"

	"github.com/juju/unitctl/service/common"
	"github.com/juju/unitctl/service/unitfile"
)

// Executable is the systemd control program every lifecycle invocation
// runs.
const Executable = "systemctl"

var logger = loggo.GetLogger("unitctl.service.systemd")

// Params holds what is needed to build a Systemd adapter. Only Mode is
// required; the collaborators default to the real host.
type Params struct {
	// Mode selects the system or the user instance of systemd.
	Mode Mode
	// LookupEnv reads the environment. Defaults to os.LookupEnv.
	LookupEnv LookupEnvFunc
	// FileOps performs file system access. Defaults to the local disk.
	FileOps FileSystemOps
	// Query reports live service state. Defaults to a DBusQuery on the
	// bus matching Mode.
	Query Query
}

// Systemd translates service management intents into systemctl
// invocations and unit files for one systemd instance. Its mode and
// services directory are fixed for its lifetime.
type Systemd struct {
	mode          Mode
	dirName       string
	defaultTarget string

	fileOps FileSystemOps
	query   Query
}

// New returns an adapter for the mode in p. No I/O is performed; call
// Init before installing or removing unit files.
func New(p Params) (*Systemd, error) {
	if p.LookupEnv == nil {
		p.LookupEnv = os.LookupEnv
	}
	if p.FileOps == nil {
		p.FileOps = fileSystemOps{}
	}
	if p.Query == nil {
		p.Query = NewDBusQuery(NewDBusAPIFactory(p.Mode))
	}

	dirName, err := ServicesDir(p.Mode, p.LookupEnv)
	if err != nil {
		return nil, errors.Annotatef(err, "locating %s services directory", p.Mode)
	}
	return &Systemd{
		mode:          p.Mode,
		dirName:       dirName,
		defaultTarget: p.Mode.DefaultTarget(),
		fileOps:       p.FileOps,
		query:         p.Query,
	}, nil
}

// NewWithDefaults returns an adapter for the system instance, or for the
// invoking user's instance if userMode is set, talking to the real host.
func NewWithDefaults(userMode bool) (*Systemd, error) {
	s, err := New(Params{Mode: ModeFor(userMode)})
	return s, errors.Trace(err)
}

// Mode returns the adapter's mode.
func (s *Systemd) Mode() Mode {
	return s.mode
}

// DirName returns the services directory, without a trailing separator.
func (s *Systemd) DirName() string {
	return s.dirName
}

// DefaultTarget returns the target new services are wanted by unless
// told otherwise.
func (s *Systemd) DefaultTarget() string {
	return s.defaultTarget
}

// UnitPath returns the path of the named service's unit file. A trailing
// ".service" in name is not doubled.
func (s *Systemd) UnitPath(name string) string {
	return filepath.Join(s.dirName, strings.TrimSuffix(name, serviceSuffix)+serviceSuffix)
}

// Init creates the services directory, and any missing parents, if it
// does not already exist. It is safe to call repeatedly.
func (s *Systemd) Init() error {
	if err := s.fileOps.MkdirAll(s.dirName, 0755); err != nil {
		return errors.Annotatef(err, "creating services directory %q", s.dirName)
	}
	return nil
}

func (s *Systemd) systemctl(args ...string) common.Invocation {
	return common.NewInvocation(Executable, append(s.mode.ScopeArgs(), args...)...)
}

// Start returns the invocation that starts the named service.
func (s *Systemd) Start(name string) common.Invocation {
	return s.systemctl("start", name)
}

// Stop returns the invocation that stops the named service.
func (s *Systemd) Stop(name string) common.Invocation {
	return s.systemctl("stop", name)
}

// Restart returns the invocation that restarts the named service.
func (s *Systemd) Restart(name string) common.Invocation {
	return s.systemctl("restart", name)
}

// Reload returns the invocation that asks the named service to reload
// its configuration.
func (s *Systemd) Reload(name string) common.Invocation {
	return s.systemctl("reload", name)
}

// Enable returns the invocation that enables the named service.
func (s *Systemd) Enable(name string) common.Invocation {
	return s.systemctl("enable", name)
}

// Disable returns the invocation that disables the named service.
func (s *Systemd) Disable(name string) common.Invocation {
	return s.systemctl("disable", name)
}

// Status returns the invocation that prints the named service's status.
func (s *Systemd) Status(name string) common.Invocation {
	return s.systemctl("status", name)
}

// DaemonReload returns the invocation that makes systemd re-read unit
// files.
func (s *Systemd) DaemonReload() common.Invocation {
	return s.systemctl("daemon-reload")
}

// InstallService writes unit as the named service's unit file,
// replacing any existing one. Nothing is retried on failure.
func (s *Systemd) InstallService(name string, unit unitfile.Unit) error {
	if err := validateName(name); err != nil {
		return errors.Trace(err)
	}
	data, err := unitfile.Serialize(unit)
	if err != nil {
		return errors.Annotatef(err, "serializing unit for service %q", name)
	}

	filename := s.UnitPath(name)
	if err := s.fileOps.WriteFile(filename, data, 0644); err != nil {
		return errors.Annotatef(err, "writing unit file %q", filename)
	}
	logger.Debugf("service %q installed at %q", name, filename)
	return nil
}

// UninstallService removes the named service's unit file. A missing
// file is a NotFound error.
func (s *Systemd) UninstallService(name string) error {
	if err := validateName(name); err != nil {
		return errors.Trace(err)
	}

	filename := s.UnitPath(name)
	err := s.fileOps.Remove(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return errors.NotFoundf("unit file %q", filename)
	} else if err != nil {
		return errors.Annotatef(err, "removing unit file %q", filename)
	}
	logger.Debugf("service %q uninstalled from %q", name, filename)
	return nil
}

// ReadService parses the named service's installed unit file.
func (s *Systemd) ReadService(name string) (unitfile.Unit, error) {
	if err := validateName(name); err != nil {
		return unitfile.Unit{}, errors.Trace(err)
	}

	filename := s.UnitPath(name)
	data, err := s.fileOps.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return unitfile.Unit{}, errors.NotFoundf("unit file %q", filename)
	} else if err != nil {
		return unitfile.Unit{}, errors.Annotatef(err, "reading unit file %q", filename)
	}

	unit, err := unitfile.Deserialize(bytes.NewReader(data))
	if err != nil {
		return unitfile.Unit{}, errors.Annotatef(err, "unit file %q", filename)
	}
	return unit, nil
}

// InstalledServices returns the names of the services that have a unit
// file in the services directory, in natural order ("web2" before
// "web10").
func (s *Systemd) InstalledServices() ([]string, error) {
	entries, err := s.fileOps.ReadDir(s.dirName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.NotFoundf("services directory %q", s.dirName)
	} else if err != nil {
		return nil, errors.Annotatef(err, "reading services directory %q", s.dirName)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := serviceName(entry.Name()); ok {
			names = append(names, name)
		}
	}
	return naturalsort.Sort(names), nil
}

// Services returns the live state of every service known to this
// systemd instance. The result is a complete snapshot in the order the
// manager reports; nothing is cached between calls.
func (s *Systemd) Services(ctx context.Context) ([]ServiceRecord, error) {
	records, err := s.query.Services(ctx)
	if err != nil {
		return nil, errors.Annotatef(err, "querying %s services", s.mode)
	}
	return records, nil
}

// validateName rejects names that would put the unit file outside the
// services directory.
func validateName(name string) error {
	base := strings.TrimSuffix(name, serviceSuffix)
	if base == "" || base == "." || base == ".." || strings.ContainsAny(name, "/\x00") {
		return errors.NotValidf("service name %q", name)
	}
	return nil
}
