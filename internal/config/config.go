// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config reads the unitctl client configuration file.
package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"
	"gopkg.in/yaml.v3"
)

var logger = loggo.GetLogger("unitctl.config")

const (
	// EnvConfigPath names the environment variable that overrides the
	// configuration file location.
	EnvConfigPath = "UNITCTL_CONFIG"

	userKey         = "user"
	queryKey        = "query"
	formatKey       = "format"
	colorKey        = "color"
	daemonReloadKey = "daemon-reload"
)

// Query backends.
const (
	QueryDBus      = "dbus"
	QuerySystemctl = "systemctl"
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var configSchema = environschema.Fields{
	userKey: {
		Description: "Manage the invoking user's services instead of system services.",
		Type:        environschema.Tbool,
	},
	queryKey: {
		Description: "How service state is read from systemd.",
		Type:        environschema.Tstring,
		Values:      []interface{}{QueryDBus, QuerySystemctl},
	},
	formatKey: {
		Description: "The default output format of the list command.",
		Type:        environschema.Tstring,
	},
	colorKey: {
		Description: "Whether tabular output is coloured.",
		Type:        environschema.Tstring,
		Values:      []interface{}{ColorAuto, ColorAlways, ColorNever},
	},
	daemonReloadKey: {
		Description: "Reload systemd after installing or uninstalling a unit file.",
		Type:        environschema.Tbool,
	},
}

var configDefaults = schema.Defaults{
	userKey:         false,
	queryKey:        QueryDBus,
	formatKey:       "tabular",
	colorKey:        ColorAuto,
	daemonReloadKey: true,
}

var configChecker = func() schema.Checker {
	fields, _, err := configSchema.ValidationSchema()
	if err != nil {
		panic(err)
	}
	return schema.StrictFieldMap(fields, configDefaults)
}()

// Config holds the client settings.
type Config struct {
	// User selects user mode unless overridden on the command line.
	User bool
	// Query is QueryDBus or QuerySystemctl.
	Query string
	// Format is the default list output format.
	Format string
	// Color is ColorAuto, ColorAlways or ColorNever.
	Color string
	// DaemonReload runs daemon-reload after unit files change.
	DaemonReload bool
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg, err := fromAttrs(nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Path returns the location of the configuration file: $UNITCTL_CONFIG,
// else $XDG_CONFIG_HOME/unitctl/config.yaml, else
// $HOME/.config/unitctl/config.yaml.
func Path(lookupEnv func(string) (string, bool)) (string, error) {
	if path, ok := lookupEnv(EnvConfigPath); ok && path != "" {
		return path, nil
	}
	if dir, ok := lookupEnv("XDG_CONFIG_HOME"); ok && dir != "" {
		return filepath.Join(dir, "unitctl", "config.yaml"), nil
	}
	if home, ok := lookupEnv("HOME"); ok && home != "" {
		return filepath.Join(home, ".config", "unitctl", "config.yaml"), nil
	}
	return "", errors.NotFoundf("configuration directory")
}

// Load reads the configuration file at path. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("no config file at %q, using defaults", path)
		return Default(), nil
	} else if err != nil {
		return Config{}, errors.Annotatef(err, "reading config file %q", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Annotatef(err, "config file %q", path)
	}
	return cfg, nil
}

// LoadDefault loads the configuration from the location Path picks. With
// nowhere to look, the defaults are returned.
func LoadDefault(lookupEnv func(string) (string, bool)) (Config, error) {
	path, err := Path(lookupEnv)
	if errors.Is(err, errors.NotFound) {
		return Default(), nil
	} else if err != nil {
		return Config{}, errors.Trace(err)
	}
	cfg, err := Load(path)
	return cfg, errors.Trace(err)
}

// Parse decodes and validates YAML configuration. Unknown keys and
// values of the wrong type are NotValid errors.
func Parse(data []byte) (Config, error) {
	var attrs map[string]interface{}
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return Config{}, errors.NewNotValid(err, "malformed yaml")
	}
	cfg, err := fromAttrs(attrs)
	return cfg, errors.Trace(err)
}

func fromAttrs(attrs map[string]interface{}) (Config, error) {
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	out, err := configChecker.Coerce(attrs, nil)
	if err != nil {
		return Config{}, errors.NewNotValid(err, "invalid configuration")
	}
	valid := out.(map[string]interface{})
	return Config{
		User:         valid[userKey].(bool),
		Query:        valid[queryKey].(string),
		Format:       valid[formatKey].(string),
		Color:        valid[colorKey].(string),
		DaemonReload: valid[daemonReloadKey].(bool),
	}, nil
}
