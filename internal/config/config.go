// Package config loads .tapecrc.yaml, the optional per-project defaults file
// for cmd/tapec's flags.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file cmd/tapec looks for in the current directory.
const FileName = ".tapecrc.yaml"

// Config holds the subset of CLI flags that can be defaulted from a project
// config file. MemInitial, MemResize, Trace and Timeout default the matching
// global flags, and a flag passed on the command line overrides them. Target
// is decoded but not applied: transpile --target does not read it.
type Config struct {
	MemInitial int           `yaml:"mem-initial"`
	MemResize  int           `yaml:"mem-resize"`
	Trace      bool          `yaml:"trace"`
	Timeout    time.Duration `yaml:"timeout"`
	Target     string        `yaml:"target"`
}

// Load reads FileName from dir. A missing file returns a zero Config and no
// error; every other read or parse error is returned.
func Load(dir string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(dir + string(os.PathSeparator) + FileName)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
