// Package config loads the small YAML document that tells the core
// which backend to target and where to find standard-library and
// dependency source, per spec.md §3.4 and §6.4. Grounded on the
// teacher's internal/eval_harness/spec.go (os.ReadFile + yaml.Unmarshal
// + required-field validation idiom), generalized from a benchmark spec
// to a backend/loader config.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alantech/alan/internal/errcode"
	"github.com/alantech/alan/internal/program"
)

// Config describes the active compilation target and where the loader
// (§6.4) should resolve `@std/...` and `@scope/package` import paths.
type Config struct {
	// Backend is "native" or "scripting" (spec §3.4's target backend tag).
	Backend string `yaml:"backend"`
	// StdlibRoot is the filesystem root for `@std/...` imports.
	StdlibRoot string `yaml:"stdlib_root"`
	// DependencyRoot is the filesystem root dependency paths
	// (`@scope/package`) resolve under, per §6.4.
	DependencyRoot string `yaml:"dependency_root"`
}

// Load reads and validates a Config from a YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errcode.WrapReport(errcode.New(errcode.CFG001, "config",
			fmt.Sprintf("cannot read config file %s: %v", path, err)))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errcode.WrapReport(errcode.New(errcode.CFG001, "config",
			fmt.Sprintf("invalid config file %s: %v", path, err)))
	}

	if cfg.Backend == "" {
		cfg.Backend = "native"
	}
	if _, err := cfg.ResolveBackend(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveBackend parses the configured backend tag into a
// program.Backend, erroring on anything other than "native"/"scripting".
func (c *Config) ResolveBackend() (program.Backend, error) {
	switch c.Backend {
	case "native":
		return program.Native, nil
	case "scripting":
		return program.Scripting, nil
	default:
		return program.Native, errcode.WrapReport(errcode.New(errcode.CFG002, "config",
			"unknown target backend "+c.Backend))
	}
}

// Apply sets the active backend (internal/program.SetBackend) from cfg.
func (c *Config) Apply() error {
	backend, err := c.ResolveBackend()
	if err != nil {
		return err
	}
	program.SetBackend(backend)
	return nil
}
