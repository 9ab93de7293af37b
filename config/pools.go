package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PoolDef declares one named pool. Zero sizes fall back to the Pool defaults.
type PoolDef struct {
	Name       string `yaml:"name"`
	Template   string `yaml:"template"`
	Initial    *int   `yaml:"initial"`
	Max        int    `yaml:"max"`
	AutoExpand *bool  `yaml:"auto_expand"`
	Preload    int    `yaml:"preload"` // extra instances built cooperatively after creation
}

// InitialSize returns the declared initial size or the configured default.
func (d PoolDef) InitialSize() int {
	if d.Initial == nil {
		return Pool.DefaultInitialSize
	}
	return *d.Initial
}

// MaxSize returns the declared max size or the configured default.
func (d PoolDef) MaxSize() int {
	if d.Max <= 0 {
		return Pool.DefaultMaxSize
	}
	return d.Max
}

// Expands returns the declared auto-expand flag or the configured default.
func (d PoolDef) Expands() bool {
	if d.AutoExpand == nil {
		return Pool.DefaultAutoExpand
	}
	return *d.AutoExpand
}

// DefaultPools is used when no manifest is given.
var DefaultPools = []PoolDef{
	{Name: "spark", Template: "spark", Max: 64},
	{Name: "dust", Template: "dust", Max: 32},
	{Name: "crate", Template: "crate", Max: 16, Preload: 6},
}

// LoadPoolManifest reads a YAML list of pool definitions.
func LoadPoolManifest(path string) ([]PoolDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool manifest: %w", err)
	}
	return ParsePoolManifest(raw)
}

// ParsePoolManifest decodes and checks a YAML pool manifest.
func ParsePoolManifest(raw []byte) ([]PoolDef, error) {
	var defs []PoolDef
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parse pool manifest: %w", err)
	}
	seen := make(map[string]bool, len(defs))
	for i := range defs {
		d := &defs[i]
		if d.Name == "" {
			return nil, fmt.Errorf("%w: pool manifest entry %d has no name", ErrInvalid, i)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: pool %q declared twice", ErrInvalid, d.Name)
		}
		seen[d.Name] = true
		if d.Template == "" {
			d.Template = d.Name
		}
	}
	return defs, nil
}
