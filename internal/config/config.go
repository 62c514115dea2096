// Package config loads csweep settings from an optional YAML file.
package config

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"csweep/internal/augment"
	"csweep/internal/storage"
	"csweep/internal/toolchain"
)

// DefaultFile is looked up in the working directory when no path is given
const DefaultFile = ".csweep.yaml"

// DefaultMappingFile is where the mapping artifact is written
const DefaultMappingFile = "output.txt"

// Config holds pipeline settings
type Config struct {
	Compiler          string   `yaml:"compiler"`
	CompilerArgs      []string `yaml:"compiler_args"`
	Output            string   `yaml:"output"`
	MappingFile       string   `yaml:"mapping_file"`
	Prefix            string   `yaml:"prefix"`
	KeepIntermediates bool     `yaml:"keep_intermediates"`
	Exclude           []string `yaml:"exclude"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Compiler:    toolchain.DefaultCompiler,
		Output:      toolchain.DefaultOutput,
		MappingFile: DefaultMappingFile,
		Prefix:      augment.DefaultPrefix,
	}
}

// Load reads path over the defaults. An empty path falls back to DefaultFile and
// tolerates its absence; an explicit path must exist.
func Load(ctx context.Context, store *storage.Store, path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := store.Read(ctx, path)
	if err != nil {
		if !explicit && errors.Is(err, storage.ErrInputUnavailable) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Compiler == "" {
		c.Compiler = def.Compiler
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.MappingFile == "" {
		c.MappingFile = def.MappingFile
	}
	if c.Prefix == "" {
		c.Prefix = def.Prefix
	}
}

// Toolchain returns the compiler settings
func (c *Config) Toolchain() *toolchain.Toolchain {
	return &toolchain.Toolchain{
		Compiler: c.Compiler,
		Args:     c.CompilerArgs,
		Output:   c.Output,
	}
}
