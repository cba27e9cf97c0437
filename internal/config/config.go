package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/revad-ml/revad/internal/tape"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	StatementChunkSize        int  `json:"statementChunkSize" yaml:"statementChunkSize"`
	JacobianChunkSize         int  `json:"jacobianChunkSize" yaml:"jacobianChunkSize"`
	ExternalFunctionChunkSize int  `json:"externalFunctionChunkSize" yaml:"externalFunctionChunkSize"`
	SkipZeroAdjoint           bool `json:"skipZeroAdjoint" yaml:"skipZeroAdjoint"`
	SkipZeroCoefficients      bool `json:"skipZeroCoefficients" yaml:"skipZeroCoefficients"`
	DropNonFiniteCoefficients bool `json:"dropNonFiniteCoefficients" yaml:"dropNonFiniteCoefficients"`
}

// Default returns built-in defaults matching tape.DefaultOptions.
func Default() Config {
	return fromOptions(tape.DefaultOptions())
}

// Load reads configuration from a JSON or YAML file (by extension). If
// path is empty, returns defaults. Fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config extension %q (want .json, .yaml or .yml)", ext)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the configuration into engine options.
func (c Config) Options() tape.Options {
	return tape.Options{
		StatementChunkSize:        c.StatementChunkSize,
		JacobianChunkSize:         c.JacobianChunkSize,
		ExternalFunctionChunkSize: c.ExternalFunctionChunkSize,
		SkipZeroAdjoint:           c.SkipZeroAdjoint,
		SkipZeroCoefficients:      c.SkipZeroCoefficients,
		DropNonFiniteCoefficients: c.DropNonFiniteCoefficients,
	}
}

func fromOptions(o tape.Options) Config {
	return Config{
		StatementChunkSize:        o.StatementChunkSize,
		JacobianChunkSize:         o.JacobianChunkSize,
		ExternalFunctionChunkSize: o.ExternalFunctionChunkSize,
		SkipZeroAdjoint:           o.SkipZeroAdjoint,
		SkipZeroCoefficients:      o.SkipZeroCoefficients,
		DropNonFiniteCoefficients: o.DropNonFiniteCoefficients,
	}
}

func (c Config) validate() error {
	if c.StatementChunkSize <= 0 {
		return fmt.Errorf("statementChunkSize must be positive, got %d", c.StatementChunkSize)
	}
	if c.JacobianChunkSize <= 0 {
		return fmt.Errorf("jacobianChunkSize must be positive, got %d", c.JacobianChunkSize)
	}
	if c.ExternalFunctionChunkSize <= 0 {
		return fmt.Errorf("externalFunctionChunkSize must be positive, got %d", c.ExternalFunctionChunkSize)
	}
	return nil
}
