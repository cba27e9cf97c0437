package config

import (
	"os"
	"strconv"
)

// FromEnv overlays REVAD_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("REVAD_STATEMENT_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.StatementChunkSize = n
		}
	}
	if v := os.Getenv("REVAD_JACOBIAN_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.JacobianChunkSize = n
		}
	}
	if v := os.Getenv("REVAD_EXTERNAL_FUNCTION_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ExternalFunctionChunkSize = n
		}
	}
	if v := os.Getenv("REVAD_SKIP_ZERO_ADJOINT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SkipZeroAdjoint = b
		}
	}
	if v := os.Getenv("REVAD_SKIP_ZERO_COEFFICIENTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SkipZeroCoefficients = b
		}
	}
	if v := os.Getenv("REVAD_DROP_NON_FINITE_COEFFICIENTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DropNonFiniteCoefficients = b
		}
	}
}
