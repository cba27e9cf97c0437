package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revad-ml/revad/internal/tape"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestDefaultMatchesEngineDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, tape.DefaultOptions(), cfg.Options())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "revad.json",
		`{"jacobianChunkSize":65536,"skipZeroAdjoint":false}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 65536, cfg.JacobianChunkSize)
	assert.False(t, cfg.SkipZeroAdjoint)
	// Absent fields keep their defaults.
	assert.Equal(t, tape.DefaultStatementChunkSize, cfg.StatementChunkSize)
	assert.True(t, cfg.SkipZeroCoefficients)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "revad.yaml", `
statementChunkSize: 4096
dropNonFiniteCoefficients: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.StatementChunkSize)
	assert.True(t, cfg.DropNonFiniteCoefficients)
	assert.Equal(t, tape.DefaultJacobianChunkSize, cfg.JacobianChunkSize)
}

func TestLoadUnknownExtension(t *testing.T) {
	path := writeFile(t, "revad.toml", `statementChunkSize = 4096`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config extension")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveChunkSize(t *testing.T) {
	path := writeFile(t, "revad.yaml", `jacobianChunkSize: 0`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jacobianChunkSize")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("REVAD_JACOBIAN_CHUNK_SIZE", "1024")
	t.Setenv("REVAD_SKIP_ZERO_ADJOINT", "false")
	t.Setenv("REVAD_DROP_NON_FINITE_COEFFICIENTS", "true")

	cfg := Default()
	FromEnv(&cfg)

	assert.Equal(t, 1024, cfg.JacobianChunkSize)
	assert.False(t, cfg.SkipZeroAdjoint)
	assert.True(t, cfg.DropNonFiniteCoefficients)
	assert.Equal(t, tape.DefaultStatementChunkSize, cfg.StatementChunkSize)
}

func TestFromEnvIgnoresMalformed(t *testing.T) {
	t.Setenv("REVAD_STATEMENT_CHUNK_SIZE", "not-a-number")

	cfg := Default()
	FromEnv(&cfg)

	assert.Equal(t, tape.DefaultStatementChunkSize, cfg.StatementChunkSize)
}
