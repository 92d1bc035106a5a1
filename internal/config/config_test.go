package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"WORDSMITH_DATA_DIR", "WORDSMITH_LOG_LEVEL", "WORDSMITH_LOG_FORMAT",
		"WORDSMITH_CEWL_PATH", "WORDSMITH_USER_AGENT", "WORDSMITH_CONCURRENCY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	e, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "data", e.DataDir)
	assert.Equal(t, "warn", e.LogLevel)
	assert.Equal(t, "text", e.LogFormat)
	assert.Equal(t, "wordsmith/1.0", e.UserAgent)
	assert.Equal(t, 1, e.Concurrency)
	assert.Empty(t, e.CewlPath)
}

func TestLoad_DotenvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WORDSMITH_DATA_DIR=/srv/wordsmith\nWORDSMITH_CONCURRENCY=4\n"), 0o644))
	t.Setenv("WORDSMITH_CONCURRENCY", "8")

	e, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/wordsmith", e.DataDir)
	assert.Equal(t, 8, e.Concurrency, "environment must win over dotenv")
}

func TestLoad_InvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORDSMITH_CONCURRENCY", "many")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParsingConfig)
}
