package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for key := range envKeys {
		t.Setenv(key, "")
	}
	t.Setenv(ConfigPathEnvVar, "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, []string{"https://dmappex.com", "http://localhost:3000", "*"}, cfg.CORSAllowOrigin)
	assert.True(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.ConsensusProviders)
	assert.Equal(t, 8*time.Second, cfg.ConsensusTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("CONSENSUS_PROVIDERS", "gpt,claude")
	t.Setenv("CONSENSUS_TIMEOUT", "2s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("JITTER_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigin)
	assert.Equal(t, []string{"gpt", "claude"}, cfg.ConsensusProviders)
	assert.Equal(t, 2*time.Second, cfg.ConsensusTimeout)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, uint64(42), cfg.JitterSeed)
}

func TestLoadYAMLFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"7000\"\nlog_level: debug\nconsensus_providers:\n  - gemini\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "WARN")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"gemini"}, cfg.ConsensusProviders)
}

func TestLoadRejectsBadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}

func TestLoadEnvFilesDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nDMAPPEX_TEST_A=\"from-file\"\nexport DMAPPEX_TEST_B=kept\n"), 0o600))
	t.Setenv("DMAPPEX_TEST_A", "from-env")
	t.Setenv("DMAPPEX_TEST_B", "")
	require.NoError(t, os.Unsetenv("DMAPPEX_TEST_B"))

	loadEnvFiles(filepath.Join(dir, "missing.env"), path)
	t.Cleanup(func() { _ = os.Unsetenv("DMAPPEX_TEST_B") })

	assert.Equal(t, "from-env", os.Getenv("DMAPPEX_TEST_A"))
	assert.Equal(t, "kept", os.Getenv("DMAPPEX_TEST_B"))
}
