package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "vault:\n  path: /data/Research\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/Research", cfg.Vault.Path)
	assert.Equal(t, "Research", cfg.Vault.GetVaultName())
	assert.Equal(t, filepath.Join("/data/Research", ".vault-tray", "settings.json"), cfg.GetSettingsFile())
	assert.True(t, cfg.Settings.Watch)
	assert.Equal(t, HostDesktop, cfg.Host.Mode)
	assert.Equal(t, "Vault", cfg.Host.Title)
	assert.Equal(t, 1024, cfg.Host.Width)
	assert.Equal(t, 768, cfg.Host.Height)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("VAULT_ROOT_FOR_TEST", "/srv/vaults")
	path := writeConfig(t, `
vault:
  path: ${VAULT_ROOT_FOR_TEST}/work
  name: Work Notes
settings:
  file: ${VAULT_ROOT_FOR_TEST}/work.toml
  watch: false
host:
  mode: headless
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/vaults/work", cfg.Vault.Path)
	assert.Equal(t, "Work Notes", cfg.Vault.GetVaultName())
	assert.Equal(t, "/srv/vaults/work.toml", cfg.GetSettingsFile())
	assert.False(t, cfg.Settings.Watch)
	assert.Equal(t, HostHeadless, cfg.Host.Mode)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing vault path", content: "host:\n  mode: desktop\n"},
		{name: "unknown host mode", content: "vault:\n  path: /v\nhost:\n  mode: tui\n"},
		{name: "negative size", content: "vault:\n  path: /v\nhost:\n  width: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestExpandPath_Home(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "vault"), expandPath("~/vault"))
	assert.Equal(t, home, expandPath("~"))
	assert.Equal(t, "/abs", expandPath("/abs"))
}
