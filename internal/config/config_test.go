package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, filepath.Join(home, ".brevio"), cfg.Home)
	assert.Equal(t, filepath.Join(home, ".brevio", "workspace.toml"), cfg.WorkspacePath)
	assert.Equal(t, filepath.Join(home, ".brevio", "logs", "brevio.log"), cfg.LogPath)
	assert.Equal(t, filepath.Join(home, ".brevio", "secrets"), cfg.SecretsDir)
	assert.Equal(t, SecretsAuto, cfg.SecretsBackend)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BREVIO_BASE_URL", "https://api.brevio.test/")
	t.Setenv("BREVIO_API_KEY", "key-123")
	t.Setenv("BREVIO_TIMEOUT", "15")
	t.Setenv("BREVIO_HOME", filepath.Join(home, "custom"))
	t.Setenv("BREVIO_SECRETS_BACKEND", "File")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://api.brevio.test", cfg.BaseURL)
	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, filepath.Join(home, "custom", "workspace.toml"), cfg.WorkspacePath)
	assert.Equal(t, SecretsFile, cfg.SecretsBackend)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".brevio")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`base_url = "https://from-file.test"
timeout = "90s"

[workspace]
path = "/tmp/elsewhere.toml"
`), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://from-file.test", cfg.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/elsewhere.toml", cfg.WorkspacePath)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad timeout", env: map[string]string{"BREVIO_TIMEOUT": "soon"}, wantErr: "parse timeout"},
		{name: "zero timeout", env: map[string]string{"BREVIO_TIMEOUT": "0"}, wantErr: "invalid configuration"},
		{name: "bad base url", env: map[string]string{"BREVIO_BASE_URL": "not a url"}, wantErr: "invalid configuration"},
		{name: "unknown secrets backend", env: map[string]string{"BREVIO_SECRETS_BACKEND": "vault"}, wantErr: "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load(viper.New())
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
