package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setConfigHome points the user config dir at a temp directory so tests
// never read the real user config.
func setConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("DBOX_CLONE_COMMAND", "")
	t.Setenv("DBOX_CLONE_DIR", "")
	return dir
}

func writeConfigFile(t *testing.T, configHome, content string) {
	t.Helper()
	dir := filepath.Join(configHome, "dbox")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dbox.jsonc"), []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	setConfigHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dbox-clone", cfg.Clone.Command)
	assert.Empty(t, cfg.GitHub.Token)
}

func TestLoadUserConfig(t *testing.T) {
	home := setConfigHome(t)
	writeConfigFile(t, home, `{
		// GitHub credentials
		"github": {"token": "file-token"},
		"clone": {"command": "my-clone", "args": ["--depth", "1"]}
	}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.GitHub.Token)
	assert.Equal(t, "my-clone", cfg.Clone.Command)
	assert.Equal(t, []string{"--depth", "1"}, cfg.Clone.Args)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	home := setConfigHome(t)
	writeConfigFile(t, home, `{"github": {"token": "file-token"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.GitHub.Token)
	assert.Equal(t, "dbox-clone", cfg.Clone.Command)
}

func TestEnvOverrides(t *testing.T) {
	home := setConfigHome(t)
	writeConfigFile(t, home, `{"github": {"token": "file-token"}, "clone": {"command": "my-clone"}}`)
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("DBOX_CLONE_COMMAND", "env-clone")
	t.Setenv("DBOX_CLONE_DIR", "/tmp/review")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.GitHub.Token)
	assert.Equal(t, "env-clone", cfg.Clone.Command)
	assert.Equal(t, "/tmp/review", cfg.Clone.Dir)
}

func TestResolveTokenPrefersConfigured(t *testing.T) {
	cfg := &Config{GitHub: GitHubConfig{Token: "configured"}}
	assert.Equal(t, "configured", cfg.ResolveToken())
}
