package probedock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
project:
  apiId: kvr0r1t0ydqx
  version: 1.0.0
  server: trial.probedock.io
`

func TestParseValidConfig(t *testing.T) {
	c, err := ParseConfig("probedock.yml", []byte(validConfig))
	require.NoError(t, err)
	assert.Equal(t, "kvr0r1t0ydqx", c.Project.APIID)
	assert.Equal(t, "1.0.0", c.Project.Version)
	assert.Equal(t, "trial.probedock.io", c.Project.Server)
	assert.Equal(t, DefaultCategory, c.Category())
	assert.True(t, c.PublishEnabled())
	assert.Equal(t, "https://trial.probedock.io/api", c.APIURL())
}

func TestParseConfigWithServerSettings(t *testing.T) {
	c, err := ParseConfig("probedock.yml", []byte(`
project:
  apiId: abc
  version: 2.0.0
  server: local
  category: Demo
servers:
  local:
    apiUrl: http://localhost:3000/api/
    apiToken: secret
publish: false
`))
	require.NoError(t, err)
	assert.Equal(t, "Demo", c.Category())
	assert.False(t, c.PublishEnabled())
	assert.Equal(t, "http://localhost:3000/api", c.APIURL())
	t.Setenv(APITokenEnvVar, "")
	assert.Equal(t, "secret", c.APIToken())
}

func TestAPIURLKeepsScheme(t *testing.T) {
	c := &Config{Project: ProjectConfig{Server: "http://probedock.local/"}}
	assert.Equal(t, "http://probedock.local/api", c.APIURL())
}

func TestAPITokenFromEnvironmentWins(t *testing.T) {
	c := &Config{
		Project: ProjectConfig{Server: "s"},
		Servers: map[string]ServerConfig{"s": {APIToken: "from-file"}},
	}
	t.Setenv(APITokenEnvVar, "from-env")
	assert.Equal(t, "from-env", c.APIToken())
}

func TestParseConfigReportsEveryMissingField(t *testing.T) {
	_, err := ParseConfig("probedock.yml", []byte("project:\n  version: 1.0.0\n"))
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "probedock.yml", ce.Path)
	assert.Contains(t, err.Error(), "project.apiId is required")
	assert.Contains(t, err.Error(), "project.server is required")
	assert.NotContains(t, err.Error(), "project.version is required")
}

func TestParseEmptyConfig(t *testing.T) {
	_, err := ParseConfig("probedock.yml", []byte(""))
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, err.Error(), "file is empty")
}

func TestParseConfigIgnoresUnusedKeys(t *testing.T) {
	c, err := ParseConfig("probedock.yml", []byte(validConfig+"  tags: [demo]\nworkspace: ../ws\n"))
	require.NoError(t, err)
	assert.Equal(t, "kvr0r1t0ydqx", c.Project.APIID)
}

func TestLoadMissingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	_, err := LoadConfig(path)
	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0644))
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "kvr0r1t0ydqx", c.Project.APIID)
}
