package probedock

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "probedock.yml"

// DefaultCategory labels results produced by this runner.
const DefaultCategory = "Go"

// APITokenEnvVar, when set, overrides the API token from the configuration file.
const APITokenEnvVar = "PROBEDOCK_API_TOKEN"

// Config holds the Probe Dock settings. The file should contain at least:
//
//	project:
//	  apiId: kvr0r1t0ydqx
//	  version: 1.0.0
//	  server: trial.probedock.io
//
// where apiId is the unique id assigned by Probe Dock to the project and server is the
// hostname of the Probe Dock server. Keys this runner does not use are ignored, so files
// written for other Probe Dock clients load as they are.
type Config struct {
	Project ProjectConfig           `yaml:"project"`
	Servers map[string]ServerConfig `yaml:"servers"`
	Publish *bool                   `yaml:"publish"`
}

type ProjectConfig struct {
	APIID    string `yaml:"apiId"`
	Version  string `yaml:"version"`
	Server   string `yaml:"server"`
	Category string `yaml:"category"`
}

// ServerConfig holds per-server settings, keyed by the name used in project.server.
type ServerConfig struct {
	APIURL   string `yaml:"apiUrl"`
	APIToken string `yaml:"apiToken"`
}

// LoadConfig reads and validates the configuration file at path. Any problem is returned
// as a *ConfigurationError.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	return ParseConfig(path, data)
}

// ParseConfig decodes and validates configuration data. The path is only used in errors.
func ParseConfig(path string, data []byte) (*Config, error) {
	var c Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("file is empty")
		}
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	if err := c.Validate(); err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	return &c, nil
}

// Validate checks that every required setting is present.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Project.APIID == "" {
		result = multierror.Append(result, errors.New("project.apiId is required"))
	}
	if c.Project.Version == "" {
		result = multierror.Append(result, errors.New("project.version is required"))
	}
	if c.Project.Server == "" {
		result = multierror.Append(result, errors.New("project.server is required"))
	}
	return result.ErrorOrNil()
}

// Category is the label attached to every result.
func (c *Config) Category() string {
	if c.Project.Category != "" {
		return c.Project.Category
	}
	return DefaultCategory
}

// PublishEnabled is true unless the file explicitly turns publishing off.
func (c *Config) PublishEnabled() bool {
	return c.Publish == nil || *c.Publish
}

// APIURL is the base URL of the Probe Dock API, without a trailing slash.
func (c *Config) APIURL() string {
	if s, ok := c.Servers[c.Project.Server]; ok && s.APIURL != "" {
		return strings.TrimSuffix(s.APIURL, "/")
	}
	server := strings.TrimSuffix(c.Project.Server, "/")
	if strings.Contains(server, "://") {
		return server + "/api"
	}
	return "https://" + server + "/api"
}

// APIToken returns the token from the environment if set, otherwise from the file.
func (c *Config) APIToken() string {
	if token := os.Getenv(APITokenEnvVar); token != "" {
		return token
	}
	return c.Servers[c.Project.Server].APIToken
}
