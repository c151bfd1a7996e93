package panther

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Config holds the connection settings for a Panther instance. Values come
// from an optional YAML file overlaid by environment variables; the
// environment always wins.
type Config struct {
	// APIToken authenticates every GraphQL and REST request.
	APIToken string `yaml:"api_token" env:"PANTHER_API_TOKEN"`

	// InstanceURL is the console URL of the Panther deployment. It is the
	// starting point for endpoint resolution when no explicit API URLs are
	// set.
	InstanceURL string `yaml:"instance_url" env:"PANTHER_INSTANCE_URL"`

	// RESTAPIURL, when set, overrides the resolved REST base URL.
	RESTAPIURL string `yaml:"rest_api_url" env:"PANTHER_REST_API_URL"`

	// GraphQLAPIURL, when set, overrides the resolved GraphQL endpoint.
	GraphQLAPIURL string `yaml:"gql_api_url" env:"PANTHER_GQL_API_URL"`

	// AllowInsecure disables TLS certificate verification. Only intended for
	// self-signed development instances.
	AllowInsecure bool `yaml:"allow_insecure_instance" env:"PANTHER_ALLOW_INSECURE_INSTANCE"`

	// DockerRuntime marks the process as running inside the published
	// container image. It only affects the User-Agent string.
	DockerRuntime bool `yaml:"-" env:"MCP_PANTHER_DOCKER_RUNTIME"`
}

// LoadConfig builds a Config from the optional YAML file at path (skipped
// when path is empty) and the process environment. Environment variables
// override file values.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	return cfg, nil
}

// Validate checks that the config is sufficient to reach an instance.
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return errors.New("PANTHER_API_TOKEN must be set")
	}
	if c.InstanceURL == "" && c.RESTAPIURL == "" && c.GraphQLAPIURL == "" {
		return errors.New("PANTHER_INSTANCE_URL must be set (or explicit API URL overrides)")
	}
	return nil
}
