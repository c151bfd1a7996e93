package panther

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"panthermcp/pkg/logging"
)

// httpTimeout bounds every outgoing API call.
const httpTimeout = 30 * time.Second

// configScriptPattern extracts the embedded deployment config from the
// console's HTML shell.
var configScriptPattern = regexp.MustCompile(`(?s)<script id="__PANTHER_CONFIG__"[^>]*>\s*(.*?)\s*</script>`)

// instanceConfig is the subset of the console's embedded config the server
// cares about.
type instanceConfig struct {
	Rest            string `json:"rest"`
	GraphQLEndpoint string `json:"WEB_APPLICATION_GRAPHQL_API_ENDPOINT"`
}

// Client talks to one Panther instance over GraphQL and REST. It resolves
// API endpoints lazily from the instance URL and caches the result for the
// process lifetime.
type Client struct {
	cfg        *Config
	httpClient *http.Client

	group  singleflight.Group
	mu     sync.Mutex
	cached *instanceConfig
}

// NewClient creates a client for the given configuration.
func NewClient(cfg *Config) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.AllowInsecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   httpTimeout,
			Transport: transport,
		},
	}
}

// Config returns the client's configuration.
func (c *Client) Config() *Config {
	return c.cfg
}

// instance resolves the instance config, fetching the console HTML at most
// once for the process even under concurrent callers.
func (c *Client) instance(ctx context.Context) (*instanceConfig, error) {
	c.mu.Lock()
	if c.cached != nil {
		cached := c.cached
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("instance-config", func() (interface{}, error) {
		cfg, err := c.fetchInstanceConfig(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cached = cfg
		c.mu.Unlock()
		return cfg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*instanceConfig), nil
}

// fetchInstanceConfig loads the console HTML and extracts the embedded config
// JSON. When the console does not serve HTML (dev instances pointing straight
// at an API endpoint), the REST base is derived from the URL itself.
func (c *Client) fetchInstanceConfig(ctx context.Context) (*instanceConfig, error) {
	url := c.cfg.InstanceURL
	logging.Debug("Panther", "Resolving instance config from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build instance request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent(c.cfg.DockerRuntime))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach instance %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallbackInstanceConfig(url), nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read instance response: %w", err)
	}

	match := configScriptPattern.FindSubmatch(body)
	if match == nil {
		return nil, fmt.Errorf("no deployment config found at %s", url)
	}

	var cfg instanceConfig
	if err := json.Unmarshal(match[1], &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse deployment config: %w", err)
	}
	return &cfg, nil
}

// fallbackInstanceConfig derives a REST base from an instance URL that turned
// out to be an API endpoint rather than the console.
func fallbackInstanceConfig(url string) *instanceConfig {
	if idx := strings.Index(url, "public/graphql"); idx >= 0 {
		url = url[:idx]
	}
	return &instanceConfig{Rest: strings.TrimRight(url, "/")}
}

// RESTBase returns the base URL for REST API calls: the explicit override if
// set, otherwise the instance config's rest endpoint, otherwise the GraphQL
// endpoint with its internal path stripped.
func (c *Client) RESTBase(ctx context.Context) (string, error) {
	if c.cfg.RESTAPIURL != "" {
		return strings.TrimRight(c.cfg.RESTAPIURL, "/"), nil
	}

	cfg, err := c.instance(ctx)
	if err != nil {
		return "", err
	}
	if cfg.Rest != "" {
		return strings.TrimRight(cfg.Rest, "/"), nil
	}
	if cfg.GraphQLEndpoint != "" {
		return strings.TrimRight(strings.TrimSuffix(cfg.GraphQLEndpoint, "/internal/graphql"), "/"), nil
	}
	return "", fmt.Errorf("instance %s exposes no REST endpoint", c.cfg.InstanceURL)
}

// GraphQLEndpoint returns the public GraphQL endpoint: the explicit override
// if set, otherwise derived from the REST base.
func (c *Client) GraphQLEndpoint(ctx context.Context) (string, error) {
	if c.cfg.GraphQLAPIURL != "" {
		return c.cfg.GraphQLAPIURL, nil
	}

	base, err := c.RESTBase(ctx)
	if err != nil {
		return "", err
	}
	return base + "/public/graphql", nil
}
