package panther

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"panthermcp/pkg/logging"
)

// RestSession is a scoped handle for REST API calls. Open it, issue verbs,
// and Close it when done; verbs on a closed session return ErrSessionClosed.
type RestSession struct {
	client *Client
	base   string
	open   bool
}

// OpenRest resolves the REST base URL and returns a session bound to it.
func (c *Client) OpenRest(ctx context.Context) (*RestSession, error) {
	base, err := c.RESTBase(ctx)
	if err != nil {
		return nil, err
	}
	return &RestSession{client: c, base: base, open: true}, nil
}

// Close releases the session. Further verb calls fail with ErrSessionClosed.
func (s *RestSession) Close() {
	s.open = false
}

// Get issues a GET request. Expected status defaults to 200.
func (s *RestSession) Get(ctx context.Context, path string, params map[string]string, expected ...int) (map[string]interface{}, int, error) {
	return s.do(ctx, http.MethodGet, path, nil, params, expected)
}

// Delete issues a DELETE request. Expected status defaults to 200.
func (s *RestSession) Delete(ctx context.Context, path string, params map[string]string, expected ...int) (map[string]interface{}, int, error) {
	return s.do(ctx, http.MethodDelete, path, nil, params, expected)
}

// Post issues a POST request with a JSON body. Expected status defaults to
// 200 and 201.
func (s *RestSession) Post(ctx context.Context, path string, body interface{}, params map[string]string, expected ...int) (map[string]interface{}, int, error) {
	return s.do(ctx, http.MethodPost, path, body, params, expected)
}

// Put issues a PUT request with a JSON body. Expected status defaults to 200
// and 201.
func (s *RestSession) Put(ctx context.Context, path string, body interface{}, params map[string]string, expected ...int) (map[string]interface{}, int, error) {
	return s.do(ctx, http.MethodPut, path, body, params, expected)
}

// Patch issues a PATCH request with a JSON body. Expected status defaults to
// 200 and 201.
func (s *RestSession) Patch(ctx context.Context, path string, body interface{}, params map[string]string, expected ...int) (map[string]interface{}, int, error) {
	return s.do(ctx, http.MethodPatch, path, body, params, expected)
}

// defaultExpected returns the status codes considered successful for a verb
// when the caller did not name any.
func defaultExpected(method string) []int {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return []int{http.StatusOK, http.StatusCreated}
	default:
		return []int{http.StatusOK}
	}
}

func (s *RestSession) do(ctx context.Context, method, path string, body interface{}, params map[string]string, expected []int) (map[string]interface{}, int, error) {
	if !s.open {
		return nil, 0, ErrSessionClosed
	}
	if len(expected) == 0 {
		expected = defaultExpected(method)
	}

	endpoint := s.base + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		values := url.Values{}
		for key, value := range params {
			values.Set(key, value)
		}
		endpoint += "?" + values.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-API-Key", s.client.cfg.APIToken)
	req.Header.Set("User-Agent", userAgent(s.client.cfg.DockerRuntime))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("REST", "%s %s", method, endpoint)
	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	// A 401 only becomes a credentials error when the caller did not ask
	// for it; an expected 401 is handed back like any other response.
	if !statusExpected(resp.StatusCode, expected) {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, resp.StatusCode, &CredentialsError{Body: string(raw)}
		}
		return nil, resp.StatusCode, &RequestError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	result := map[string]interface{}{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return result, resp.StatusCode, nil
}

func statusExpected(status int, expected []int) bool {
	for _, code := range expected {
		if status == code {
			return true
		}
	}
	return false
}
