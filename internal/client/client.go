// Package client is a thin HTTP client for the OpenViking API. It decodes
// responses into order-preserving JSON values and normalizes the server's
// error and result envelopes; everything about presentation belongs to the
// render package.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/openviking/ovx/pkg/loader"
)

// DefaultTimeout bounds a single API call when the config does not override it.
const DefaultTimeout = 60 * time.Second

// APIError is an error reported by the server, either as a non-2xx status or
// as an error object inside a 2xx body.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

// Client issues JSON requests against a base URL with an optional API key.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// New creates a Client. A non-positive timeout falls back to DefaultTimeout.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// Get issues a GET request and returns the decoded result.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (any, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post issues a POST request with a JSON body and returns the decoded result.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Delete issues a DELETE request and returns the decoded result.
func (c *Client) Delete(ctx context.Context, path string, params url.Values) (any, error) {
	return c.do(ctx, http.MethodDelete, path, params, nil)
}

// DeleteWithBody issues a DELETE request carrying a JSON body.
func (c *Client) DeleteWithBody(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodDelete, path, nil, body)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (any, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	return handleResponse(resp)
}

// handleResponse normalizes the server's response conventions: empty-status
// replies become null, error envelopes become *APIError, and a "result"
// field is unwrapped when present.
func handleResponse(resp *http.Response) (any, error) {
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusAccepted {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	decoded, decodeErr := loader.DecodeJSONBytes(data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Message: httpErrorMessage(resp.StatusCode, decoded, decodeErr)}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", decodeErr)
	}

	if body, ok := decoded.(*orderedmap.OrderedMap[string, any]); ok {
		if errVal, present := body.Get("error"); present && errVal != nil {
			apiErr := &APIError{Code: "UNKNOWN", Message: "Unknown error"}
			if errObj, ok := errVal.(*orderedmap.OrderedMap[string, any]); ok {
				if code, ok := errObj.Get("code"); ok {
					if s, ok := code.(string); ok {
						apiErr.Code = s
					}
				}
				if msg, ok := errObj.Get("message"); ok {
					if s, ok := msg.(string); ok {
						apiErr.Message = s
					}
				}
			}
			return nil, apiErr
		}
		if result, present := body.Get("result"); present {
			return result, nil
		}
	}

	return decoded, nil
}

// httpErrorMessage extracts the most specific message available from an
// error response body: error.message, then detail, then the bare status.
func httpErrorMessage(status int, decoded any, decodeErr error) string {
	fallback := fmt.Sprintf("HTTP error %d", status)
	if decodeErr != nil {
		return fallback
	}
	body, ok := decoded.(*orderedmap.OrderedMap[string, any])
	if !ok {
		return fallback
	}
	if errVal, present := body.Get("error"); present {
		if errObj, ok := errVal.(*orderedmap.OrderedMap[string, any]); ok {
			if msg, ok := errObj.Get("message"); ok {
				if s, ok := msg.(string); ok && s != "" {
					return s
				}
			}
		}
	}
	if detail, present := body.Get("detail"); present {
		if s, ok := detail.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
