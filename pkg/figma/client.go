package figma

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

const (
	figmaAPIBase = "https://api.figma.com/v1"
	maxRetries   = 3
)

// Client represents a Figma API client with configured HTTP settings for reliable communication
// with the Figma API. It includes retry logic for rate limits and transient server errors.
type Client struct {
	accessToken string
	baseURL     string
	retryDelay  time.Duration
	httpClient  *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetryDelay sets the base delay between attempts. Attempt n waits n times the delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// NewClient creates a new Figma API client with the provided personal access token.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     figmaAPIBase,
		retryDelay:  2 * time.Second,
		httpClient: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: transport,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var fileKeyPattern = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:[/?#]|$)`)

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// Returns an error if the URL format is invalid or if the URL doesn't match the expected Figma domain pattern.
func ExtractFileKey(figmaURL string) (string, error) {
	// Anchored to ensure the entire URL matches the expected pattern and prevent bypass attacks.
	matches := fileKeyPattern.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}

	return matches[1], nil
}

// GetLocalVariables retrieves the local variables and variable collections of a file.
// The endpoint is only available to members of Enterprise organizations; a 403 response
// is reported with that hint.
func (c *Client) GetLocalVariables(fileKey string) (*LocalVariablesResponse, error) {
	var resp LocalVariablesResponse
	if err := c.get(fmt.Sprintf("/files/%s/variables/local", fileKey), &resp); err != nil {
		return nil, err
	}
	if resp.Error {
		return nil, fmt.Errorf("variables API reported an error (status %d)", resp.Status)
	}
	return &resp, nil
}

// get performs a GET request against the API and decodes the JSON body into out.
// Implements automatic retry logic (up to 3 attempts) with linear backoff: the request
// is retried on transport errors, 429 (rate limit) and 5xx (server error) responses.
func (c *Client) get(path string, out any) error {
	url := c.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		body, retry, err := c.do(url, attempt)
		if err == nil {
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil
		}

		lastErr = err
		if !retry || attempt == maxRetries {
			break
		}
		time.Sleep(time.Duration(attempt) * c.retryDelay)
	}

	return lastErr
}

// do executes a single attempt and reports whether a failure is worth retrying.
func (c *Client) do(url string, attempt int) ([]byte, bool, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("attempt %d failed to read response body: %w", attempt, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, false, nil
	case resp.StatusCode == http.StatusForbidden:
		return nil, false, fmt.Errorf("API request failed with status %d (the variables API requires an Enterprise plan and a token with file_variables:read scope): %s", resp.StatusCode, string(body))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	default:
		return nil, false, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
}
