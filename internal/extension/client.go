package extension

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"promptkit/internal/domain/models"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultAttempts = 3
	defaultDelay    = 200 * time.Millisecond
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// errorBody covers both problem+json responses and the {error} bodies of
// the extension routes.
type errorBody struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// Client talks to the PromptKit HTTP API on behalf of one user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry sets how many times a GET is attempted and the base delay
// between attempts.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.delay = delay
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
		attempts:   defaultAttempts,
		delay:      defaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Get performs a GET request and decodes the response into result.
// Transport failures and 5xx responses are retried.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return retry.Do(
		func() error {
			return c.do(ctx, http.MethodGet, path, nil, result)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
	)
}

// Post performs a POST request with a JSON body. It is never retried.
func (c *Client) Post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return handleResponse(resp, result)
}

func handleResponse(resp *http.Response, result any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			switch {
			case eb.Detail != "":
				apiErr.Message = eb.Detail
			case eb.Error != "":
				apiErr.Message = eb.Error
			case eb.Title != "":
				apiErr.Message = eb.Title
			}
		}
		return apiErr
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return true
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// ValidateToken asks the server whether the client's token is still valid.
// A rejected token is reported in the result, not as an error.
func (c *Client) ValidateToken(ctx context.Context) (*models.TokenValidation, error) {
	var result models.TokenValidation
	err := c.Get(ctx, "/api/extension/validate-token", &result)
	if IsUnauthorized(err) {
		var apiErr *APIError
		errors.As(err, &apiErr)
		return &models.TokenValidation{Valid: false, Error: apiErr.Message}, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatedPrompts fetches the user's own prompts.
func (c *Client) CreatedPrompts(ctx context.Context) (*models.ExtensionPromptList, error) {
	var list models.ExtensionPromptList
	if err := c.Get(ctx, "/api/extension/prompts/created", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// LikedPrompts fetches the prompts the user liked.
func (c *Client) LikedPrompts(ctx context.Context) (*models.ExtensionPromptList, error) {
	var list models.ExtensionPromptList
	if err := c.Get(ctx, "/api/extension/prompts/liked", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// FilterOptions fetches the folder and category chips.
func (c *Client) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	var opts models.FilterOptions
	if err := c.Get(ctx, "/api/extension/filter-options", &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// GetPrompt fetches a single prompt with its full content.
func (c *Client) GetPrompt(ctx context.Context, id string) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := c.Get(ctx, "/api/prompts/"+url.PathEscape(id), &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// RecordCopy bumps the copy counter and returns the new count.
func (c *Client) RecordCopy(ctx context.Context, id string) (int, error) {
	var result struct {
		Success   bool `json:"success"`
		CopyCount int  `json:"copy_count"`
	}
	if err := c.Post(ctx, "/api/prompts/"+url.PathEscape(id)+"/copy", nil, &result); err != nil {
		return 0, err
	}
	return result.CopyCount, nil
}

// ParentOptions fetches the flattened folder picker. editingID excludes a
// folder and its descendants.
func (c *Client) ParentOptions(ctx context.Context, editingID string) ([]models.FlattenedFolder, error) {
	path := "/api/folders/options"
	if editingID != "" {
		path += "?editing=" + url.QueryEscape(editingID)
	}
	var options []models.FlattenedFolder
	if err := c.Get(ctx, path, &options); err != nil {
		return nil, err
	}
	return options, nil
}
