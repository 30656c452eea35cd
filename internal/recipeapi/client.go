// Package recipeapi is the HTTP client for the remote recipe generation
// endpoint. One call is one POST carrying the ingredient list; the reply
// is decoded into a domain.Recipe.
package recipeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/logger"
)

// DefaultEndpoint is where the recipe backend listens in local setups.
const DefaultEndpoint = "http://localhost:8000/generate-recipe"

// HeaderRequestID carries a per-request UUID so client and server logs
// can be matched up.
const HeaderRequestID = "X-Request-ID"

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// ErrMalformedResponse is returned when a success response does not have
// the expected recipe shape.
var ErrMalformedResponse = errors.New("malformed recipe response")

// Compile-time interface check.
var _ domain.RecipeService = (*Client)(nil)

// ── Wire types ───────────────────────────────────────────────────

// generateRequest is the POST body.
type generateRequest struct {
	Ingredients []string `json:"ingredients"`
}

// generateResponse is the part of the reply we read. Unknown fields are
// ignored. Both fields are pointers so a missing key can be told apart
// from an empty value.
type generateResponse struct {
	CuisineName *string   `json:"cuisine_name"`
	Steps       *[]string `json:"steps"`
}

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Code      int
	Status    string
	Body      string // truncated
	RequestID string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recipeapi: %s (request %s): %s", e.Status, e.RequestID, e.Body)
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout. Zero means no timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// Client talks to the recipe generation endpoint.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
	log       *logger.Logger
}

// NewClient creates a recipe client for the full endpoint URL, e.g.
// "http://localhost:8000/generate-recipe". An empty endpoint selects
// DefaultEndpoint.
func NewClient(endpoint string, log *logger.Logger, opts ...ClientOption) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:  endpoint,
		userAgent: "RedChef/1.0",
		http:      &http.Client{Timeout: 60 * time.Second},
		log:       log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// Generate posts the ingredients, in order, and decodes the recipe.
func (c *Client) Generate(ctx context.Context, ingredients []string) (*domain.Recipe, error) {
	if ingredients == nil {
		ingredients = []string{}
	}
	jsonData, err := json.Marshal(generateRequest{Ingredients: ingredients})
	if err != nil {
		return nil, fmt.Errorf("recipeapi: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("recipeapi: create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, reqID)

	c.log.Debug("POST %s (%d bytes, request %s)", c.endpoint, len(jsonData), reqID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recipeapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("recipeapi: read response: %w", err)
	}

	c.log.Debug("request %s: %s in %s (%d bytes)", reqID, resp.Status, time.Since(start).Round(time.Millisecond), len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Code:      resp.StatusCode,
			Status:    resp.Status,
			Body:      truncate(string(respBody), maxErrorBody),
			RequestID: reqID,
		}
	}

	return decodeRecipe(respBody)
}

// decodeRecipe parses a success body. The backend answers model parse
// failures with 200 and an {"error", "raw_response"} object, which has
// neither field and is rejected here.
func decodeRecipe(body []byte) (*domain.Recipe, error) {
	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("recipeapi: unmarshal response: %w: %v", ErrMalformedResponse, err)
	}
	if out.CuisineName == nil {
		return nil, fmt.Errorf("recipeapi: %w: missing cuisine_name", ErrMalformedResponse)
	}
	if out.Steps == nil {
		return nil, fmt.Errorf("recipeapi: %w: missing steps", ErrMalformedResponse)
	}

	steps := *out.Steps
	if steps == nil {
		steps = []string{}
	}
	return &domain.Recipe{Name: *out.CuisineName, Steps: steps}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
