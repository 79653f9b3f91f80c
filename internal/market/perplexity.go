// Package market looks up the fair UK value of a used item.
//
// The live client asks a search-augmented model for a bare decimal price.
// Every failure at this boundary is absorbed: callers always receive a
// finite, non-negative price, falling back to DefaultPriceGBP.
package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tjfontaine/neo-nomad/internal/domain"
)

const (
	defaultBaseURL = "https://api.perplexity.ai"
	defaultModel   = "sonar"
	defaultTimeout = 15 * time.Second

	// DefaultPriceGBP is returned whenever a live lookup is not possible.
	DefaultPriceGBP = 180.0
)

const promptTemplate = "What is the average market price for a used '%s' in the UK? " +
	"Respond with ONLY the price in GBP as a floating-point number. " +
	"Do not include currency symbols, text, or explanations. Just the number."

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client queries the Perplexity chat-completions API for market prices.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a live market data client.
func NewClient(apiKey string, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model    string           `json:"model"`
	Messages []domain.Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message domain.Message `json:"message"`
	} `json:"choices"`
}

// AverageUKPrice returns the looked-up price, or DefaultPriceGBP on any
// failure. It never returns an error; failures are logged at WARN.
func (c *Client) AverageUKPrice(ctx context.Context, item string) float64 {
	price, err := c.lookup(ctx, item)
	if err != nil {
		c.logger.Warn("market lookup failed, using default price",
			slog.String("item", item),
			slog.Float64("default_gbp", DefaultPriceGBP),
			slog.String("error", err.Error()),
		)
		return DefaultPriceGBP
	}
	c.logger.Info("market lookup completed",
		slog.String("item", item),
		slog.Float64("price_gbp", price),
	)
	return price
}

func (c *Client) lookup(ctx context.Context, item string) (float64, error) {
	body, err := json.Marshal(chatRequest{
		Model: defaultModel,
		Messages: []domain.Message{
			{Role: "user", Content: fmt.Sprintf(promptTemplate, item)},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return 0, fmt.Errorf("no choices in response")
	}

	return parsePrice(result.Choices[0].Message.Content)
}

// parsePrice reduces the model's answer to digits and dots, then parses it.
// Anything ParseFloat rejects (empty after stripping, multiple dots, ...) is
// a hard parse failure rather than a coerced value.
func parsePrice(s string) (float64, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable price %q (cleaned %q): %w", s, cleaned, err)
	}
	return price, nil
}
