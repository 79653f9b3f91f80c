// Package neo talks to a public Neo N3 node and records mock settlements
// against its current block height.
package neo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultNodeURL is a public Neo N3 testnet seed node.
	DefaultNodeURL = "http://seed1t5.neo.org:20332"

	defaultTimeout = 3 * time.Second

	// StatusOffline is the sentinel height returned when the node cannot be
	// reached or reports no blocks.
	StatusOffline = "Offline"
)

// grouping formats block heights with thousands separators for display.
var grouping = message.NewPrinter(language.English)

// ClientOption configures the client.
type ClientOption func(*Client)

// WithNodeURL sets a custom node URL.
func WithNodeURL(nodeURL string) ClientOption {
	return func(c *Client) {
		c.nodeURL = strings.TrimSuffix(nodeURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client issues JSON-RPC calls against a Neo N3 node.
type Client struct {
	nodeURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a chain status client.
func NewClient(logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		nodeURL:    DefaultNodeURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	Result int64 `json:"result"`
}

// BlockHeight returns the latest block index as a comma-grouped decimal
// string, or StatusOffline when the node is unreachable or reports no
// blocks. It never returns an error.
func (c *Client) BlockHeight(ctx context.Context) string {
	count, err := c.blockCount(ctx)
	if err != nil || count <= 0 {
		if err != nil {
			c.logger.Info("could not fetch block height",
				slog.String("node", c.nodeURL),
				slog.String("error", err.Error()),
			)
		}
		return StatusOffline
	}
	// The RPC result is the total number of blocks; the latest index is one less.
	return grouping.Sprintf("%d", count-1)
}

func (c *Client) blockCount(ctx context.Context) (int64, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "getblockcount",
		Params:  []any{},
		ID:      1,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.nodeURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		return 0, fmt.Errorf("node error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result rpcResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result.Result, nil
}
