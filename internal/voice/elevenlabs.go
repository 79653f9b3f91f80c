// Package voice narrates negotiation scripts through the ElevenLabs
// text-to-speech API.
package voice

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
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	defaultModelID = "eleven_multilingual_v2"
	defaultTimeout = 30 * time.Second

	// DefaultVoiceID is used for voice names with no configured binding.
	DefaultVoiceID = "EXAVITQu4vr4xnSDxMaL"
)

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

// WithVoiceMap sets the voice-name to voice-ID bindings. Names missing from
// the map fall back to DefaultVoiceID.
func WithVoiceMap(voices map[string]string) ClientOption {
	return func(c *Client) {
		if len(voices) > 0 {
			c.voices = voices
		}
	}
}

// Client synthesizes speech for negotiation scripts.
type Client struct {
	apiKey     string
	baseURL    string
	voices     map[string]string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a live narrator.
func NewClient(apiKey string, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		voices:     map[string]string{},
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type speechRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Speak synthesizes text with the named voice and returns the complete MP3
// buffer. The response body is streamed; chunks are concatenated into one
// buffer before returning.
func (c *Client) Speak(ctx context.Context, text, voice string) ([]byte, error) {
	voiceID := c.voices[voice]
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	body, err := json.Marshal(speechRequest{Text: text, ModelID: defaultModelID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(errBody))
	}

	var audio bytes.Buffer
	if _, err := io.Copy(&audio, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}

	c.logger.Info("synthesized narration",
		slog.String("voice", voice),
		slog.String("voice_id", voiceID),
		slog.Int("audio_bytes", audio.Len()),
	)
	return audio.Bytes(), nil
}
