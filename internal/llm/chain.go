// Package llm routes chat requests through a fixed provider fallback order.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tjfontaine/neo-nomad/internal/domain"
)

// Chain tries each configured provider in order until one answers. The
// order is fixed at construction; it is not tunable per call.
type Chain struct {
	providers []domain.ChatProvider
	logger    *slog.Logger
}

// NewChain creates a fallback chain over the given providers.
func NewChain(logger *slog.Logger, providers ...domain.ChatProvider) (*Chain, error) {
	if len(providers) == 0 {
		return nil, errors.New("llm: at least one provider is required")
	}
	return &Chain{providers: providers, logger: logger}, nil
}

func (c *Chain) Name() string {
	return "fallback-chain"
}

// Chat dispatches to the first provider that succeeds. When every provider
// fails, the joined errors are returned.
func (c *Chain) Chat(ctx context.Context, messages []domain.Message) (string, error) {
	var errs []error
	for _, p := range c.providers {
		text, err := p.Chat(ctx, messages)
		if err == nil {
			return text, nil
		}
		c.logger.Warn("chat provider failed, trying next",
			slog.String("provider", p.Name()),
			slog.String("error", err.Error()),
		)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}
	return "", fmt.Errorf("all chat providers failed: %w", errors.Join(errs...))
}
