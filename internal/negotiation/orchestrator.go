// Package negotiation turns an item and a local asking price into a
// structured verdict by prompting an LLM with looked-up market data.
package negotiation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tjfontaine/neo-nomad/internal/domain"
	"github.com/tjfontaine/neo-nomad/internal/extract"
	"github.com/tjfontaine/neo-nomad/internal/tokens"
)

// Orchestrator runs the fixed two-step analysis: market lookup, then a
// single prompt-templated chat call through the provider fallback chain.
type Orchestrator struct {
	chat      domain.ChatProvider
	market    domain.MarketData
	estimator *tokens.Estimator
	logger    *slog.Logger
}

// New creates an orchestrator. A nil chat provider puts the orchestrator in
// degraded mode: Analyze returns an empty result without calling anything.
func New(chat domain.ChatProvider, market domain.MarketData, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		chat:      chat,
		market:    market,
		estimator: tokens.NewEstimator(),
		logger:    logger,
	}
}

// Analyze produces a negotiation verdict for the item at the given local
// asking price. Failures never escape as panics: the caller receives an
// empty result and a human-readable error to display.
func (o *Orchestrator) Analyze(ctx context.Context, item string, askPriceLocal float64, country domain.CountryContext) (domain.NegotiationResult, error) {
	if o.chat == nil || o.market == nil {
		o.logger.Warn("llm chat service unavailable, skipping analysis")
		return domain.NegotiationResult{}, nil
	}

	askGBP := askPriceLocal * country.RateToGBP
	fairGBP := o.market.AverageUKPrice(ctx, item)

	prompt := buildPrompt(item, askPriceLocal, askGBP, fairGBP, country)
	messages := []domain.Message{{Role: "user", Content: prompt}}

	o.logger.Info("dispatching negotiation prompt",
		slog.String("item", item),
		slog.String("country", country.Name),
		slog.Float64("ask_gbp", askGBP),
		slog.Float64("fair_gbp", fairGBP),
		slog.Int("prompt_tokens_est", o.estimator.Count(messages)),
	)

	raw, err := o.chat.Chat(ctx, messages)
	if err != nil {
		return domain.NegotiationResult{}, fmt.Errorf("llm chat failed: %w", err)
	}

	payload, err := extract.FirstJSONObject(raw)
	if err != nil {
		return domain.NegotiationResult{}, err
	}

	var result domain.NegotiationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return domain.NegotiationResult{}, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	if err := validate(result); err != nil {
		return domain.NegotiationResult{}, err
	}
	return result, nil
}

// validate rejects responses that parsed but lack the expected keys, so the
// presentation layer never indexes into a half-filled structure.
func validate(r domain.NegotiationResult) error {
	if r.Insight.Status != domain.StatusOverpriced && r.Insight.Status != domain.StatusFair {
		return fmt.Errorf("analysis has unexpected status %q", r.Insight.Status)
	}
	if r.Action.Script == "" {
		return fmt.Errorf("analysis is missing the negotiation script")
	}
	return nil
}
