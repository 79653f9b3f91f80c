package domain

import (
	"context"
)

// ChatProvider defines the interface for LLM chat backends.
type ChatProvider interface {
	Name() string

	// Chat sends a single-turn conversation and returns the raw assistant text.
	Chat(ctx context.Context, messages []Message) (string, error)
}

// MarketData looks up the average UK market price of a used item, in GBP.
// Implementations never fail: any lookup problem resolves to a default value.
type MarketData interface {
	AverageUKPrice(ctx context.Context, item string) float64
}

// Settler records a mock purchase settlement against the current chain state.
// The seller address is treated as opaque text; no validation, signing or
// broadcast happens. Implementations never fail: problems resolve to a
// SettlementResult with Success=false.
type Settler interface {
	Settle(ctx context.Context, sellerAddress string) SettlementResult
}

// Narrator speaks a negotiation script. Implementations return the synthesized
// audio as a single buffer, or nil with no error when narration is disabled.
type Narrator interface {
	Speak(ctx context.Context, text, voice string) ([]byte, error)
}
