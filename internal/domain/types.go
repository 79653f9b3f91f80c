package domain

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Status classifies an asking price against the looked-up fair value.
type Status string

const (
	StatusOverpriced Status = "overpriced"
	StatusFair       Status = "fair"
)

// Metrics holds the two prices the negotiation verdict is based on, in GBP.
type Metrics struct {
	AskGBP  float64 `json:"ask_gbp"`
	FairGBP float64 `json:"fair_gbp"`
}

// Insight is the model's verdict on the asking price.
type Insight struct {
	Status    Status `json:"status"`
	Reasoning string `json:"reasoning"`
}

// Action is the suggested next step: a button label and a negotiation
// script written in the destination country's spoken language.
type Action struct {
	Label  string `json:"label"`
	Script string `json:"script"`
}

// NegotiationResult is the exact nested shape the model is instructed to
// return. The zero value means no analysis was produced.
type NegotiationResult struct {
	Metrics Metrics `json:"metrics"`
	Insight Insight `json:"insight"`
	Action  Action  `json:"action"`
}

// Empty reports whether the result carries no analysis.
func (r NegotiationResult) Empty() bool {
	return r == NegotiationResult{}
}

// SettlementResult is the outcome of one mock settlement attempt.
// Tx is a presentation placeholder, not a real ledger entry.
type SettlementResult struct {
	Success bool   `json:"success"`
	Tx      string `json:"tx,omitempty"`
	Block   int64  `json:"block,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CountryContext is the static per-country record an analysis runs under.
type CountryContext struct {
	Name      string  `json:"name"`
	Currency  string  `json:"currency"`
	Language  string  `json:"language"`
	Voice     string  `json:"voice"`
	RateToGBP float64 `json:"rate_to_gbp"`
}
