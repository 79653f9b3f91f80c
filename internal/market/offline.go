package market

import (
	"context"
	"log/slog"
)

// Offline is the degraded-mode market data source used when no API key is
// configured. It always answers with DefaultPriceGBP.
type Offline struct {
	logger *slog.Logger
}

// NewOffline creates the degraded market data source and logs the degradation
// once, at construction.
func NewOffline(logger *slog.Logger) *Offline {
	logger.Warn("market data API key not configured, using default price",
		slog.Float64("default_gbp", DefaultPriceGBP),
	)
	return &Offline{logger: logger}
}

func (o *Offline) AverageUKPrice(ctx context.Context, item string) float64 {
	return DefaultPriceGBP
}
