package neo

import (
	"context"
	"log/slog"

	"github.com/tjfontaine/neo-nomad/internal/domain"
)

// OfflineSettler is the degraded-mode settlement variant selected when the
// settlement capability is disabled. Every attempt fails with a fixed error.
type OfflineSettler struct{}

// NewOfflineSettler creates the degraded settler and logs the degradation once.
func NewOfflineSettler(logger *slog.Logger) *OfflineSettler {
	logger.Warn("settlement disabled, all settlement attempts will fail")
	return &OfflineSettler{}
}

func (o *OfflineSettler) Settle(ctx context.Context, sellerAddress string) domain.SettlementResult {
	return domain.SettlementResult{Success: false, Error: "Settlement is not available."}
}

// OfflineStatus is the chain-status variant used when the node client is
// disabled; it always reports StatusOffline.
type OfflineStatus struct{}

func (OfflineStatus) BlockHeight(ctx context.Context) string {
	return StatusOffline
}
