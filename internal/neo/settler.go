package neo

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/tjfontaine/neo-nomad/internal/domain"
)

const errNodeOffline = "Neo node is offline."

// txHashLen is the digit length of a fabricated transaction id, excluding
// the "0x" prefix.
const txHashLen = 64

// StatusSource provides the current chain height for settlements.
type StatusSource interface {
	BlockHeight(ctx context.Context) string
}

// now is swapped out in tests for deterministic transaction ids.
var now = time.Now

// Settler records mock settlements. The transaction id it fabricates is
// derived from the wall clock, not from transaction content; nothing is
// signed or broadcast.
type Settler struct {
	status StatusSource
	logger *slog.Logger
}

// NewSettler creates a settler backed by the given chain status source.
func NewSettler(status StatusSource, logger *slog.Logger) *Settler {
	return &Settler{status: status, logger: logger}
}

// Settle fetches the chain height and fabricates a settlement result. The
// seller address is accepted as opaque text. It never returns an error: an
// unreachable node yields a Success=false result.
func (s *Settler) Settle(ctx context.Context, sellerAddress string) domain.SettlementResult {
	s.logger.Info("executing mock settlement", slog.String("seller", sellerAddress))

	height := s.status.BlockHeight(ctx)
	if height == StatusOffline {
		s.logger.Warn("settlement failed, node offline")
		return domain.SettlementResult{Success: false, Error: errNodeOffline}
	}

	block, err := strconv.ParseInt(strings.ReplaceAll(height, ",", ""), 10, 64)
	if err != nil {
		s.logger.Warn("settlement failed, bad block height", slog.String("height", height))
		return domain.SettlementResult{Success: false, Error: errNodeOffline}
	}

	return domain.SettlementResult{
		Success: true,
		Tx:      mockTxID(now()),
		Block:   block,
	}
}

// mockTxID builds a "0x"-prefixed 64-character id from the decimal digits of
// the timestamp, truncated or right-padded with zeros.
func mockTxID(t time.Time) string {
	digits := strconv.FormatInt(t.UnixNano(), 10)
	if len(digits) > txHashLen {
		digits = digits[:txHashLen]
	} else {
		digits += strings.Repeat("0", txHashLen-len(digits))
	}
	return "0x" + digits
}
