package voice

import (
	"context"
	"log/slog"
)

// Offline is the degraded-mode narrator used when no speech API key is
// configured. Speak warns and returns no audio, without error.
type Offline struct {
	logger *slog.Logger
}

// NewOffline creates the degraded narrator and logs the degradation once.
func NewOffline(logger *slog.Logger) *Offline {
	logger.Warn("speech synthesis API key not configured, narration disabled")
	return &Offline{logger: logger}
}

func (o *Offline) Speak(ctx context.Context, text, voice string) ([]byte, error) {
	o.logger.Warn("narration skipped, no speech API key", slog.String("voice", voice))
	return nil, nil
}
