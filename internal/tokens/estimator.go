// Package tokens estimates prompt token counts before dispatching a chat
// request. Counts are informational (logging, status) and never block a call.
package tokens

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/tjfontaine/neo-nomad/internal/domain"
)

// Per-message framing overhead and reply priming, matching the OpenAI chat
// format accounting.
const (
	messageOverhead = 4
	replyPriming    = 3
)

// Estimator counts tokens with the cl100k_base encoding, falling back to a
// bytes/4 heuristic if the encoding cannot be loaded.
type Estimator struct {
	once  sync.Once
	codec tokenizer.Codec
}

// NewEstimator creates a lazy estimator; the encoding is loaded on first use.
func NewEstimator() *Estimator {
	return &Estimator{}
}

func (e *Estimator) load() {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return
	}
	e.codec = codec
}

// Count returns the estimated prompt token count for the conversation.
func (e *Estimator) Count(messages []domain.Message) int {
	e.once.Do(e.load)

	total := replyPriming
	for _, m := range messages {
		total += messageOverhead
		total += e.countText(m.Role)
		total += e.countText(m.Content)
	}
	return total
}

func (e *Estimator) countText(s string) int {
	if e.codec == nil {
		return (len(s) + 3) / 4
	}
	ids, _, err := e.codec.Encode(s)
	if err != nil {
		return (len(s) + 3) / 4
	}
	return len(ids)
}
