package tokens

import (
	"strings"
	"testing"

	"github.com/tjfontaine/neo-nomad/internal/domain"
)

func TestCount(t *testing.T) {
	e := NewEstimator()

	empty := e.Count(nil)
	if empty != replyPriming {
		t.Errorf("Count(nil) = %d, want %d", empty, replyPriming)
	}

	short := e.Count([]domain.Message{{Role: "user", Content: "Hello"}})
	if short <= empty {
		t.Errorf("Count(one message) = %d, want > %d", short, empty)
	}

	long := e.Count([]domain.Message{{Role: "user", Content: strings.Repeat("market price ", 200)}})
	if long <= short {
		t.Errorf("Count(long message) = %d, want > %d", long, short)
	}
}

func TestCount_GrowsWithMessages(t *testing.T) {
	e := NewEstimator()

	one := e.Count([]domain.Message{{Role: "user", Content: "a"}})
	two := e.Count([]domain.Message{
		{Role: "user", Content: "a"},
		{Role: "assistant", Content: "b"},
	})
	if two <= one {
		t.Errorf("Count(two messages) = %d, want > %d", two, one)
	}
}
