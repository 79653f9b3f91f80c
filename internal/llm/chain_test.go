package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/tjfontaine/neo-nomad/internal/domain"
)

// mockProvider implements domain.ChatProvider for testing.
type mockProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Chat(ctx context.Context, messages []domain.Message) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewChain_RequiresProviders(t *testing.T) {
	if _, err := NewChain(discardLogger()); err == nil {
		t.Fatal("NewChain() with no providers should fail")
	}
}

func TestChain_PrimaryServes(t *testing.T) {
	primary := &mockProvider{name: "openrouter", reply: "primary answer"}
	secondary := &mockProvider{name: "gemini", reply: "secondary answer"}

	chain, err := NewChain(discardLogger(), primary, secondary)
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	got, err := chain.Chat(context.Background(), []domain.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "primary answer" {
		t.Errorf("Chat() = %q, want primary answer", got)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls)
	}
}

func TestChain_FallsBack(t *testing.T) {
	primary := &mockProvider{name: "openrouter", err: errors.New("rate limited")}
	secondary := &mockProvider{name: "gemini", reply: "secondary answer"}

	chain, err := NewChain(discardLogger(), primary, secondary)
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	got, err := chain.Chat(context.Background(), []domain.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "secondary answer" {
		t.Errorf("Chat() = %q, want secondary answer", got)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, secondary.calls)
	}
}

func TestChain_AllFail(t *testing.T) {
	primary := &mockProvider{name: "openrouter", err: errors.New("boom")}
	secondary := &mockProvider{name: "gemini", err: errors.New("bang")}

	chain, err := NewChain(discardLogger(), primary, secondary)
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	_, err = chain.Chat(context.Background(), []domain.Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("Chat() expected error when all providers fail")
	}
	for _, want := range []string{"openrouter", "gemini", "boom", "bang"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
