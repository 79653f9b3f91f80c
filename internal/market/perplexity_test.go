package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tjfontaine/neo-nomad/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCompletions returns an httptest server that answers the chat-completions
// path with the given content string.
func fakeCompletions(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test-key", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Model != "sonar" {
			t.Errorf("model = %q, want sonar", req.Model)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
	}))
}

func TestAverageUKPrice(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{name: "bare decimal", content: "185.50", want: 185.50},
		{name: "currency symbol and commas", content: "£1,234.50", want: 1234.50},
		{name: "surrounding text", content: "Approximately 200 GBP", want: 200},
		{name: "multiple decimal points fall back", content: "between 150.00 and 190.00", want: DefaultPriceGBP},
		{name: "no digits fall back", content: "I do not know.", want: DefaultPriceGBP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeCompletions(t, tt.content)
			defer srv.Close()

			c := NewClient("test-key", discardLogger(), WithBaseURL(srv.URL))
			got := c.AverageUKPrice(context.Background(), "Used Canon AE-1 Camera")
			if got != tt.want {
				t.Errorf("AverageUKPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAverageUKPrice_UpstreamFailure(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewClient("test-key", discardLogger(), WithBaseURL(srv.URL))
		if got := c.AverageUKPrice(context.Background(), "camera"); got != DefaultPriceGBP {
			t.Errorf("AverageUKPrice() = %v, want default %v", got, DefaultPriceGBP)
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		c := NewClient("test-key", discardLogger(), WithBaseURL("http://127.0.0.1:1"))
		if got := c.AverageUKPrice(context.Background(), "camera"); got != DefaultPriceGBP {
			t.Errorf("AverageUKPrice() = %v, want default %v", got, DefaultPriceGBP)
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[]}`)
		}))
		defer srv.Close()

		c := NewClient("test-key", discardLogger(), WithBaseURL(srv.URL))
		if got := c.AverageUKPrice(context.Background(), "camera"); got != DefaultPriceGBP {
			t.Errorf("AverageUKPrice() = %v, want default %v", got, DefaultPriceGBP)
		}
	})
}

func TestAverageUKPrice_VCR(t *testing.T) {
	recorder, cleanup := testutil.NewVCRRecorder(t, "perplexity_price")
	defer cleanup()

	c := NewClient("test-key", discardLogger(), WithHTTPClient(testutil.VCRHTTPClient(recorder)))
	got := c.AverageUKPrice(context.Background(), "Used Canon AE-1 Camera")
	if got != 185.0 {
		t.Errorf("AverageUKPrice() = %v, want 185.0 from cassette", got)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "180.0", want: 180.0},
		{input: " 99 ", want: 99},
		{input: "£210.25", want: 210.25},
		{input: "1.2.3", wantErr: true},
		{input: "", wantErr: true},
		{input: "no numbers here", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePrice(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePrice(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePrice(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parsePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOffline(t *testing.T) {
	o := NewOffline(discardLogger())
	for _, item := range []string{"camera", "", strings.Repeat("x", 1000)} {
		if got := o.AverageUKPrice(context.Background(), item); got != DefaultPriceGBP {
			t.Errorf("Offline.AverageUKPrice(%q) = %v, want %v", item, got, DefaultPriceGBP)
		}
	}
}
