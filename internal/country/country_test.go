package country

import (
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name         string
		country      string
		wantCurrency string
		wantRate     float64
		wantErr      bool
	}{
		{name: "japan", country: "Japan", wantCurrency: "Yen", wantRate: 0.0052},
		{name: "france", country: "France", wantCurrency: "Euro", wantRate: 0.85},
		{name: "unknown", country: "Atlantis", wantErr: true},
		{name: "case sensitive", country: "japan", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := Lookup(tt.country)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Lookup(%q) expected error, got %+v", tt.country, ctx)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.country, err)
			}
			if ctx.Currency != tt.wantCurrency {
				t.Errorf("currency = %q, want %q", ctx.Currency, tt.wantCurrency)
			}
			if ctx.RateToGBP != tt.wantRate {
				t.Errorf("rate = %v, want %v", ctx.RateToGBP, tt.wantRate)
			}
		})
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("All() returned %d contexts, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name >= all[i].Name {
			t.Errorf("All() not sorted: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
	for _, c := range all {
		if c.Voice == "" || c.Language == "" || c.RateToGBP <= 0 {
			t.Errorf("incomplete context: %+v", c)
		}
	}
}
