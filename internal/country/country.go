// Package country holds the static destination table an analysis runs under.
package country

import (
	"fmt"
	"sort"

	"github.com/tjfontaine/neo-nomad/internal/domain"
)

// contexts is the fixed destination table. Rates are snapshot conversion
// rates to GBP, not live FX data.
var contexts = map[string]domain.CountryContext{
	"Japan":  {Name: "Japan", Currency: "Yen", Language: "Japanese", Voice: "Mimi", RateToGBP: 0.0052},
	"France": {Name: "France", Currency: "Euro", Language: "French", Voice: "Nicole", RateToGBP: 0.85},
	"USA":    {Name: "USA", Currency: "Dollar", Language: "English", Voice: "Rachel", RateToGBP: 0.79},
	"Brazil": {Name: "Brazil", Currency: "Real", Language: "Portuguese", Voice: "Camila", RateToGBP: 0.15},
}

// Lookup returns the context for a country by name.
func Lookup(name string) (domain.CountryContext, error) {
	ctx, ok := contexts[name]
	if !ok {
		return domain.CountryContext{}, fmt.Errorf("unknown country: %q", name)
	}
	return ctx, nil
}

// All returns every known country context, sorted by name.
func All() []domain.CountryContext {
	out := make([]domain.CountryContext, 0, len(contexts))
	for _, c := range contexts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
