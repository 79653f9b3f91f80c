package negotiation

import (
	"fmt"
	"strconv"

	"github.com/tjfontaine/neo-nomad/internal/domain"
)

// overpricedMarginGBP is the margin above fair value at which an asking
// price is classified as overpriced.
const overpricedMarginGBP = 20.0

const promptTemplate = `You are a JSON API. Your ONLY job is to analyze the following data and return a single, valid JSON object.
You are an expert negotiator for a world traveler currently in %s.

DATA:
- Item: "%s"
- Asking Price (%s): %s
- Asking Price (GBP): %.2f
- Real-time Fair Market Value in UK (GBP): %.2f

RULES:
1. Compare the asking price to the fair value. If it's overpriced by more than £%.0f, the status is 'overpriced'.
2. The "script" field MUST be a polite but firm negotiation script written in %s.
3. The "reasoning" field MUST remain in English.
4. Your entire response MUST be ONLY the JSON object and nothing else. Do not add any text, explanations, or markdown formatting.

You MUST follow this exact nested JSON structure:
{
    "metrics": {"ask_gbp": %.2f, "fair_gbp": %.2f},
    "insight": {"status": "...", "reasoning": "..."},
    "action": {"label": "...", "script": "..."}
}`

// buildPrompt renders the single-turn negotiation prompt.
func buildPrompt(item string, askPriceLocal, askGBP, fairGBP float64, country domain.CountryContext) string {
	local := strconv.FormatFloat(askPriceLocal, 'f', -1, 64)
	return fmt.Sprintf(promptTemplate,
		country.Name,
		item,
		country.Currency, local,
		askGBP,
		fairGBP,
		overpricedMarginGBP,
		country.Language,
		askGBP, fairGBP,
	)
}
