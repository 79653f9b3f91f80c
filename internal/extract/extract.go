// Package extract pulls structured payloads out of free-form model output.
package extract

import (
	"fmt"
	"regexp"
)

// jsonObjectPattern matches the first '{' through the last '}' in the text,
// across newlines. Greedy on purpose: models that emit prose around the
// object still yield the full object, and the object itself is validated by
// the JSON decoder downstream.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ResponseShapeError reports that a model response did not contain an
// extractable JSON object. Raw carries the full response for display.
type ResponseShapeError struct {
	Raw string
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("could not find a valid JSON object in the model response: %q", e.Raw)
}

// FirstJSONObject returns the first brace-delimited JSON object candidate in
// s, or a *ResponseShapeError when none is present.
func FirstJSONObject(s string) (string, error) {
	match := jsonObjectPattern.FindString(s)
	if match == "" {
		return "", &ResponseShapeError{Raw: s}
	}
	return match, nil
}
