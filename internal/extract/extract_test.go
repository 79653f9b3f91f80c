package extract

import (
	"errors"
	"testing"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "object surrounded by prose",
			input: "Here is your result:\n{\"a\": 1}\nHope that helps!",
			want:  `{"a": 1}`,
		},
		{
			name:  "multiline nested object",
			input: "```json\n{\n  \"metrics\": {\"ask_gbp\": 260.0}\n}\n```",
			want:  "{\n  \"metrics\": {\"ask_gbp\": 260.0}\n}",
		},
		{
			name:  "greedy across multiple objects",
			input: `{"a":1} and {"b":2}`,
			want:  `{"a":1} and {"b":2}`,
		},
		{
			name:    "no object at all",
			input:   "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FirstJSONObject(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FirstJSONObject(%q) expected error, got %q", tt.input, got)
				}
				var shapeErr *ResponseShapeError
				if !errors.As(err, &shapeErr) {
					t.Fatalf("error = %T, want *ResponseShapeError", err)
				}
				if shapeErr.Raw != tt.input {
					t.Errorf("ResponseShapeError.Raw = %q, want %q", shapeErr.Raw, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("FirstJSONObject() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FirstJSONObject() = %q, want %q", got, tt.want)
			}
		})
	}
}
