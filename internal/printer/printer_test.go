package printer

import (
	"strings"
	"testing"
)

// TestRenderFunctions verifies that all render functions return the input text.
func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
		input    string
	}{
		{"Faint", Faint, "test text"},
		{"Bold", Bold, "test text"},
		{"Success", Success, "test text"},
		{"Error", Error, "test text"},
		{"Warning", Warning, "test text"},
		{"Info", Info, "test text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.function(tt.input)

			if result == "" {
				t.Errorf("%s() returned empty string", tt.name)
			}

			// The styled output may or may not contain ANSI codes depending on
			// terminal detection, but it must contain the original text.
			if !strings.Contains(result, tt.input) {
				t.Errorf("%s() result does not contain input text. got %q, want to contain %q", tt.name, result, tt.input)
			}
		})
	}
}

// TestSetNoColor verifies that disabling color yields the bare input text.
func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	for name, fn := range map[string]func(string) string{
		"Faint":   Faint,
		"Bold":    Bold,
		"Success": Success,
		"Error":   Error,
		"Warning": Warning,
		"Info":    Info,
	} {
		if got := fn("plain"); got != "plain" {
			t.Errorf("%s() with no-color = %q, want %q", name, got, "plain")
		}
	}
}
