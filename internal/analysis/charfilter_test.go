package analysis

import "testing"

const stripPattern = `[./=()%&*!]`

func TestCharFilterStripsSpecialCharacters(t *testing.T) {
	filter, err := NewCharFilter(ReplaceRule{Pattern: stripPattern})
	if err != nil {
		t.Fatalf("NewCharFilter returned error: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trailing period", "Acme Corp.", "Acme Corp"},
		{"all special chars", "a.b/c=d(e)f%g&h*i!j", "abcdefghij"},
		{"no special chars", "Acme Corp", "Acme Corp"},
		{"empty input", "", ""},
		{"only special chars", "./=()%&*!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Filter(tt.input); got != tt.want {
				t.Errorf("Filter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Re-applying the strip rules to already-filtered text must change nothing.
func TestCharFilterIsFixedPoint(t *testing.T) {
	filter, err := NewCharFilter(ReplaceRule{Pattern: stripPattern})
	if err != nil {
		t.Fatalf("NewCharFilter returned error: %v", err)
	}

	inputs := []string{"Acme Corp.", "a.b/c=d", "plain text", ""}
	for _, input := range inputs {
		once := filter.Filter(input)
		twice := filter.Filter(once)
		if once != twice {
			t.Errorf("filter not a fixed point for %q: %q != %q", input, once, twice)
		}
	}
}

func TestCharFilterRulesApplyInOrder(t *testing.T) {
	filter, err := NewCharFilter(
		ReplaceRule{Pattern: `&`, Replacement: " and "},
		ReplaceRule{Pattern: `\s+`, Replacement: " "},
	)
	if err != nil {
		t.Fatalf("NewCharFilter returned error: %v", err)
	}

	if got := filter.Filter("Johnson&Johnson"); got != "Johnson and Johnson" {
		t.Errorf("got %q, want %q", got, "Johnson and Johnson")
	}
}

func TestCharFilterInvalidPattern(t *testing.T) {
	if _, err := NewCharFilter(ReplaceRule{Pattern: `[`}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
