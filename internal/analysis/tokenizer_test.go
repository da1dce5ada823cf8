package analysis

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple words", "acme corporation", []string{"acme", "corporation"}},
		{"punctuation boundaries", "acme, corp!", []string{"acme", "corp"}},
		{"leading/trailing spaces", "  acme corp  ", []string{"acme", "corp"}},
		{"multiple spaces between words", "acme   corp", []string{"acme", "corp"}},
		{"hyphenated", "hewlett-packard", []string{"hewlett", "packard"}},
		{"digits kept", "level 3 communications", []string{"level", "3", "communications"}},
		{"unicode letters kept", "café société", []string{"café", "société"}},
		{"only symbols", "!@#$%^", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := Tokenizer{}.Tokenize(tt.input)
			got := make([]string, 0)
			for _, tok := range stream.Flatten() {
				got = append(got, tok.Text)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizePositionsAndOffsets(t *testing.T) {
	stream := Tokenizer{}.Tokenize("acme corp")

	if len(stream) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(stream))
	}

	first := stream[0].Alts[0][0]
	if first.Position != 0 || first.StartOffset != 0 || first.EndOffset != 4 {
		t.Errorf("first token = %+v, want position 0, offsets [0,4)", first)
	}
	if first.Kind != TokenWord {
		t.Errorf("first token kind = %v, want word", first.Kind)
	}

	second := stream[1].Alts[0][0]
	if second.Position != 1 || second.StartOffset != 5 || second.EndOffset != 9 {
		t.Errorf("second token = %+v, want position 1, offsets [5,9)", second)
	}
}

func TestTokenizeOffsetsAreMonotonic(t *testing.T) {
	stream := Tokenizer{}.Tokenize("one two three four")

	prevStart := -1
	for _, tok := range stream.Flatten() {
		if tok.StartOffset < prevStart {
			t.Fatalf("offsets went backwards: %+v after start %d", tok, prevStart)
		}
		prevStart = tok.StartOffset
	}
}
