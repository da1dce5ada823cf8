package analysis

import "strings"

// LowercaseFilter maps every token's text to lowercase. It comes first in any
// chain whose later filters match case-insensitively.
type LowercaseFilter struct{}

func (LowercaseFilter) Name() string { return "lowercase" }

// Filter lowercases all alternatives in place-copy fashion; slots and
// positions are untouched.
func (LowercaseFilter) Filter(stream Stream) Stream {
	out := make(Stream, len(stream))
	for i, slot := range stream {
		alts := make([][]Token, len(slot.Alts))
		for j, alt := range slot.Alts {
			tokens := make([]Token, len(alt))
			for k, tok := range alt {
				tok.Text = strings.ToLower(tok.Text)
				tokens[k] = tok
			}
			alts[j] = tokens
		}
		out[i] = Slot{Position: slot.Position, Surface: strings.ToLower(slot.Surface), Alts: alts}
	}
	return out
}
