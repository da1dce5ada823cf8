package analysis

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldingFilter computes a diacritic-stripped form of every token. When the
// folded form differs from the original, both are emitted as sibling
// alternatives at the same position, so accented and unaccented query forms
// match without information loss. Tokens without diacritics pass through
// unchanged, which makes folding idempotent.
type FoldingFilter struct{}

func (FoldingFilter) Name() string { return "folding" }

// Fold strips combining marks from text via NFD decomposition.
func Fold(text string) string {
	// The transformer is stateful and not safe for concurrent use, so each
	// call builds its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

// Filter appends a folded alternative to every slot whose tokens carry
// diacritics. Slots already free of diacritics are returned as-is.
func (FoldingFilter) Filter(stream Stream) Stream {
	out := make(Stream, len(stream))
	for i, slot := range stream {
		out[i] = foldSlot(slot)
	}
	return out
}

func foldSlot(slot Slot) Slot {
	var foldedAlts [][]Token
	for _, alt := range slot.Alts {
		folded := make([]Token, len(alt))
		changed := false
		for k, tok := range alt {
			foldedText := Fold(tok.Text)
			if foldedText != tok.Text {
				changed = true
			}
			tok.Text = foldedText
			tok.Kind = TokenFolded
			folded[k] = tok
		}
		if changed {
			foldedAlts = append(foldedAlts, folded)
		}
	}
	if len(foldedAlts) == 0 {
		return slot
	}
	slot.Alts = append(append([][]Token{}, slot.Alts...), foldedAlts...)
	return slot
}
