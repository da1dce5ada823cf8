// Package analysis implements the text-analysis pipeline: an ordered chain of
// char filters, a tokenizer, and token filters applied to a field value before
// it is indexed. The output is a token graph (a sequence of position slots,
// each holding one or more alternative token sequences) so that synonym
// expansion and diacritic folding can emit sibling alternatives at the same
// position without losing the original form.
package analysis

// TokenKind tells how a token entered the stream.
type TokenKind int

const (
	// TokenWord is a token produced directly by the tokenizer.
	TokenWord TokenKind = iota
	// TokenSynonym is a token produced by synonym expansion.
	TokenSynonym
	// TokenFolded is a diacritic-stripped variant of a word token.
	TokenFolded
)

func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "word"
	case TokenSynonym:
		return "synonym"
	case TokenFolded:
		return "folded"
	}
	return "unknown"
}

// Token is a single term with its position and offsets. Offsets are byte
// offsets into the char-filtered text (not the raw input); they survive all
// downstream filters so the originating text can always be recovered.
type Token struct {
	Text        string
	Position    int
	StartOffset int
	EndOffset   int
	Kind        TokenKind
}

// Slot is one position in the token graph. All alternatives share the slot's
// starting position; every token in every alternative carries the offsets of
// the input run the slot was produced from, which keeps offsets monotonically
// non-decreasing across the stream even after expansion.
type Slot struct {
	// Position is the ordinal assigned by the tokenizer. Stopword deletion
	// leaves gaps; nothing renumbers.
	Position int
	// Surface is the (lowercased) text the slot was produced from. For a
	// synonym slot this is the matched surface form, possibly multi-word.
	Surface string
	// Alts holds the alternative token sequences occupying this position.
	// A plain word has exactly one single-token alternative.
	Alts [][]Token
}

// wordSlot builds the single-alternative slot for a tokenizer output token.
func wordSlot(tok Token) Slot {
	return Slot{
		Position: tok.Position,
		Surface:  tok.Text,
		Alts:     [][]Token{{tok}},
	}
}

// expanded reports whether this slot was produced by synonym expansion.
// Later synonym filters never re-match such a slot: once a run has been
// consumed and replaced, only the replacement tokens are visible downstream.
func (s *Slot) expanded() bool {
	return len(s.Alts) > 0 && len(s.Alts[0]) > 0 && s.Alts[0][0].Kind == TokenSynonym
}

// Stream is the ordered sequence of position slots produced by analysis.
type Stream []Slot

// Flatten returns a linear view of the graph: every token of every
// alternative, in slot order. Intended for consumers that do not need
// alternative-aware matching (display, debugging, term extraction).
func (s Stream) Flatten() []Token {
	var out []Token
	for _, slot := range s {
		for _, alt := range slot.Alts {
			out = append(out, alt...)
		}
	}
	return out
}

// Terms returns the distinct token texts of the stream in first-seen order.
func (s Stream) Terms() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range s.Flatten() {
		if _, ok := seen[tok.Text]; ok {
			continue
		}
		seen[tok.Text] = struct{}{}
		out = append(out, tok.Text)
	}
	return out
}

// PrimaryTexts returns the first alternative's token texts per slot, joined
// per slot with a space for multi-token alternatives. This is the "chosen
// expansion" view of the stream.
func (s Stream) PrimaryTexts() []string {
	out := make([]string, 0, len(s))
	for _, slot := range s {
		if len(slot.Alts) == 0 || len(slot.Alts[0]) == 0 {
			continue
		}
		text := slot.Alts[0][0].Text
		for _, tok := range slot.Alts[0][1:] {
			text += " " + tok.Text
		}
		out = append(out, text)
	}
	return out
}
