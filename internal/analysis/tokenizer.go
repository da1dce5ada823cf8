package analysis

import (
	"unicode"
	"unicode/utf8"
)

// Tokenizer splits char-filtered text into word tokens. A token is a maximal
// run of Unicode letters and digits; everything else is a boundary. Positions
// are sequential from 0, offsets are byte offsets into the filtered text.
// Deterministic and stateless; empty input yields an empty stream.
type Tokenizer struct{}

// Tokenize converts text into a stream of single-alternative word slots.
func (Tokenizer) Tokenize(text string) Stream {
	stream := make(Stream, 0)
	position := 0
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		stream = append(stream, wordSlot(Token{
			Text:        text[start:end],
			Position:    position,
			StartOffset: start,
			EndOffset:   end,
			Kind:        TokenWord,
		}))
		position++
		start = -1
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
		} else {
			flush(i)
		}
		i += size
	}
	flush(len(text))

	return stream
}
