package analysis

// Analyzer binds an ordered list of char filters, a tokenizer, and a token
// filter chain under a name. Immutable once built; safe for concurrent use
// because every stage is a pure function over its rule tables.
type Analyzer struct {
	name        string
	charFilters []*CharFilter
	tokenizer   Tokenizer
	filters     Chain
	keyword     bool
}

// NewAnalyzer creates a full-text analyzer.
func NewAnalyzer(name string, charFilters []*CharFilter, filters ...TokenFilter) *Analyzer {
	return &Analyzer{
		name:        name,
		charFilters: charFilters,
		filters:     Chain(filters),
	}
}

// NewKeywordAnalyzer creates the exact-match analyzer: no char filters, no
// tokenization — the whole input is a single case-sensitive token.
func NewKeywordAnalyzer(name string) *Analyzer {
	return &Analyzer{name: name, keyword: true}
}

// Name returns the analyzer name.
func (a *Analyzer) Name() string { return a.name }

// Analyze runs the pipeline: char filters → tokenizer → token filter chain.
// Pure computation; a stream can be abandoned at any point with no cleanup.
func (a *Analyzer) Analyze(text string) Stream {
	if a.keyword {
		if text == "" {
			return Stream{}
		}
		return Stream{wordSlot(Token{
			Text:        text,
			Position:    0,
			StartOffset: 0,
			EndOffset:   len(text),
			Kind:        TokenWord,
		})}
	}

	for _, cf := range a.charFilters {
		text = cf.Filter(text)
	}
	return a.filters.Apply(a.tokenizer.Tokenize(text))
}
