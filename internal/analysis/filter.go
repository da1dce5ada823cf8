package analysis

// TokenFilter is one stage of the post-tokenization chain. Filters are
// stateless and pure given their rule tables: each consumes the previous
// stage's stream and produces a new one. Absence of a matching rule is the
// normal silent outcome, never an error.
type TokenFilter interface {
	Name() string
	Filter(stream Stream) Stream
}

// Chain is an ordered list of token filters. Order is load-bearing: once a
// filter has consumed and replaced a run of tokens, later filters only ever
// see the replacement, so callers must order filters by priority.
type Chain []TokenFilter

// Apply runs every filter in declared order.
func (c Chain) Apply(stream Stream) Stream {
	for _, f := range c {
		stream = f.Filter(stream)
	}
	return stream
}
