package analysis

import "strings"

// StopwordList is a language-tagged list of stopwords.
type StopwordList struct {
	Lang  string   `yaml:"lang"`
	Words []string `yaml:"words"`
}

// StopwordFilter deletes every token whose lowercased text is in the active
// union of its stopword lists. Deletion leaves position gaps: downstream
// consumers must tolerate non-contiguous positions, which is how phrase
// adjacency stays faithful to the original text.
type StopwordFilter struct {
	name  string
	union map[string]struct{}
}

// NewStopwordFilter builds a filter over the union of the given lists.
func NewStopwordFilter(name string, lists ...StopwordList) *StopwordFilter {
	union := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range list.Words {
			union[strings.ToLower(w)] = struct{}{}
		}
	}
	return &StopwordFilter{name: name, union: union}
}

func (f *StopwordFilter) Name() string { return f.name }

// Filter drops a slot when every one of its alternatives is a single token
// whose lowercased text is a stopword. Remaining slots keep their positions.
func (f *StopwordFilter) Filter(stream Stream) Stream {
	out := make(Stream, 0, len(stream))
	for _, slot := range stream {
		if f.isStopSlot(slot) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

func (f *StopwordFilter) isStopSlot(slot Slot) bool {
	if len(slot.Alts) == 0 {
		return false
	}
	for _, alt := range slot.Alts {
		if len(alt) != 1 {
			return false
		}
		if _, ok := f.union[strings.ToLower(alt[0].Text)]; !ok {
			return false
		}
	}
	return true
}
