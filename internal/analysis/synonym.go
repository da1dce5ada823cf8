package analysis

import (
	"strings"

	"github.com/corpindex/company-search/internal/errors"
)

// SynonymRule maps one or more surface forms to one or more expansion token
// sequences. A surface form may be multi-word, in which case it matches a
// contiguous run of tokens. Multiple expansions become sibling alternatives
// at the matched position, never a concatenation.
type SynonymRule struct {
	SurfaceForms []string
	Expansions   [][]string
}

// SynonymTable is an immutable, case-insensitive lookup from surface form to
// expansions. Surface forms must be unique within one table; the same form
// appearing in two different tables of a chain is legal and resolved purely
// by filter order.
type SynonymTable struct {
	name      string
	entries   map[string][][]string
	maxRunLen int
}

// NewSynonymTable validates and indexes the given rules. A duplicate surface
// form within the table or a self-referential expansion is a fatal
// configuration error.
func NewSynonymTable(name string, rules []SynonymRule) (*SynonymTable, error) {
	t := &SynonymTable{
		name:      name,
		entries:   make(map[string][][]string),
		maxRunLen: 1,
	}
	for _, rule := range rules {
		for _, surface := range rule.SurfaceForms {
			key := normalizeSurface(surface)
			if key == "" {
				continue
			}
			if _, exists := t.entries[key]; exists {
				return nil, errors.NewDuplicateSurfaceFormError(name, key)
			}
			for _, expansion := range rule.Expansions {
				if strings.Join(expansion, " ") == key {
					return nil, errors.NewCyclicExpansionError(name, key)
				}
			}
			t.entries[key] = rule.Expansions
			if n := len(strings.Fields(key)); n > t.maxRunLen {
				t.maxRunLen = n
			}
		}
	}
	return t, nil
}

// Name returns the table name.
func (t *SynonymTable) Name() string { return t.name }

// Has reports whether the table defines the given surface form.
func (t *SynonymTable) Has(surface string) bool {
	_, ok := t.entries[normalizeSurface(surface)]
	return ok
}

// SurfaceForms returns every surface form the table defines.
func (t *SynonymTable) SurfaceForms() []string {
	forms := make([]string, 0, len(t.entries))
	for key := range t.entries {
		forms = append(forms, key)
	}
	return forms
}

func (t *SynonymTable) lookup(phrase string) ([][]string, bool) {
	expansions, ok := t.entries[phrase]
	return expansions, ok
}

func normalizeSurface(surface string) string {
	return strings.Join(strings.Fields(strings.ToLower(surface)), " ")
}

// SynonymFilter expands abbreviations against one synonym table. Matching is
// longest-first: a multi-word surface form beats a single-word one starting
// at the same slot. A matched run is consumed and replaced by its expansion
// alternatives; slots produced by an earlier synonym filter are never
// re-matched, so the earliest filter in the chain wins unconditionally when
// two tables define the same surface form.
type SynonymFilter struct {
	table *SynonymTable
}

// NewSynonymFilter creates a filter over the given table.
func NewSynonymFilter(table *SynonymTable) *SynonymFilter {
	return &SynonymFilter{table: table}
}

func (f *SynonymFilter) Name() string { return "synonyms_" + f.table.name }

// Filter walks the stream left to right, trying at each slot the longest
// possible run first. Unmatched slots pass through unchanged.
func (f *SynonymFilter) Filter(stream Stream) Stream {
	out := make(Stream, 0, len(stream))
	for i := 0; i < len(stream); {
		if stream[i].expanded() {
			out = append(out, stream[i])
			i++
			continue
		}

		slot, consumed := f.matchAt(stream, i)
		if consumed == 0 {
			out = append(out, stream[i])
			i++
			continue
		}
		out = append(out, slot)
		i += consumed
	}
	return out
}

// matchAt attempts the longest match starting at index i. It returns the
// replacement slot and the number of consumed slots; consumed == 0 means no
// rule matched.
func (f *SynonymFilter) matchAt(stream Stream, i int) (Slot, int) {
	maxRun := f.table.maxRunLen
	if remaining := len(stream) - i; maxRun > remaining {
		maxRun = remaining
	}

	for runLen := maxRun; runLen >= 1; runLen-- {
		run := stream[i : i+runLen]
		if runContainsExpanded(run) {
			continue
		}
		phrase, ok := f.matchRun(run)
		if !ok {
			continue
		}
		expansions, _ := f.table.lookup(phrase)
		return f.expansionSlot(run, phrase, expansions), runLen
	}
	return Slot{}, 0
}

func runContainsExpanded(run Stream) bool {
	for idx := range run {
		if run[idx].expanded() {
			return true
		}
	}
	return false
}

// matchRun checks every combination of single-token alternative texts across
// the run (a folded slot contributes both its original and folded text) and
// returns the first phrase the table defines.
func (f *SynonymFilter) matchRun(run Stream) (string, bool) {
	candidates := make([][]string, len(run))
	for idx, slot := range run {
		texts := slotCandidateTexts(slot)
		if len(texts) == 0 {
			return "", false
		}
		candidates[idx] = texts
	}

	var phrases []string
	buildPhrases(candidates, 0, "", &phrases)
	for _, phrase := range phrases {
		if _, ok := f.table.lookup(phrase); ok {
			return phrase, true
		}
	}
	return "", false
}

func slotCandidateTexts(slot Slot) []string {
	var texts []string
	seen := make(map[string]struct{})
	for _, alt := range slot.Alts {
		if len(alt) != 1 {
			continue
		}
		text := strings.ToLower(alt[0].Text)
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		texts = append(texts, text)
	}
	return texts
}

func buildPhrases(candidates [][]string, idx int, prefix string, out *[]string) {
	if idx == len(candidates) {
		*out = append(*out, prefix)
		return
	}
	for _, text := range candidates[idx] {
		next := text
		if prefix != "" {
			next = prefix + " " + text
		}
		buildPhrases(candidates, idx+1, next, out)
	}
}

// expansionSlot builds the replacement slot for a matched run. Every
// expansion token inherits the run's offsets, so the original abbreviation
// stays recoverable from the char-filtered text and offsets remain
// monotonically non-decreasing.
func (f *SynonymFilter) expansionSlot(run Stream, phrase string, expansions [][]string) Slot {
	position := run[0].Position
	start := run[0].Alts[0][0].StartOffset
	end := run[len(run)-1].Alts[0][len(run[len(run)-1].Alts[0])-1].EndOffset

	alts := make([][]Token, 0, len(expansions))
	for _, expansion := range expansions {
		alt := make([]Token, 0, len(expansion))
		for _, word := range expansion {
			alt = append(alt, Token{
				Text:        word,
				Position:    position,
				StartOffset: start,
				EndOffset:   end,
				Kind:        TokenSynonym,
			})
		}
		alts = append(alts, alt)
	}
	return Slot{Position: position, Surface: phrase, Alts: alts}
}
