// Package dictionary implements the greedy multi-gram dictionary builder
// and the longest-match tokenizer described in spec.md §4.1 and §4.2.
package dictionary

import (
	"sort"

	"github.com/wuard/qstrgen/atom"
)

// Dictionary is an ordered, immutable set of multi-codepoint words chosen
// by Builder.Build. Word i occupies slot WordStart+i.
type Dictionary struct {
	Words []string // distinct words, insertion order (also slot order)
}

// WordStart is the first in-band codepoint reserved for dictionary word
// slots (spec.md §3).
const WordStart = 0x80

// WordEnd returns the last reserved slot codepoint, or WordStart-1 for an
// empty dictionary.
func (d *Dictionary) WordEnd() rune {
	if d == nil || len(d.Words) == 0 {
		return WordStart - 1
	}
	return WordStart + rune(len(d.Words)) - 1
}

// Len reports the number of words in the dictionary.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Words)
}

// wordEntry is one matcher candidate: a dictionary word and its slot
// index, keyed by first rune and kept sorted longest-first so that a
// linear scan of one bucket reproduces longest-match-first without a
// second index (spec.md §4.1: "longest match first by construction").
type wordEntry struct {
	runes []rune
	index int
}

// Matcher performs longest-match-first tokenization of text against a
// fixed Dictionary, operating on Unicode scalars rather than bytes
// (spec.md §4.1: "the matcher operates on codepoints, not bytes").
//
// Grounded on onpair/match.go's longest-prefix Matcher, simplified from a
// two-tier byte-hash-bucket structure to a single rune-keyed bucket map:
// this spec caps the dictionary at 127 words (word_end-word_start+1 <=
// 0xFF-0x80), two orders of magnitude below the teacher's 65536-token
// budget, so a second indexing layer buys nothing here.
type Matcher struct {
	dict    *Dictionary
	buckets map[rune][]wordEntry
}

// NewMatcher builds a Matcher over dict. A nil or empty dict yields a
// matcher that only ever emits single-codepoint atoms (spec.md §4.1 empty
// dictionary edge case).
func NewMatcher(dict *Dictionary) *Matcher {
	m := &Matcher{dict: dict}
	if dict == nil || len(dict.Words) == 0 {
		return m
	}
	m.buckets = make(map[rune][]wordEntry, len(dict.Words))
	for i, w := range dict.Words {
		runes := []rune(w)
		if len(runes) == 0 {
			continue
		}
		first := runes[0]
		m.buckets[first] = append(m.buckets[first], wordEntry{runes: runes, index: i})
	}
	for first := range m.buckets {
		bucket := m.buckets[first]
		// Longest first; ties broken by insertion (slot) order for a
		// stable, deterministic longest-match-first scan (spec.md §4.1:
		// "ties are resolved by insertion order (stable)").
		sort.SliceStable(bucket, func(i, j int) bool {
			return len(bucket[i].runes) > len(bucket[j].runes)
		})
		m.buckets[first] = bucket
	}
	return m
}

// matchAt returns the dictionary word matching text starting at position
// pos, and its rune length, or ok=false if no word matches there.
func (m *Matcher) matchAt(text []rune, pos int) (wordIndex, length int, ok bool) {
	if m.buckets == nil {
		return 0, 0, false
	}
	bucket, found := m.buckets[text[pos]]
	if !found {
		return 0, 0, false
	}
	for _, entry := range bucket {
		n := len(entry.runes)
		if pos+n > len(text) {
			continue
		}
		if runesEqual(text[pos:pos+n], entry.runes) {
			return entry.index, n, true
		}
	}
	return 0, 0, false
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Segment is one element of the classified iteration IterWords returns:
// either a dictionary word (IsWord) or a maximal run of non-word
// characters.
type Segment struct {
	IsWord bool
	Text   string
}

// IterWords classifies text into word segments (one per matched word) and
// maximal non-word runs, the "iter_words" iteration of spec.md §4.1;
// adjacent words yield consecutive word segments.
func (m *Matcher) IterWords(text string) []Segment {
	runes := []rune(text)
	var segs []Segment
	var run []rune
	flush := func() {
		if len(run) > 0 {
			segs = append(segs, Segment{IsWord: false, Text: string(run)})
			run = nil
		}
	}
	for pos := 0; pos < len(runes); {
		if _, length, ok := m.matchAt(runes, pos); ok {
			flush()
			segs = append(segs, Segment{IsWord: true, Text: string(runes[pos : pos+length])})
			pos += length
			continue
		}
		run = append(run, runes[pos])
		pos++
	}
	flush()
	return segs
}

// Iter flattens text into the atom stream of spec.md §4.1's "iter"
// iteration: one atom per dictionary word or single codepoint.
func (m *Matcher) Iter(text string) []atom.Atom {
	runes := []rune(text)
	out := make([]atom.Atom, 0, len(runes))
	for pos := 0; pos < len(runes); {
		if wordIdx, length, ok := m.matchAt(runes, pos); ok {
			out = append(out, atom.Word(wordIdx, string(runes[pos:pos+length])))
			pos += length
			continue
		}
		out = append(out, atom.Char(runes[pos]))
		pos++
	}
	return out
}
