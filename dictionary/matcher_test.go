package dictionary

import (
	"testing"

	"github.com/wuard/qstrgen/atom"
)

func TestNewMatcherEmptyDictionary(t *testing.T) {
	for _, dict := range []*Dictionary{nil, {}} {
		m := NewMatcher(dict)
		atoms := m.Iter("hi")
		if len(atoms) != 2 {
			t.Fatalf("Iter(%q) with empty dict = %v, want 2 char atoms", "hi", atoms)
		}
		for _, a := range atoms {
			if a.IsWord() {
				t.Fatalf("empty-dictionary matcher produced a word atom: %v", a)
			}
		}
	}
}

func TestIterLongestMatchFirst(t *testing.T) {
	dict := &Dictionary{Words: []string{"he", "hello"}}
	m := NewMatcher(dict)

	atoms := m.Iter("hello")
	if len(atoms) != 1 || !atoms[0].IsWord() || atoms[0].Text() != "hello" {
		t.Fatalf("Iter(%q) = %v, want a single word atom for %q", "hello", atoms, "hello")
	}
}

func TestIterMixedWordsAndChars(t *testing.T) {
	dict := &Dictionary{Words: []string{"the"}}
	m := NewMatcher(dict)

	atoms := m.Iter("the cat")
	want := []atom.Atom{
		atom.Word(0, "the"),
		atom.Char(' '),
		atom.Char('c'),
		atom.Char('a'),
		atom.Char('t'),
	}
	if len(atoms) != len(want) {
		t.Fatalf("Iter(%q) = %v (len %d), want len %d", "the cat", atoms, len(atoms), len(want))
	}
	for i := range want {
		if atoms[i] != want[i] {
			t.Fatalf("atoms[%d] = %v, want %v", i, atoms[i], want[i])
		}
	}
}

func TestIterWordsSegments(t *testing.T) {
	dict := &Dictionary{Words: []string{"the"}}
	m := NewMatcher(dict)

	segs := m.IterWords("the cat the dog")
	want := []Segment{
		{IsWord: true, Text: "the"},
		{IsWord: false, Text: " cat "},
		{IsWord: true, Text: "the"},
		{IsWord: false, Text: " dog"},
	}
	if len(segs) != len(want) {
		t.Fatalf("IterWords = %v, want %v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segs[%d] = %v, want %v", i, segs[i], want[i])
		}
	}
}

func TestWordEndAndLen(t *testing.T) {
	var empty *Dictionary
	if empty.WordEnd() != WordStart-1 {
		t.Fatalf("nil dictionary WordEnd() = %#x, want %#x", empty.WordEnd(), WordStart-1)
	}
	if empty.Len() != 0 {
		t.Fatalf("nil dictionary Len() = %d, want 0", empty.Len())
	}

	dict := &Dictionary{Words: []string{"ab", "cd", "ef"}}
	if dict.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", dict.Len())
	}
	if dict.WordEnd() != WordStart+2 {
		t.Fatalf("WordEnd() = %#x, want %#x", dict.WordEnd(), WordStart+2)
	}
}

func TestMultiByteRuneTokenization(t *testing.T) {
	dict := &Dictionary{Words: []string{"café"}}
	m := NewMatcher(dict)

	atoms := m.Iter("café")
	if len(atoms) != 1 || !atoms[0].IsWord() {
		t.Fatalf("Iter(%q) = %v, want a single word atom spanning the whole (multi-byte) word", "café", atoms)
	}
}
