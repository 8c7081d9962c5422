// Package atom defines the coding unit shared by the tokenizer, the
// canonical Huffman builder, and the bit codec: either a single Unicode
// scalar or a dictionary word.
package atom

import "sort"

// Kind distinguishes the two flavors of Atom.
type Kind uint8

const (
	// KindChar is a single Unicode codepoint.
	KindChar Kind = iota
	// KindWord is a dictionary word, identified by its index into the
	// dictionary's word list.
	KindWord
)

// Atom is the coding unit: either a bare codepoint or a reference to a
// dictionary word. The zero value is the NUL codepoint, never produced by
// the tokenizer over real text.
type Atom struct {
	kind Kind
	char rune
	word int
	text string // underlying text, used only for ordering and display
}

// Char builds a single-codepoint atom.
func Char(r rune) Atom {
	return Atom{kind: KindChar, char: r, text: string(r)}
}

// Word builds a dictionary-word atom. text must be the word's own runes,
// not its slot representation; it is retained only for canonical ordering
// and diagnostics.
func Word(index int, text string) Atom {
	return Atom{kind: KindWord, word: index, text: text}
}

// IsWord reports whether a is a dictionary-word atom.
func (a Atom) IsWord() bool { return a.kind == KindWord }

// Rune returns the atom's codepoint. Only meaningful when !a.IsWord().
func (a Atom) Rune() rune { return a.char }

// WordIndex returns the atom's index into the dictionary word list. Only
// meaningful when a.IsWord().
func (a Atom) WordIndex() int { return a.word }

// Text returns the atom's underlying text (the word itself, or the single
// codepoint as a one-rune string).
func (a Atom) Text() string { return a.text }

// Len returns the UTF-8 byte length of the atom's underlying text.
func (a Atom) Len() int { return len(a.text) }

// Less implements the canonical sort order used in spec.md §4.3: atoms
// compare by their underlying text, the same order Python's string
// comparison would produce over the corresponding "atom" value.
func (a Atom) Less(b Atom) bool { return a.text < b.text }

// SortByLengthThenOrder sorts atoms by (codeLength ascending, atom
// ascending), the order spec.md §4.3 step 1 and §3's values[] definition
// both require. codeLength must return the same length for equal atoms
// across calls.
func SortByLengthThenOrder(atoms []Atom, codeLength func(Atom) int) {
	sort.SliceStable(atoms, func(i, j int) bool {
		li, lj := codeLength(atoms[i]), codeLength(atoms[j])
		if li != lj {
			return li < lj
		}
		return atoms[i].Less(atoms[j])
	})
}
