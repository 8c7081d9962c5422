// Package table builds and emits the decode-side tables of spec.md §4.6
// and §6: lengths, values, words, wends, and the word_start/word_end and
// compress_max_length_bits constants.
package table

import (
	"github.com/wuard/qstrgen/atom"
	"github.com/wuard/qstrgen/dictionary"
	"github.com/wuard/qstrgen/huffman"
)

// Table is the fully serialized decode side: the same data the companion
// header (spec.md §6) expresses as C declarations, kept here as plain Go
// values so codec.Decode can exercise exactly what will be emitted.
type Table struct {
	Lengths               []int
	Values                []int // atom.Char codepoints, or WordStart+index for word atoms
	Words                 []string
	Wends                 []int
	WordStart             int
	WordEnd               int
	CompressMaxLengthBits int
	Wide                  bool // values_type_is_wide (spec.md §3)

	// BuildID is the deterministic build fingerprint (SPEC_FULL.md
	// DOMAIN STACK item 3), emitted as a leading comment line. Empty
	// means no fingerprint comment is written.
	BuildID string
}

// Build assembles a Table from a finalized Dictionary and Codebook, plus
// the corpus-derived wide-value-width flag and encoded_length_bits.
func Build(dict *dictionary.Dictionary, cb *huffman.Codebook, wide bool, encodedLengthBits int) *Table {
	t := &Table{
		Lengths:               append([]int(nil), cb.Lengths...),
		Words:                 append([]string(nil), dict.Words...),
		WordStart:             dictionary.WordStart,
		WordEnd:               int(dict.WordEnd()),
		CompressMaxLengthBits: encodedLengthBits,
		Wide:                  wide,
	}

	t.Values = make([]int, len(cb.Values))
	for i, a := range cb.Values {
		if a.IsWord() {
			t.Values[i] = dictionary.WordStart + a.WordIndex()
		} else {
			t.Values[i] = int(a.Rune())
		}
	}

	t.Wends = make([]int, len(dict.Words))
	sum := 0
	for i, w := range dict.Words {
		sum += len([]rune(w)) - 2
		t.Wends[i] = sum
	}
	return t
}

// AtomAt reconstructs the atom.Atom a raw table value represents: a plain
// codepoint, or — if the value falls in [WordStart, WordEnd] — the
// dictionary word it substitutes for (spec.md §4.5 step 2's "If the atom
// is a codepoint in [0x80, word_end], substitute it with the
// corresponding dictionary word").
func (t *Table) AtomAt(value int) atom.Atom {
	if len(t.Words) > 0 && value >= t.WordStart && value <= t.WordEnd {
		idx := value - t.WordStart
		return atom.Word(idx, t.Words[idx])
	}
	return atom.Char(rune(value))
}
