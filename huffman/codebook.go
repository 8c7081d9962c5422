// Package huffman builds canonical Huffman codebooks over atom.Atom
// occurrence counts (spec.md §4.3).
package huffman

import (
	"container/heap"
	"fmt"

	"github.com/wuard/qstrgen/atom"
)

// Codebook is the canonicalized result of Build: a code per atom plus the
// decode-table shape of spec.md §3.
type Codebook struct {
	// Codes maps each atom to its canonical code, MSB-first, as a string
	// of '0'/'1' characters (length == code length).
	Codes map[atom.Atom]string
	// Values lists atoms in (code_length, atom) order — the same order
	// canonical codes were assigned in, and the order spec.md §3's
	// values[] array must be emitted in.
	Values []atom.Atom
	// Lengths is the length histogram of spec.md §3: Lengths[0] is the
	// count of length-1 codes, and a trailing zero sentinel is appended
	// (spec.md §9: "the decoder relies on being able to read one past
	// the last real length").
	Lengths []int
}

// treeNode is an internal or leaf node of the Huffman tree being built.
// Leaves carry an index into the symbol slice; internal nodes carry -1.
type treeNode struct {
	count       int
	symbolIndex int
	left, right int // indices into the node pool, -1 if absent
}

// nodeHeap is a min-heap over pool indices, ordered by (count, insertion
// order) so ties resolve deterministically — grounded on the
// container/heap-based tree construction in the WebP lossless encoder's
// CreateHuffmanTree (other_examples/.../huffman.go), adapted from byte
// histograms to arbitrary atom.Atom symbols.
type nodeHeap struct {
	pool    []treeNode
	indices []int
}

func (h *nodeHeap) Len() int { return len(h.indices) }
func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.pool[h.indices[i]], h.pool[h.indices[j]]
	if a.count != b.count {
		return a.count < b.count
	}
	return h.indices[i] < h.indices[j]
}
func (h *nodeHeap) Swap(i, j int) { h.indices[i], h.indices[j] = h.indices[j], h.indices[i] }
func (h *nodeHeap) Push(x any)    { h.indices = append(h.indices, x.(int)) }
func (h *nodeHeap) Pop() any {
	old := h.indices
	n := len(old)
	idx := old[n-1]
	h.indices = old[:n-1]
	return idx
}

// Build constructs a canonical Huffman codebook over the given atom
// occurrence counts, per spec.md §4.3.
func Build(counts map[atom.Atom]int) (*Codebook, error) {
	symbols := make([]atom.Atom, 0, len(counts))
	for a := range counts {
		symbols = append(symbols, a)
	}
	atom.SortByLengthThenOrder(symbols, func(atom.Atom) int { return 0 }) // stable base order by atom text

	lengths, err := codeLengths(symbols, counts)
	if err != nil {
		return nil, err
	}
	return canonicalize(symbols, lengths)
}

// codeLengths runs standard frequency-sorted Huffman tree construction
// and returns a code length per symbol, indexed the same as symbols.
func codeLengths(symbols []atom.Atom, counts map[atom.Atom]int) ([]int, error) {
	n := len(symbols)
	lengths := make([]int, n)
	switch n {
	case 0:
		return lengths, nil
	case 1:
		lengths[0] = 1
		return lengths, nil
	}

	pool := make([]treeNode, 0, 2*n)
	h := &nodeHeap{pool: pool}
	for i, a := range symbols {
		h.pool = append(h.pool, treeNode{count: counts[a], symbolIndex: i, left: -1, right: -1})
		h.indices = append(h.indices, i)
	}
	heap.Init(h)

	for h.Len() > 1 {
		i1 := heap.Pop(h).(int)
		i2 := heap.Pop(h).(int)
		merged := treeNode{
			count:       h.pool[i1].count + h.pool[i2].count,
			symbolIndex: -1,
			left:        i1,
			right:       i2,
		}
		h.pool = append(h.pool, merged)
		newIdx := len(h.pool) - 1
		heap.Push(h, newIdx)
	}
	root := h.indices[0]

	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		node := h.pool[idx]
		if node.symbolIndex >= 0 {
			d := depth
			if d == 0 {
				d = 1 // single-symbol subtree still needs a 1-bit code
			}
			lengths[node.symbolIndex] = d
			return
		}
		walk(node.left, depth+1)
		walk(node.right, depth+1)
	}
	walk(root, 0)

	for i, l := range lengths {
		if l < 1 {
			return nil, fmt.Errorf("huffman: symbol %d got non-positive code length %d", i, l)
		}
	}
	return lengths, nil
}

// canonicalize implements spec.md §4.3's canonicalization algorithm
// exactly: sort by (length, atom), assign code 0 of the first atom's
// length, then for each subsequent atom shift left by the length delta
// and increment.
func canonicalize(symbols []atom.Atom, lengths []int) (*Codebook, error) {
	type entry struct {
		a      atom.Atom
		length int
	}
	entries := make([]entry, len(symbols))
	for i, a := range symbols {
		entries[i] = entry{a: a, length: lengths[i]}
	}
	atoms := make([]atom.Atom, len(entries))
	for i, e := range entries {
		atoms[i] = e.a
	}
	lenOf := make(map[atom.Atom]int, len(entries))
	for _, e := range entries {
		lenOf[e.a] = e.length
	}
	atom.SortByLengthThenOrder(atoms, func(a atom.Atom) int { return lenOf[a] })

	cb := &Codebook{
		Codes:  make(map[atom.Atom]string, len(atoms)),
		Values: atoms,
	}

	if len(atoms) == 0 {
		cb.Lengths = []int{0}
		return cb, nil
	}

	lengthCount := make(map[int]int)
	renumbered := 0
	lastLength := 0
	maxLength := 0

	for i, a := range atoms {
		length := lenOf[a]
		if length < 1 {
			return nil, fmt.Errorf("huffman: atom %q has non-positive code length %d", a.Text(), length)
		}
		lengthCount[length]++
		if length > maxLength {
			maxLength = length
		}
		if i > 0 {
			renumbered <<= (length - lastLength)
		}
		cb.Codes[a] = fmt.Sprintf("%0*b", length, renumbered)
		renumbered++
		lastLength = length
	}

	// spec.md §3/§9: emit a trailing zero sentinel one past maxLength.
	cb.Lengths = make([]int, maxLength+1)
	for l := 1; l <= maxLength; l++ {
		cb.Lengths[l-1] = lengthCount[l]
	}
	cb.Lengths[maxLength] = 0

	if err := validatePrefixFree(cb); err != nil {
		return nil, err
	}
	return cb, nil
}

// validatePrefixFree checks spec.md §8's prefix-freedom invariant: no
// canonical code is a proper prefix of another.
func validatePrefixFree(cb *Codebook) error {
	for a1, c1 := range cb.Codes {
		for a2, c2 := range cb.Codes {
			if a1 == a2 {
				continue
			}
			if len(c1) < len(c2) && c2[:len(c1)] == c1 {
				return fmt.Errorf("huffman: code %q for %q is a prefix of %q for %q", c1, a1.Text(), c2, a2.Text())
			}
		}
	}
	return nil
}
