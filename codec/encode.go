package codec

import (
	"fmt"

	"github.com/wuard/qstrgen/dictionary"
	"github.com/wuard/qstrgen/huffman"
)

// EncodedLengthBits computes spec.md §3's encoded_length_bits: the bit
// length of the largest UTF-8 byte length over all translations. An empty
// corpus yields 0 (spec.md §8 scenario 1).
func EncodedLengthBits(texts []string) int {
	maxLen := 0
	for _, t := range texts {
		if n := len(t); n > maxLen {
			maxLen = n
		}
	}
	return bitLength(maxLen)
}

// bitLength mirrors Python's int.bit_length(): the number of bits needed
// to represent n in binary, with bitLength(0) == 0.
func bitLength(n int) int {
	bits := 0
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}

// Encode implements spec.md §4.4: write the UTF-8 byte length in
// encodedLengthBits MSB-first bits, then the canonical code of every atom
// text tokenizes into.
func Encode(text string, encodedLengthBits int, matcher *dictionary.Matcher, cb *huffman.Codebook) ([]byte, error) {
	lenUTF8 := len(text)
	if encodedLengthBits < 64 && lenUTF8 >= (1<<uint(encodedLengthBits)) {
		return nil, fmt.Errorf("codec: translation of %d UTF-8 bytes does not fit in %d length-prefix bits", lenUTF8, encodedLengthBits)
	}

	w := NewWriter()
	w.WriteBits(uint64(lenUTF8), encodedLengthBits)

	for _, a := range matcher.Iter(text) {
		code, ok := cb.Codes[a]
		if !ok {
			return nil, fmt.Errorf("codec: no canonical code for atom %q", a.Text())
		}
		w.WriteCode(code)
	}
	return w.Bytes(), nil
}
