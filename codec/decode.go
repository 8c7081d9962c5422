package codec

import (
	"fmt"

	"github.com/wuard/qstrgen/table"
)

// Decode implements spec.md §4.5 exactly: read the length prefix, then
// repeatedly walk the canonical-code boundary state machine
// (max_code/searched_length) until decoded_bytes_emitted reaches the
// target length.
//
// Grounded bit-for-bit on makeqstrdata.py's decompress(): the max_code/
// searched_length recurrence there is reproduced verbatim rather than
// reimplemented as a trie walk, since spec.md §9 calls that state machine
// load-bearing for table-driven decode on the eventual embedded target.
func Decode(data []byte, encodedLengthBits int, tbl *table.Table) (string, error) {
	r := NewReader(data)
	length := int(r.ReadBits(encodedLengthBits))

	var out []byte
	emitted := 0
	for emitted < length {
		bits := 0
		bitLen := 0
		maxCode := 0
		searchedLength := 0
		if len(tbl.Lengths) > 0 {
			maxCode = tbl.Lengths[0]
			searchedLength = tbl.Lengths[0]
		}

		for {
			bits = (bits << 1) | r.ReadBit()
			bitLen++
			if maxCode > 0 && bits < maxCode {
				break
			}
			if bitLen >= len(tbl.Lengths) {
				return "", fmt.Errorf("codec: decode ran past the length table at bit length %d", bitLen)
			}
			maxCode = (maxCode << 1) + tbl.Lengths[bitLen]
			searchedLength += tbl.Lengths[bitLen]
		}

		idx := searchedLength + bits - maxCode
		if idx < 0 || idx >= len(tbl.Values) {
			return "", fmt.Errorf("codec: decode index %d out of range for %d values", idx, len(tbl.Values))
		}
		a := tbl.AtomAt(tbl.Values[idx])
		out = append(out, a.Text()...)
		emitted += a.Len()
	}
	return string(out), nil
}
