package catalog

// QstrEntry is one interned-string identifier, the symbol-table payload
// spec.md's GLOSSARY calls "out of scope for the core except as a payload
// to be framed into the main header" (SPEC_FULL.md qstr-emission
// supplement, from py/makeqstrdata.py).
type QstrEntry struct {
	Ident string // mangled C identifier, e.g. "hello"
	Value string // the qstr's own text
	Hash  uint16
	Len   int
}

// HashQstr reproduces makeqstrdata.py's compute_hash exactly: a
// multiplicative rolling hash (hash = hash*33 XOR byte, seeded with 5381,
// the classic djb2 variant) truncated to 16 bits, with 0 remapped to 1
// since "zero means hash not computed" upstream.
func HashQstr(value []byte) uint16 {
	hash := uint32(5381)
	for _, b := range value {
		hash = (hash * 33) ^ uint32(b)
	}
	h := uint16(hash & 0xFFFF)
	if h == 0 {
		h = 1
	}
	return h
}

// NewQstrEntry builds a QstrEntry for an already-mangled identifier and
// its underlying value.
func NewQstrEntry(ident, value string) QstrEntry {
	b := []byte(value)
	return QstrEntry{
		Ident: ident,
		Value: value,
		Hash:  HashQstr(b),
		Len:   len(b),
	}
}
