package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/wuard/qstrgen/catalog"
)

// valueType returns the 8-bit or 16-bit C integer type selector of
// spec.md §4.6: "8-bit if max_codepoint <= 255, else 16-bit".
func (t *Table) valueType() string {
	if t.Wide {
		return "uint16_t"
	}
	return "uint8_t"
}

// Emit writes the companion header of spec.md §6: lengths, values,
// compress_max_length_bits, words, wends, word_start, word_end — in that
// exact field order, mirroring the fixed-field-order discipline of the
// teacher's archive.go wire writer (adapted here to plain-text C
// declarations instead of a binary stage format).
func (t *Table) Emit(w io.Writer) error {
	if t.BuildID != "" {
		if _, err := fmt.Fprintf(w, "// build-id: %s\n", t.BuildID); err != nil {
			return err
		}
	}

	vt := t.valueType()

	if err := writeIntArray(w, "const uint8_t lengths[]", t.Lengths); err != nil {
		return err
	}
	if err := writeIntArray(w, fmt.Sprintf("const %s values[]", vt), t.Values); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "#define compress_max_length_bits (%d)\n", t.CompressMaxLengthBits); err != nil {
		return err
	}

	wordCodepoints := make([]int, 0, 64)
	for _, word := range t.Words {
		for _, r := range word {
			wordCodepoints = append(wordCodepoints, int(r))
		}
	}
	if err := writeIntArray(w, fmt.Sprintf("const %s words[]", vt), wordCodepoints); err != nil {
		return err
	}
	if err := writeIntArray(w, "const uint8_t wends[]", t.Wends); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "#define word_start %d\n", t.WordStart); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "#define word_end   %d\n", t.WordEnd)
	return err
}

func writeIntArray(w io.Writer, decl string, values []int) error {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	_, err := fmt.Fprintf(w, "%s = { %s };\n", decl, strings.Join(parts, ", "))
	return err
}

// EmitMessage writes one main-header TRANSLATION line (spec.md §6):
//
//	TRANSLATION("<original>", b0, b1, ..., bn) // <round-tripped decoded string>
func EmitMessage(w io.Writer, original string, encoded []byte, decoded string) error {
	parts := make([]string, len(encoded))
	for i, b := range encoded {
		parts[i] = fmt.Sprintf("%d", b)
	}
	_, err := fmt.Fprintf(w, "TRANSLATION(\"%s\", %s) // %s\n", original, strings.Join(parts, ", "), catalog.EscapeDecoded(decoded))
	return err
}

// EmitQstrHeader writes the qstr-identifier header of SPEC_FULL.md's
// qstr-emission supplement: one QDEF line per entry.
func EmitQstrHeader(w io.Writer, entries []catalog.QstrEntry) error {
	if _, err := fmt.Fprintln(w, "// This file was automatically generated."); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "QDEF(MP_QSTR_%s, %d, %d, \"%s\")\n", e.Ident, e.Hash, e.Len, e.Value); err != nil {
			return err
		}
	}
	return nil
}
