package codec

import (
	"bytes"
	"testing"
)

func TestWriterEmpty(t *testing.T) {
	w := NewWriter()
	if got := w.Bytes(); len(got) != 0 {
		t.Fatalf("Bytes() on empty writer = %v, want empty slice", got)
	}
}

func TestWriterWriteBitsPacksMSBFirst(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0b1011, 4)
	got := w.Bytes()
	want := []byte{0b10110000}
	if !bytes.Equal(got, want) {
		t.Fatalf("Bytes() = %08b, want %08b", got, want)
	}
}

func TestWriterSpansByteBoundary(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0b1, 1)
	w.WriteBits(0xFF, 8)
	got := w.Bytes()
	want := []byte{0b11111111, 0b10000000}
	if !bytes.Equal(got, want) {
		t.Fatalf("Bytes() = %08b, want %08b", got, want)
	}
}

func TestWriterWriteCode(t *testing.T) {
	w := NewWriter()
	w.WriteCode("101")
	w.WriteCode("01")
	got := w.Bytes()
	want := []byte{0b10101000}
	if !bytes.Equal(got, want) {
		t.Fatalf("Bytes() = %08b, want %08b", got, want)
	}
}

func TestReaderRoundTripsWriter(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0b101, 3)
	w.WriteBits(0b11001010, 8)
	w.WriteBit(1)

	r := NewReader(w.Bytes())
	if v := r.ReadBits(3); v != 0b101 {
		t.Fatalf("ReadBits(3) = %b, want %b", v, 0b101)
	}
	if v := r.ReadBits(8); v != 0b11001010 {
		t.Fatalf("ReadBits(8) = %b, want %b", v, 0b11001010)
	}
	if v := r.ReadBit(); v != 1 {
		t.Fatalf("ReadBit() = %d, want 1", v)
	}
}

func TestReaderPastEndYieldsZero(t *testing.T) {
	r := NewReader([]byte{0xFF})
	r.ReadBits(8)
	if v := r.ReadBit(); v != 0 {
		t.Fatalf("ReadBit() past end = %d, want 0", v)
	}
	if v := r.ReadBits(16); v != 0 {
		t.Fatalf("ReadBits(16) past end = %d, want 0", v)
	}
}
