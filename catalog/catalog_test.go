package catalog

import (
	"strings"
	"testing"
)

func TestUnescapeOriginal(t *testing.T) {
	in := `line one\nline two\ttabbed\"quoted\"`
	want := "line one\nline two\ttabbed\"quoted\""
	if got := UnescapeOriginal(in); got != want {
		t.Fatalf("UnescapeOriginal(%q) = %q, want %q", in, got, want)
	}
}

func TestEscapeDecodedRoundTrip(t *testing.T) {
	decoded := "line one\nline two\ttabbed\"quoted\""
	escaped := EscapeDecoded(decoded)
	back := UnescapeOriginal(escaped)
	if back != decoded {
		t.Fatalf("EscapeDecoded/UnescapeOriginal round trip = %q, want %q", back, decoded)
	}
}

func TestToCRLF(t *testing.T) {
	if got := ToCRLF("a\nb\nc"); got != "a\r\nb\r\nc" {
		t.Fatalf("ToCRLF = %q, want %q", got, "a\r\nb\r\nc")
	}
}

func TestToCRLFIdempotent(t *testing.T) {
	once := ToCRLF("a\nb")
	twice := ToCRLF(once)
	if once != twice {
		t.Fatalf("ToCRLF is not idempotent: %q -> %q", once, twice)
	}
}

func TestLineLoaderParsesTabSeparatedPairs(t *testing.T) {
	input := "# a comment\nhello\tworld\n\nfoo\tbar\nbaz\tqux\n"
	pairs, err := NewLineLoader(strings.NewReader(input)).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []Pair{
		{Original: "hello", Translation: "world"},
		{Original: "foo", Translation: "bar"},
		{Original: "baz", Translation: "qux"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("Load() = %v, want %v", pairs, want)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pairs[%d] = %v, want %v", i, pairs[i], want[i])
		}
	}
}

func TestLineLoaderLeavesEscapedNewlineUnchanged(t *testing.T) {
	input := "key\tline one\\nline two\n"
	pairs, err := NewLineLoader(strings.NewReader(input)).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("Load() = %v, want 1 pair", pairs)
	}
	if pairs[0].Translation != `line one\nline two` {
		t.Fatalf("Translation = %q, want %q (no literal newline present on this line)", pairs[0].Translation, `line one\nline two`)
	}
}

func TestLineLoaderRejectsMissingTab(t *testing.T) {
	_, err := NewLineLoader(strings.NewReader("no tab here\n")).Load()
	if err == nil {
		t.Fatalf("Load() on a line with no tab separator did not error")
	}
}

func TestHashQstrNeverZero(t *testing.T) {
	h := HashQstr(nil)
	if h == 0 {
		t.Fatalf("HashQstr(nil) = 0, want remapped to 1")
	}
}

func TestHashQstrDeterministic(t *testing.T) {
	a := HashQstr([]byte("hello"))
	b := HashQstr([]byte("hello"))
	if a != b {
		t.Fatalf("HashQstr not deterministic: %d vs %d", a, b)
	}
	c := HashQstr([]byte("world"))
	if a == c {
		t.Fatalf("HashQstr(%q) == HashQstr(%q) == %d, want distinct hashes", "hello", "world", a)
	}
}

func TestNewQstrEntry(t *testing.T) {
	e := NewQstrEntry("foo", "foo")
	if e.Ident != "foo" || e.Value != "foo" {
		t.Fatalf("NewQstrEntry = %+v, want Ident=Value=%q", e, "foo")
	}
	if e.Len != 3 {
		t.Fatalf("Len = %d, want 3", e.Len)
	}
	if e.Hash != HashQstr([]byte("foo")) {
		t.Fatalf("Hash = %d, want %d", e.Hash, HashQstr([]byte("foo")))
	}
}
