package assembler

import (
	"bytes"
	"testing"

	"github.com/Amitc146/Assembler/encoder"
	"github.com/Amitc146/Assembler/parser"
)

func TestEncodeWordAlphabetBoundaries(t *testing.T) {
	cases := []struct {
		bits uint16
		want string
	}{
		{0, "AA"},
		{0xFFF, "//"}, // all 12 bits set -> upper=63, lower=63 -> '/','/'
		{1, "AB"},
	}
	for _, c := range cases {
		got := encodeWord(c.bits)
		if got != c.want {
			t.Errorf("encodeWord(%012b) = %q, want %q", c.bits, got, c.want)
		}
	}
}

func TestWriteObjectHeaderAndOrder(t *testing.T) {
	var buf bytes.Buffer
	instr := []encoder.Word{{Bits: 0}, {Bits: 1}}
	data := []encoder.Word{{Bits: 7}}

	if err := WriteObject(&buf, instr, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "2 1\nAA\nAB\nAH\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteEntriesPadsNameTo10Chars(t *testing.T) {
	var buf bytes.Buffer
	entries := []*parser.Symbol{{Name: "HELLO", Value: 100}}
	if err := WriteEntries(&buf, entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "HELLO      100\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteEntriesNameAtLeast10CharsStillGetsSpace(t *testing.T) {
	var buf bytes.Buffer
	entries := []*parser.Symbol{{Name: "ABCDEFGHIJ", Value: 101}}
	if err := WriteEntries(&buf, entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "ABCDEFGHIJ 101\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteExternalsUsesWordAddress(t *testing.T) {
	var buf bytes.Buffer
	externals := []encoder.Word{{ExternalName: "K", Address: 101}}
	if err := WriteExternals(&buf, externals); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "K          101\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteExternalsNameAtLeast10CharsStillGetsSpace(t *testing.T) {
	var buf bytes.Buffer
	externals := []encoder.Word{{ExternalName: "ABCDEFGHIJ", Address: 101}}
	if err := WriteExternals(&buf, externals); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "ABCDEFGHIJ 101\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
