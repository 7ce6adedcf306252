package listing

import (
	"strings"
	"testing"

	"hackasm/pkg/asm"
)

func TestBuild(t *testing.T) {
	src := "// max\n@R0\n(END)\n  D=M   // load\n@END\n0;JMP\n"
	prog, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	rows := Build(prog, src)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	want := []Row{
		{Addr: 0, Word: 0, Line: 2, Source: "@R0"},
		{Addr: 1, Word: 0xFC10, Line: 4, Source: "D=M   // load"},
		{Addr: 2, Word: 1, Line: 5, Source: "@END"},
		{Addr: 3, Word: 0xEA87, Line: 6, Source: "0;JMP"},
	}
	for i, w := range want {
		if rows[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], w)
		}
	}
}

func TestFormat(t *testing.T) {
	rows := []Row{
		{Addr: 0, Word: 2, Line: 1, Source: "@2"},
		{Addr: 1, Word: 0xEC10},
	}
	got := Format(rows)
	want := "    0  0000000000000010     1: @2\n" +
		"    1  1110110000010000\n"
	if got != want {
		t.Errorf("Format() =\n%q\nwant\n%q", got, want)
	}
}

func TestFromWords(t *testing.T) {
	rows := FromWords([]uint16{7, 8})
	if len(rows) != 2 || rows[1].Addr != 1 || rows[1].Word != 8 || rows[1].Line != 0 {
		t.Errorf("FromWords = %+v", rows)
	}
	if !strings.HasSuffix(rows[0].String(), "0000000000000111") {
		t.Errorf("String() = %q", rows[0].String())
	}
}
