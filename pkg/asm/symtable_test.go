package asm

import (
	"strings"
	"testing"
)

func TestSymbolTable(t *testing.T) {
	t.Run("Predefined", func(t *testing.T) {
		s := NewSymbolTable(nil)
		want := map[string]int{
			"R0": 0, "R8": 8, "R15": 15,
			"SCREEN": 16384, "KBD": 24576,
			"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
		}
		for name, addr := range want {
			got, ok := s.Lookup(name)
			if !ok || got != addr {
				t.Errorf("Lookup(%q) = %d, %v; want %d", name, got, ok, addr)
			}
		}
		if s.Len() != 23 {
			t.Errorf("Len() = %d, want 23", s.Len())
		}
	})

	t.Run("Variables", func(t *testing.T) {
		s := NewSymbolTable(nil)
		for i, name := range []string{"FOO", "BAR", "BAZ"} {
			if got := s.BindNextVariable(name); got != 16+i {
				t.Errorf("BindNextVariable(%q) = %d, want %d", name, got, 16+i)
			}
		}
		if got, _ := s.Lookup("BAR"); got != 17 {
			t.Errorf("Lookup(BAR) = %d, want 17", got)
		}
		if s.NextVariable() != 19 {
			t.Errorf("NextVariable() = %d, want 19", s.NextVariable())
		}
	})

	t.Run("Bind", func(t *testing.T) {
		s := NewSymbolTable(nil)
		s.Bind("FOO", 42)
		if got, ok := s.Lookup("FOO"); !ok || got != 42 {
			t.Errorf("Lookup(FOO) = %d, %v; want 42", got, ok)
		}
		if s.Predefined("FOO") {
			t.Error("FOO should not be predefined")
		}
		if s.NextVariable() != 16 {
			t.Errorf("Bind must not move the variable counter, got %d", s.NextVariable())
		}
	})

	t.Run("Missing", func(t *testing.T) {
		s := NewSymbolTable(nil)
		if _, ok := s.Lookup("nope"); ok {
			t.Error("Lookup(nope) should miss")
		}
	})

	t.Run("FreshTablesAreIndependent", func(t *testing.T) {
		cfg := DefaultConfig()
		a := NewSymbolTable(cfg)
		b := NewSymbolTable(cfg)
		a.BindNextVariable("x")
		if _, ok := b.Lookup("x"); ok {
			t.Error("tables built from one Config must not share bindings")
		}
		if b.NextVariable() != 16 {
			t.Errorf("b.NextVariable() = %d, want 16", b.NextVariable())
		}
	})
}

func TestSymbolTableEntriesAndString(t *testing.T) {
	s := NewSymbolTable(nil)
	s.Bind("LOOP", 4)
	s.BindNextVariable("i")

	entries := s.Entries()
	if len(entries) != 25 {
		t.Fatalf("Entries() has %d items, want 25", len(entries))
	}
	if entries[0].Address != 0 || entries[0].Name != "R0" {
		t.Errorf("first entry = %+v, want R0 at 0", entries[0])
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Address < entries[i-1].Address {
			t.Fatalf("Entries() not sorted at %d: %+v", i, entries)
		}
	}

	out := s.String()
	if !strings.Contains(out, "LOOP") || !strings.Contains(out, "i ") {
		t.Errorf("String() missing user symbols:\n%s", out)
	}
	if strings.Contains(out, "SCREEN") {
		t.Errorf("String() should omit predefined symbols:\n%s", out)
	}
	if got := NewSymbolTable(nil).String(); got != "Symbols: (empty)\n" {
		t.Errorf("empty String() = %q", got)
	}
}
