package asm

import (
	"fmt"
	"sort"
	"strings"
)

// Symbol is a snapshot of one binding in a SymbolTable.
type Symbol struct {
	Name       string
	Address    int
	Predefined bool
}

// SymbolTable maps symbol names to addresses for a single assembly run.
// It is seeded with the platform symbols and only ever grows. Variables are
// handed out from the config's VariableBase upwards.
type SymbolTable struct {
	entries    map[string]int
	predefined map[string]bool
	nextVar    int
}

func NewSymbolTable(cfg *Config) *SymbolTable {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &SymbolTable{
		entries:    make(map[string]int, len(cfg.Predefined)+16),
		predefined: make(map[string]bool, len(cfg.Predefined)),
		nextVar:    cfg.VariableBase,
	}
	for name, addr := range cfg.Predefined {
		s.entries[name] = addr
		s.predefined[name] = true
	}
	return s
}

// Lookup returns the address bound to name and whether it was found.
func (s *SymbolTable) Lookup(name string) (int, bool) {
	addr, ok := s.entries[name]
	return addr, ok
}

// Bind inserts or overwrites name. Callers that need immutability check
// Lookup first.
func (s *SymbolTable) Bind(name string, addr int) {
	s.entries[name] = addr
}

// BindNextVariable binds name to the next free variable address and
// advances the counter. name must not already be bound.
func (s *SymbolTable) BindNextVariable(name string) int {
	addr := s.nextVar
	s.entries[name] = addr
	s.nextVar++
	return addr
}

// NextVariable reports the address the next variable would receive.
func (s *SymbolTable) NextVariable() int {
	return s.nextVar
}

func (s *SymbolTable) Predefined(name string) bool {
	return s.predefined[name]
}

func (s *SymbolTable) Len() int {
	return len(s.entries)
}

// Entries returns every binding ordered by address, then name.
func (s *SymbolTable) Entries() []Symbol {
	out := make([]Symbol, 0, len(s.entries))
	for name, addr := range s.entries {
		out = append(out, Symbol{Name: name, Address: addr, Predefined: s.predefined[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Address != out[j].Address {
			return out[i].Address < out[j].Address
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// String returns a deterministically ordered dump of the user symbols.
// Platform symbols are omitted.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	n := 0
	for _, sym := range s.Entries() {
		if sym.Predefined {
			continue
		}
		fmt.Fprintf(&sb, "  %-24s %5d\n", sym.Name, sym.Address)
		n++
	}
	if n == 0 {
		return "Symbols: (empty)\n"
	}
	return "Symbols:\n" + sb.String()
}
