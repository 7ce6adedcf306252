// Package asm translates Hack assembly into 16-bit machine words.
//
// Assembly is the classic two-pass scheme: pass 1 binds every (LABEL) to
// the index of the next real instruction, pass 2 resolves @symbols
// (allocating variables from RAM[16] upwards on first use) and encodes each
// address-load or compute instruction.
package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Assembler holds only read-only configuration; every Assemble call gets a
// fresh SymbolTable, so one Assembler may serve concurrent runs.
type Assembler struct {
	cfg *Config
}

// Program is the output of one assembly run.
type Program struct {
	Words []uint16

	// SourceMap maps a ROM address to the 1-based source line it came from.
	SourceMap map[int]int

	// Symbols is the table as it stood at the end of pass 2.
	Symbols *SymbolTable
}

func NewAssembler(cfg *Config) *Assembler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Assembler{cfg: cfg}
}

// Assemble runs a default-configured Assembler over code.
func Assemble(code string) (*Program, error) {
	return NewAssembler(nil).Assemble(code)
}

func (a *Assembler) Assemble(code string) (*Program, error) {
	lines := NormalizeProgram(code)
	syms := NewSymbolTable(a.cfg)

	if err := a.pass1(lines, syms); err != nil {
		return nil, err
	}

	prog, err := a.pass2(lines, syms)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("assembled %d words from %d lines, %d symbols", len(prog.Words), len(lines), syms.Len())
	return prog, nil
}

func (a *Assembler) pass1(lines []Line, syms *SymbolTable) error {
	pc := 0

	for _, l := range lines {
		kind, err := Classify(l.Text)
		if err != nil {
			return lineError(l, err)
		}

		if kind != KindLabelDef {
			if pc > a.cfg.MaxAddress {
				return lineError(l, fmt.Errorf("%w: program exceeds %d instructions", ErrAddressOutOfRange, a.cfg.MaxAddress+1))
			}
			pc++
			continue
		}

		name, err := SymbolOf(l.Text)
		if err != nil {
			return lineError(l, err)
		}
		if prev, exists := syms.Lookup(name); exists {
			return lineError(l, fmt.Errorf("%w '%s' (already bound to %d)", ErrDuplicateLabel, name, prev))
		}
		if pc > a.cfg.MaxAddress {
			return lineError(l, fmt.Errorf("%w: label '%s' points past ROM", ErrAddressOutOfRange, name))
		}
		syms.Bind(name, pc)
		glog.V(2).Infof("label %s -> %d (line %d)", name, pc, l.No)
	}

	return nil
}

func (a *Assembler) pass2(lines []Line, syms *SymbolTable) (*Program, error) {
	prog := &Program{
		Words:     make([]uint16, 0, len(lines)),
		SourceMap: make(map[int]int, len(lines)),
		Symbols:   syms,
	}

	for _, l := range lines {
		kind, err := Classify(l.Text)
		if err != nil {
			return nil, lineError(l, err)
		}

		var word uint16
		switch kind {
		case KindLabelDef:
			continue

		case KindCompute:
			c, err := ParseCompute(a.cfg, l.Text)
			if err != nil {
				return nil, lineError(l, err)
			}
			if word, err = EncodeCompute(a.cfg, c); err != nil {
				return nil, lineError(l, err)
			}

		case KindAddressLoad:
			sym, err := SymbolOf(l.Text)
			if err != nil {
				return nil, lineError(l, err)
			}
			addr, err := a.resolve(sym, syms)
			if err != nil {
				return nil, lineError(l, err)
			}
			if word, err = EncodeAddress(a.cfg, addr); err != nil {
				return nil, lineError(l, err)
			}
		}

		prog.SourceMap[len(prog.Words)] = l.No
		prog.Words = append(prog.Words, word)
	}

	return prog, nil
}

// resolve turns an address-load target into an address: decimal literals
// are used as-is, known symbols are looked up, anything else becomes a new
// variable.
func (a *Assembler) resolve(sym string, syms *SymbolTable) (int, error) {
	if isDecimal(sym) {
		v, err := strconv.ParseUint(sym, 10, 16)
		if err != nil || int(v) > a.cfg.MaxAddress {
			return 0, fmt.Errorf("%w: literal %s (max %d)", ErrAddressOutOfRange, sym, a.cfg.MaxAddress)
		}
		return int(v), nil
	}

	if addr, ok := syms.Lookup(sym); ok {
		return addr, nil
	}

	if next := syms.NextVariable(); next > a.cfg.MaxAddress {
		return 0, fmt.Errorf("%w: no RAM left for variable '%s'", ErrAddressOutOfRange, sym)
	}
	addr := syms.BindNextVariable(sym)
	glog.V(2).Infof("variable %s -> %d", sym, addr)
	return addr, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Lines renders every word as a 16-character binary string.
func (p *Program) Lines() []string {
	out := make([]string, len(p.Words))
	for i, w := range p.Words {
		out[i] = FormatWord(w)
	}
	return out
}

// String is the .hack text form: one word per line, newline-terminated.
func (p *Program) String() string {
	var sb strings.Builder
	sb.Grow(len(p.Words) * 17)
	for _, w := range p.Words {
		sb.WriteString(FormatWord(w))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo writes the .hack text form of p to w.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}
