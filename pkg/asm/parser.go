package asm

import (
	"fmt"
	"strings"
)

// Kind classifies a normalized line.
type Kind int

const (
	KindAddressLoad Kind = iota
	KindLabelDef
	KindCompute
)

func (k Kind) String() string {
	switch k {
	case KindAddressLoad:
		return "address-load"
	case KindLabelDef:
		return "label"
	case KindCompute:
		return "compute"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Compute is the dest=comp;jump triple of a compute instruction.
// Empty Dest or Jump means the field was absent.
type Compute struct {
	Dest string
	Comp string
	Jump string
}

// Classify looks only at the first character of a normalized line.
func Classify(line string) (Kind, error) {
	if line == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidLine)
	}
	switch line[0] {
	case '@':
		return KindAddressLoad, nil
	case '(':
		return KindLabelDef, nil
	default:
		return KindCompute, nil
	}
}

// SymbolOf returns the target of an address-load or the name of a label.
func SymbolOf(line string) (string, error) {
	kind, err := Classify(line)
	if err != nil {
		return "", err
	}

	switch kind {
	case KindAddressLoad:
		sym := line[1:]
		if sym == "" {
			return "", fmt.Errorf("%w: '@' without a target", ErrInvalidLine)
		}
		return sym, nil
	case KindLabelDef:
		if len(line) < 2 || line[len(line)-1] != ')' {
			return "", fmt.Errorf("%w: label missing closing ')'", ErrInvalidLine)
		}
		sym := line[1 : len(line)-1]
		if sym == "" {
			return "", fmt.Errorf("%w: empty label", ErrInvalidLine)
		}
		return sym, nil
	default:
		return "", fmt.Errorf("%w: compute instruction has no symbol", ErrInvalidLine)
	}
}

// ParseCompute splits a compute line into its triple and checks every field
// against the mnemonic tables in cfg.
func ParseCompute(cfg *Config, line string) (Compute, error) {
	var c Compute

	rest := line
	dest, tail, hasDest := strings.Cut(line, "=")
	if hasDest {
		c.Dest = dest
		rest = tail
	}
	comp, jump, hasJump := strings.Cut(rest, ";")
	c.Comp = comp
	c.Jump = jump

	if _, ok := cfg.Comp[c.Comp]; !ok {
		return Compute{}, fmt.Errorf("%w %q", ErrUnknownComputation, c.Comp)
	}
	if _, ok := cfg.Dest[c.Dest]; hasDest && !ok {
		return Compute{}, fmt.Errorf("%w %q", ErrUnknownDestination, c.Dest)
	}
	if _, ok := cfg.Jump[c.Jump]; hasJump && !ok {
		return Compute{}, fmt.Errorf("%w %q", ErrUnknownJump, c.Jump)
	}
	return c, nil
}
