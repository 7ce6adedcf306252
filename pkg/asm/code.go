package asm

import (
	"fmt"
	"strconv"
)

const computePrefix uint16 = 0b111 << 13

// EncodeCompute packs a parsed triple as 111 a cccccc ddd jjj.
func EncodeCompute(cfg *Config, c Compute) (uint16, error) {
	comp, ok := cfg.Comp[c.Comp]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownComputation, c.Comp)
	}

	var dest, jump uint16
	if c.Dest != "" {
		if dest, ok = cfg.Dest[c.Dest]; !ok {
			return 0, fmt.Errorf("%w %q", ErrUnknownDestination, c.Dest)
		}
	}
	if c.Jump != "" {
		if jump, ok = cfg.Jump[c.Jump]; !ok {
			return 0, fmt.Errorf("%w %q", ErrUnknownJump, c.Jump)
		}
	}

	return computePrefix | comp<<6 | dest<<3 | jump, nil
}

// EncodeAddress returns the address-load word for addr. The top bit is
// always zero, so anything above cfg.MaxAddress is rejected.
func EncodeAddress(cfg *Config, addr int) (uint16, error) {
	if addr < 0 || addr > cfg.MaxAddress {
		return 0, fmt.Errorf("%w: %d (max %d)", ErrAddressOutOfRange, addr, cfg.MaxAddress)
	}
	return uint16(addr), nil
}

// FormatWord renders w as 16 binary digits.
func FormatWord(w uint16) string {
	s := strconv.FormatUint(uint64(w), 2)
	if len(s) < 16 {
		s = zeros[:16-len(s)] + s
	}
	return s
}

const zeros = "0000000000000000"
