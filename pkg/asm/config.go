package asm

import "strconv"

// Config holds the fixed mnemonic tables and the address layout used by an
// Assembler. A Config is read-only once handed to NewAssembler, so one value
// can back any number of concurrent runs.
type Config struct {
	Dest map[string]uint16
	Comp map[string]uint16
	Jump map[string]uint16

	// Predefined seeds every new SymbolTable.
	Predefined map[string]int

	// VariableBase is the first RAM address handed out to variables.
	VariableBase int

	// MaxAddress is the largest value an address-load can carry (15 bits).
	MaxAddress int
}

// DefaultConfig returns a fresh Config for the standard Hack platform.
func DefaultConfig() *Config {
	return &Config{
		Dest: map[string]uint16{
			"M":   0b001,
			"D":   0b010,
			"MD":  0b011,
			"A":   0b100,
			"AM":  0b101,
			"AD":  0b110,
			"AMD": 0b111,
		},
		Comp: map[string]uint16{
			// a=0
			"0":   0b0101010,
			"1":   0b0111111,
			"-1":  0b0111010,
			"D":   0b0001100,
			"A":   0b0110000,
			"!D":  0b0001101,
			"!A":  0b0110001,
			"-D":  0b0001111,
			"-A":  0b0110011,
			"D+1": 0b0011111,
			"A+1": 0b0110111,
			"D-1": 0b0001110,
			"A-1": 0b0110010,
			"D+A": 0b0000010,
			"D-A": 0b0010011,
			"A-D": 0b0000111,
			"D&A": 0b0000000,
			"D|A": 0b0010101,
			// a=1
			"M":   0b1110000,
			"!M":  0b1110001,
			"-M":  0b1110011,
			"M+1": 0b1110111,
			"M-1": 0b1110010,
			"D+M": 0b1000010,
			"D-M": 0b1010011,
			"M-D": 0b1000111,
			"D&M": 0b1000000,
			"D|M": 0b1010101,
		},
		Jump: map[string]uint16{
			"JGT": 0b001,
			"JEQ": 0b010,
			"JGE": 0b011,
			"JLT": 0b100,
			"JNE": 0b101,
			"JLE": 0b110,
			"JMP": 0b111,
		},
		Predefined:   predefinedSymbols(),
		VariableBase: 16,
		MaxAddress:   0x7FFF,
	}
}

func predefinedSymbols() map[string]int {
	syms := map[string]int{
		"SCREEN": 16384,
		"KBD":    24576,
		"SP":     0,
		"LCL":    1,
		"ARG":    2,
		"THIS":   3,
		"THAT":   4,
	}
	for i := 0; i < 16; i++ {
		syms["R"+strconv.Itoa(i)] = i
	}
	return syms
}
