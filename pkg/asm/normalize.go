package asm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Line is one normalized source line together with its 1-based line number.
type Line struct {
	No   int
	Text string
}

// Normalize strips a trailing // comment and every whitespace rune.
// Comment-only and blank lines come back empty. Bytes that are not valid
// UTF-8 are kept as they are.
func Normalize(raw string) string {
	before, _, _ := strings.Cut(raw, "//")

	var sb strings.Builder
	sb.Grow(len(before))
	for i := 0; i < len(before); {
		r, size := utf8.DecodeRuneInString(before[i:])
		if r == utf8.RuneError || !unicode.IsSpace(r) {
			sb.WriteString(before[i : i+size])
		}
		i += size
	}
	compact := sb.String()

	// "/ /" collapses into "//" once spaces are gone; cut again so the
	// result never holds a comment marker.
	compact, _, _ = strings.Cut(compact, "//")
	return compact
}

// NormalizeProgram splits src into lines and keeps the non-empty normalized
// ones in source order. CRLF endings are handled by Normalize since '\r' is
// whitespace.
func NormalizeProgram(src string) []Line {
	raw := strings.Split(src, "\n")
	lines := make([]Line, 0, len(raw))
	for i, r := range raw {
		text := Normalize(r)
		if text == "" {
			continue
		}
		lines = append(lines, Line{No: i + 1, Text: text})
	}
	return lines
}
