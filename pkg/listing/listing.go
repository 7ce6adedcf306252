// Package listing lines machine words up with the source that produced them.
package listing

import (
	"fmt"
	"strings"

	"hackasm/pkg/asm"
)

type Row struct {
	Addr   int
	Word   uint16
	Line   int    // 1-based source line, 0 when unknown
	Source string // trimmed source text with comments kept
}

// Build returns one row per word in prog. src is the text prog was
// assembled from; pass "" when only the words are known.
func Build(prog *asm.Program, src string) []Row {
	var srcLines []string
	if src != "" {
		srcLines = strings.Split(src, "\n")
	}

	rows := make([]Row, len(prog.Words))
	for addr, w := range prog.Words {
		r := Row{Addr: addr, Word: w}
		if no, ok := prog.SourceMap[addr]; ok {
			r.Line = no
			if no-1 < len(srcLines) {
				r.Source = strings.TrimSpace(srcLines[no-1])
			}
		}
		rows[addr] = r
	}
	return rows
}

// FromWords builds rows for words that have no source, e.g. a .hack file.
func FromWords(words []uint16) []Row {
	rows := make([]Row, len(words))
	for i, w := range words {
		rows[i] = Row{Addr: i, Word: w}
	}
	return rows
}

func (r Row) String() string {
	if r.Line == 0 {
		return fmt.Sprintf("%5d  %s", r.Addr, asm.FormatWord(r.Word))
	}
	return fmt.Sprintf("%5d  %s  %4d: %s", r.Addr, asm.FormatWord(r.Word), r.Line, r.Source)
}

// Format renders rows as a newline-terminated text listing.
func Format(rows []Row) string {
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
