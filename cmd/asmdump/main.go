package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"

	"hackasm/pkg/asm"
	"hackasm/pkg/hackfile"
	"hackasm/pkg/listing"
)

const testSource = `// sum = 0; LOOP forever
@sum
M=0
(LOOP)
@LOOP
0;JMP
`

func main() {
	flag.Parse()
	defer glog.Flush()

	src := testSource
	if flag.NArg() > 0 {
		text, err := hackfile.ReadSource(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = text
	}

	cfg := asm.DefaultConfig()

	// Normalize
	lines := asm.NormalizeProgram(src)
	fmt.Printf("Normalized lines (%d)\n", len(lines))
	for _, l := range lines {
		fmt.Printf("  %4d  %s\n", l.No, l.Text)
	}
	fmt.Println()

	// Classify and parse
	fmt.Println("Instructions")
	for _, l := range lines {
		kind, err := asm.Classify(l.Text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", l.No, err)
			os.Exit(1)
		}
		switch kind {
		case asm.KindCompute:
			c, err := asm.ParseCompute(cfg, l.Text)
			if err != nil {
				fmt.Fprintf(os.Stderr, "line %d: %v\n", l.No, err)
				os.Exit(1)
			}
			fmt.Printf("  %4d  %-12s ", l.No, kind)
			pp.Println(c)
		default:
			sym, err := asm.SymbolOf(l.Text)
			if err != nil {
				fmt.Fprintf(os.Stderr, "line %d: %v\n", l.No, err)
				os.Exit(1)
			}
			fmt.Printf("  %4d  %-12s %s\n", l.No, kind, sym)
		}
	}
	fmt.Println()

	// Assemble
	prog, err := asm.NewAssembler(cfg).Assemble(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "assembly error:", err)
		os.Exit(1)
	}

	fmt.Print(prog.Symbols)
	fmt.Println()

	fmt.Println("Machine code")
	fmt.Print(listing.Format(listing.Build(prog, src)))
}
