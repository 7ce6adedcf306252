//go:build !js

package main

import (
	"context"
	"errors"
	goflag "flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"hackasm/pkg/asm"
	"hackasm/pkg/batch"
	"hackasm/pkg/hackfile"
	"hackasm/pkg/listing"
	"hackasm/pkg/rom"
	"hackasm/pkg/vfs"
)

type assembleOptions struct {
	ext         string
	outDir      string
	jobs        int
	atomic      bool
	listing     bool
	image       string
	scale       int
	wordsPerRow int
}

func addAssembleFlags(fs *pflag.FlagSet, o *assembleOptions) {
	fs.StringVar(&o.ext, "ext", hackfile.DefaultExt, "output file extension")
	fs.StringVarP(&o.outDir, "out-dir", "o", "", "write outputs to this directory instead of next to each input")
	fs.IntVarP(&o.jobs, "jobs", "j", 0, "files assembled in parallel (default GOMAXPROCS)")
	fs.BoolVar(&o.atomic, "atomic", false, "write no output unless every input assembles")
	fs.BoolVarP(&o.listing, "listing", "l", false, "print an address/word/source listing")
	fs.StringVar(&o.image, "image", "", "also save a ROM bitmap next to each output with this extension (png or bmp)")
	fs.IntVar(&o.scale, "scale", 4, "ROM bitmap scale factor")
	fs.IntVar(&o.wordsPerRow, "words-per-row", 1, "words drawn side by side in the ROM bitmap")
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "hackasm",
		Short: "Assembler for the Hack 16-bit computer",
		Long: `Hackasm translates Hack assembly (.asm) into Hack machine language
(.hack): one 16-character binary word per instruction, one per line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	root.AddCommand(newAssembleCmd(stdout), newSymbolsCmd(stdout))
	return root
}

func newAssembleCmd(stdout io.Writer) *cobra.Command {
	o := &assembleOptions{}
	cmd := &cobra.Command{
		Use:     "assemble FILE.asm...",
		Aliases: []string{"asm"},
		Short:   "Assemble one or more .asm files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssemble(cmd.Context(), stdout, args, o)
		},
	}
	addAssembleFlags(cmd.Flags(), o)
	return cmd
}

func runAssemble(ctx context.Context, stdout io.Writer, inputs []string, o *assembleOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.image != "" && o.image != "png" && o.image != "bmp" {
		return fmt.Errorf("unsupported --image format %q", o.image)
	}

	var sink batch.Sink = batch.DiskSink{}
	var store *vfs.Store
	if o.atomic {
		store = vfs.NewStore()
		sink = batch.StoreSink{Store: store}
	}

	results, err := batch.Run(ctx, inputs, sink, batch.Options{
		Ext:    o.ext,
		OutDir: o.outDir,
		Jobs:   o.jobs,
	})
	if err != nil {
		return err
	}
	if store != nil {
		if err := checkStaged(store, results); err != nil {
			return err
		}
		if err := store.Flush(); err != nil {
			return fmt.Errorf("writing outputs: %w", err)
		}
	}

	for _, r := range results {
		if o.listing {
			fmt.Fprintf(stdout, "%s:\n%s", r.Input, listing.Format(listing.Build(r.Program, r.Source)))
		}
		if o.image != "" {
			img := rom.Scale(rom.Bitmap(r.Program.Words, rom.Options{WordsPerRow: o.wordsPerRow}), o.scale)
			path := hackfile.OutputPath(r.Output, o.image)
			if err := rom.Save(path, img); err != nil {
				return fmt.Errorf("saving ROM image %s: %w", path, err)
			}
			glog.V(1).Infof("ROM image -> %s", path)
		}
		fmt.Fprintf(stdout, "assembled %d words -> %s\n", len(r.Program.Words), r.Output)
	}
	return nil
}

// checkStaged confirms every result is staged in full before anything is
// flushed to the host.
func checkStaged(store *vfs.Store, results []batch.Result) error {
	for _, r := range results {
		n, err := store.Size(r.Output)
		if err != nil {
			return fmt.Errorf("staged output %s: %w", r.Output, err)
		}
		if want := len(r.Program.String()); n != want {
			return fmt.Errorf("staged output %s holds %d bytes, want %d", r.Output, n, want)
		}
	}
	glog.V(1).Infof("flushing %d staged files (%d bytes, %d free)", len(store.List()), store.UsedBytes(), store.FreeSpace())
	return nil
}

func newSymbolsCmd(stdout io.Writer) *cobra.Command {
	var all, pretty bool
	cmd := &cobra.Command{
		Use:   "symbols FILE.asm",
		Short: "Print the resolved symbol table of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := hackfile.ReadSource(args[0])
			if err != nil {
				return err
			}
			prog, err := asm.Assemble(src)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if pretty {
				pp.Fprintln(stdout, prog.Symbols.Entries())
				return nil
			}
			if !all {
				fmt.Fprint(stdout, prog.Symbols)
				return nil
			}
			for _, s := range prog.Symbols.Entries() {
				fmt.Fprintf(stdout, "%-24s %5d\n", s.Name, s.Address)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include predefined symbols")
	cmd.Flags().BoolVar(&pretty, "pp", false, "pretty-print entries")
	return cmd
}

// exitCode maps a command error onto the process status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, hackfile.ErrFileNotFound):
		return 2
	default:
		return 1
	}
}

func main() {
	// glog defaults to files under $TMPDIR; a CLI wants stderr.
	if err := goflag.Set("logtostderr", "true"); err != nil {
		fmt.Fprintf(os.Stderr, "hackasm: %v\n", err)
		os.Exit(2)
	}

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background())
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hackasm: %v\n", err)
		os.Exit(exitCode(err))
	}
}
