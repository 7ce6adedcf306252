// Package batch assembles many source files concurrently. Each file gets its
// own assembly run, and therefore its own symbol table and variable counter.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"hackasm/pkg/asm"
	"hackasm/pkg/hackfile"
	"hackasm/pkg/vfs"
)

// Sink receives assembled programs.
type Sink interface {
	Put(path string, prog *asm.Program) error
}

// DiskSink writes straight to the host file system.
type DiskSink struct{}

func (DiskSink) Put(path string, prog *asm.Program) error {
	return hackfile.WriteProgram(path, prog)
}

// StoreSink stages outputs in a vfs.Store; call Store.Flush to publish them.
type StoreSink struct {
	Store *vfs.Store
}

func (s StoreSink) Put(path string, prog *asm.Program) error {
	return s.Store.Write(path, []byte(prog.String()))
}

type Options struct {
	// Ext replaces the input extension; hackfile.DefaultExt when empty.
	Ext string
	// OutDir, when set, collects every output there instead of next to its input.
	OutDir string
	// Jobs bounds concurrency; GOMAXPROCS when <= 0.
	Jobs int
	// Config is shared read-only by all runs; asm.DefaultConfig when nil.
	Config *asm.Config
}

type Result struct {
	Input   string
	Output  string
	Source  string
	Program *asm.Program
}

// Run assembles inputs and hands each program to sink. Results keep the
// order of inputs. The first failure cancels work that has not started yet
// and is returned wrapped with the input path.
func Run(ctx context.Context, inputs []string, sink Sink, opts Options) ([]Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	assembler := asm.NewAssembler(opts.Config)

	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := hackfile.ReadSource(in)
			if err != nil {
				return err
			}
			prog, err := assembler.Assemble(src)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			out := OutputPath(in, opts)
			if err := sink.Put(out, prog); err != nil {
				return fmt.Errorf("%s: writing %s: %w", in, out, err)
			}
			glog.V(1).Infof("%s -> %s (%d words)", in, out, len(prog.Words))

			results[i] = Result{Input: in, Output: out, Source: src, Program: prog}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// OutputPath is where Run puts the output for in.
func OutputPath(in string, opts Options) string {
	out := hackfile.OutputPath(in, opts.Ext)
	if opts.OutDir != "" {
		out = filepath.Join(opts.OutDir, filepath.Base(out))
	}
	return out
}
