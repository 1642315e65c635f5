// Command vane is the host CLI harness spec §1 describes at the boundary:
// "reads a single source file, calls initialize()... then calls run(source)
// with the file contents". Grounded on the ancestor module's cmd/funxy/main.go
// (os.Args-driven dispatch, os.Exit on failure, fmt.Fprintf-to-stderr
// reporting) but reduced to the single entry point vane actually needs —
// that module's bytecode/VM/module/embed machinery has no counterpart here.
package main

import (
	"fmt"
	"os"

	"github.com/vane-lang/vane/internal/obslog"
	"github.com/vane-lang/vane/internal/parser"
	"github.com/vane-lang/vane/internal/pipeline"
	"github.com/vane-lang/vane/internal/prelude"
	"github.com/vane-lang/vane/internal/runtime"
	"github.com/vane-lang/vane/internal/scope"
)

// host bundles the artifacts initialize() builds once and run() reuses for
// every source file in the process (spec §1 boundary contract).
type host struct {
	mgr *scope.Manager
	log *obslog.Logger
}

// initialize installs the prelude into a fresh global scope (spec §1: the
// prelude is "built-in", handed to stage 1 already populated).
func initialize(log *obslog.Logger) *host {
	mgr := scope.NewManager()
	prelude.Install(mgr.Root(), mgr.TraitImpls())
	return &host{mgr: mgr, log: log}
}

// run parses source, runs the full pipeline (declaration, type-check with
// inline specialization emission, root emission), and executes the
// resulting intermediate program. Returns a non-nil error on the first
// syntax or semantic diagnostic.
func (h *host) run(source string) error {
	h.log.Stage("parsing")
	prog, perr := parser.Parse(source)
	if perr != nil {
		return perr
	}

	h.log.Stage("running declaration + type-check + emit pipeline")
	ctx := pipeline.NewContext(prog, h.mgr)
	emitted, cerr := pipeline.Compile(ctx)
	if cerr != nil {
		return cerr
	}
	h.log.Debug("%d functions emitted", len(emitted.Order))

	h.log.Stage("executing")
	interp := runtime.NewInterpreter(emitted, ctx.Meta)
	interp.Run()
	return nil
}

func main() {
	cfg, cfgErr := loadProjectConfig("vane.yaml")
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "vane: reading vane.yaml: %v\n", cfgErr)
		os.Exit(1)
	}

	path := cfg.Entry
	if len(os.Args) >= 2 {
		path = os.Args[1]
	}
	if path == "" {
		fmt.Fprintf(os.Stderr, "usage: %s <file.vane>\n", os.Args[0])
		os.Exit(1)
	}

	logger := &obslog.Logger{Out: os.Stderr, Verbose: cfg.Verbose}
	h := initialize(logger)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vane: %v\n", err)
		os.Exit(1)
	}

	if runErr := h.run(string(data)); runErr != nil {
		de, ok := asDiagError(runErr)
		if !ok {
			fmt.Fprintf(os.Stderr, "vane: %v\n", runErr)
			os.Exit(1)
		}
		formatter := newFormatter(string(data), cfg.Color)
		fmt.Fprint(os.Stderr, formatter.Format(de))
		os.Exit(1)
	}
}
