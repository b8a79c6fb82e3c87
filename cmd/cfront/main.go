package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cfront/internal/diag"
	"cfront/internal/version"
)

// errHadErrors signals that diagnostics were already printed and the run
// should exit non-zero without another message.
var errHadErrors = errors.New("compilation failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cfront",
		Short:         "C front end symbol table tools",
		Long:          `cfront declares C translation units into a shared symbol table and reports on it`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSymbolsCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newSnapshotCmd())
	root.AddCommand(newVersionCmd())

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("format", "pretty", "output format: pretty|short|json (version takes pretty|json)")
	flags.String("target", "", "target widths (x86_64|i386); overrides cfront.toml")
	flags.Int("jobs", 0, "parallel lexer jobs (0 = GOMAXPROCS)")
	flags.String("ui", "off", "progress UI (auto|on|off)")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("cpu-profile", "", "write a CPU profile to this path")
	flags.String("mem-profile", "", "write a heap profile to this path")
	flags.String("runtime-trace", "", "write a Go runtime trace to this path")
	return root
}

func main() {
	root := newRootCmd()
	err := root.Execute()
	if err == nil {
		return
	}
	var fe *diag.FatalError
	switch {
	case errors.Is(err, errHadErrors):
	case errors.As(err, &fe):
		fmt.Fprintln(os.Stderr, fe.Error())
	default:
		fmt.Fprintf(os.Stderr, "cfront: %v\n", err)
	}
	os.Exit(1)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
