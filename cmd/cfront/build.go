package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cfront/internal/buildpipeline"
	"cfront/internal/diag"
	"cfront/internal/diagfmt"
	"cfront/internal/driver"
	"cfront/internal/layout"
	"cfront/internal/prof"
	"cfront/internal/project"
	"cfront/internal/ui"
)

// buildOptions is the merged view of flags and cfront.toml for one run.
type buildOptions struct {
	files          []string
	target         layout.Target
	maxDiagnostics int
	jobs           int
	dump           bool
	snapshot       string
	format         string
	color          bool
	quiet          bool
	timings        bool
	ui             uiMode
}

var errNoInput = errors.New("no input files (pass files or add " + project.ManifestName + ")")

// resolveBuild merges the command line with the manifest found above the
// first input (or the working directory). Flags win over the manifest.
func resolveBuild(cmd *cobra.Command, args []string, dumpByDefault bool) (buildOptions, error) {
	flags := cmd.Flags()
	var opts buildOptions

	startDir := "."
	if len(args) > 0 {
		startDir = filepath.Dir(args[0])
	}
	manifest, found, err := project.LoadManifest(startDir)
	switch {
	case err == nil:
	case len(args) > 0 && errors.Is(err, project.ErrNoSources):
		// explicit inputs make [build].sources optional
		found = false
	default:
		return opts, err
	}

	opts.files = args
	if len(opts.files) == 0 && found {
		opts.files = manifest.Sources()
	}
	if len(opts.files) == 0 {
		return opts, errNoInput
	}

	targetName, _ := flags.GetString("target")
	switch {
	case targetName != "":
		opts.target, err = layout.TargetByName(targetName)
	case found:
		opts.target, err = manifest.Config.Target.Layout()
	default:
		opts.target = layout.X86_64()
	}
	if err != nil {
		return opts, err
	}

	opts.maxDiagnostics, _ = flags.GetInt("max-diagnostics")
	if found && !flags.Changed("max-diagnostics") && manifest.Config.Build.MaxDiagnostics > 0 {
		opts.maxDiagnostics = manifest.Config.Build.MaxDiagnostics
	}
	opts.jobs, _ = flags.GetInt("jobs")

	opts.dump = dumpByDefault
	if flags.Lookup("dump-symbols") != nil {
		if flags.Changed("dump-symbols") {
			opts.dump, _ = flags.GetBool("dump-symbols")
		} else if found {
			opts.dump = opts.dump || manifest.Config.Build.DumpSymbols
		}
	}
	if flags.Lookup("emit-snapshot") != nil {
		opts.snapshot, _ = flags.GetString("emit-snapshot")
		if opts.snapshot == "" && found && manifest.Config.Build.Snapshot != "" {
			opts.snapshot = filepath.Join(manifest.Root, filepath.FromSlash(manifest.Config.Build.Snapshot))
		}
	}

	opts.format, _ = flags.GetString("format")
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case "pretty", "json", "short":
	default:
		return opts, fmt.Errorf("unsupported format %q (must be pretty, short or json)", opts.format)
	}

	colorStr, _ := flags.GetString("color")
	cm, err := readColorMode(colorStr)
	if err != nil {
		return opts, err
	}
	opts.color = useColor(cm, os.Stderr)
	opts.quiet, _ = flags.GetBool("quiet")
	opts.timings, _ = flags.GetBool("timings")

	uiStr, _ := flags.GetString("ui")
	if opts.ui, err = readUIMode(uiStr); err != nil {
		return opts, err
	}
	return opts, nil
}

// runBuild compiles the inputs and prints the dump, the diagnostics and
// the timings. It returns errHadErrors when any unit reported an error.
func runBuild(cmd *cobra.Command, opts buildOptions) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	profiler, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if perr := profiler.Stop(); perr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", perr)
		}
	}()

	color.NoColor = !opts.color
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	var dump bytes.Buffer
	req := driver.Request{
		Files:          opts.files,
		Target:         opts.target,
		MaxDiagnostics: opts.maxDiagnostics,
		Jobs:           opts.jobs,
		SnapshotPath:   opts.snapshot,
	}
	if opts.dump {
		req.Dump = &dump
	}

	var res *driver.Result
	if shouldUseTUI(opts.ui, len(opts.files)) {
		err = ui.Run(stderr, "cfront", opts.files, func(sink buildpipeline.ProgressSink) error {
			req.Progress = sink
			var compileErr error
			res, compileErr = driver.Compile(cmd.Context(), req)
			return compileErr
		})
	} else {
		res, err = driver.Compile(cmd.Context(), req)
	}

	if res != nil && res.Bag != nil && res.FileSet != nil {
		if perr := printDiagnostics(stdout, stderr, res, opts); perr != nil {
			return perr
		}
	}
	if err != nil {
		var fe *diag.FatalError
		if errors.As(err, &fe) {
			dumpTraceRing(cmd, stderr)
		}
		return err
	}

	if _, err := io.Copy(stdout, &dump); err != nil {
		return err
	}
	if opts.timings {
		printTimings(stderr, res)
	}
	if !opts.quiet {
		printSummary(stderr, res)
	}
	if res.Bag.HasErrors() {
		return errHadErrors
	}
	return nil
}

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Flags()
	var cfg prof.Config
	cfg.CPU, _ = flags.GetString("cpu-profile")
	cfg.Mem, _ = flags.GetString("mem-profile")
	cfg.Trace, _ = flags.GetString("runtime-trace")
	if cfg == (prof.Config{}) {
		return nil, nil
	}
	return prof.Start(cfg)
}

func printDiagnostics(stdout, stderr io.Writer, res *driver.Result, opts buildOptions) error {
	res.Bag.Sort()
	switch opts.format {
	case "short":
		if out := diag.FormatShort(res.Bag.Items(), res.FileSet); out != "" {
			_, err := fmt.Fprintln(stderr, out)
			return err
		}
		return nil
	case "json":
		return diagfmt.JSON(stdout, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			Max:              opts.maxDiagnostics,
			IncludeNotes:     true,
		})
	}
	return diagfmt.Pretty(stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     opts.color,
		ShowNotes: true,
	})
}

func printSummary(w io.Writer, res *driver.Result) {
	var functions, globals, pruned int
	for _, u := range res.Units {
		functions += u.Decl.Functions
		globals += u.Decl.Globals
		pruned += u.Pruned
	}
	errs := res.Bag.ErrorCount()
	status := color.GreenString("ok")
	if errs > 0 {
		status = color.RedString("%d error(s)", errs)
	}
	fmt.Fprintf(w, "%d unit(s): %d function(s), %d global(s), %d static(s) pruned, %s\n",
		len(res.Units), functions, globals, pruned, status)
}
