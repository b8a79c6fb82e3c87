// Package driver runs the front end over a set of translation units and
// produces the shared symbol table.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"fortio.org/safecast"

	"cfront/internal/buildpipeline"
	"cfront/internal/decl"
	"cfront/internal/diag"
	"cfront/internal/layout"
	"cfront/internal/observ"
	"cfront/internal/source"
	"cfront/internal/symbols"
	"cfront/internal/trace"
)

// Request describes one build.
type Request struct {
	Files          []string
	Target         layout.Target
	MaxDiagnostics int // 0 means unlimited
	Jobs           int // lexer parallelism; 0 means GOMAXPROCS
	Dump           io.Writer
	SnapshotPath   string
	Progress       buildpipeline.ProgressSink
}

// UnitResult summarizes one translation unit.
type UnitResult struct {
	Path    string
	FileID  source.FileID
	Tokens  int
	Decl    decl.Result
	Pruned  int
	LoadErr error
}

// Result is everything a build produced.
type Result struct {
	FileSet *source.FileSet
	Table   *symbols.Table
	Bag     *diag.Bag
	Units   []UnitResult
	Strings []decl.StringLit
	Timer   *observ.Timer
	Timings buildpipeline.Timings
}

// ErrNoInput is returned when a request names no files.
var ErrNoInput = errors.New("no input files")

// Compile loads and tokenizes every unit, then declares them one at a time
// into one table, pruning each unit's statics when it ends. A *diag.FatalError
// raised on the way is returned as the error after the partial snapshot
// file, if any, has been removed.
func Compile(ctx context.Context, req Request) (res *Result, err error) {
	if len(req.Files) == 0 {
		return nil, ErrNoInput
	}
	if err := req.Target.Validate(); err != nil {
		return nil, err
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	res = &Result{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(req.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}

	defer func() {
		r := recover()
		if r == nil {
			span.End("")
			return
		}
		fe, ok := diag.AsFatal(r)
		if !ok {
			panic(r)
		}
		if req.SnapshotPath != "" {
			_ = os.Remove(req.SnapshotPath)
		}
		trace.Point(tracer, trace.ScopeDriver, "fatal", fe.Error())
		span.End("fatal")
		err = fe
	}()

	loadIdx := res.Timer.Begin("load+lex")
	start := time.Now()
	units, err := loadUnits(ctx, res.FileSet, req.Files, req.MaxDiagnostics, req.Jobs, req.Progress)
	res.Timings.Set(buildpipeline.StageLex, time.Since(start))
	res.Timer.End(loadIdx, strconv.Itoa(len(units))+" units")
	if err != nil {
		return res, err
	}

	res.Table = symbols.NewTable(symbols.Hints{Symbols: symbolHint(units)}, req.Target)
	res.Table.Tracer = tracer
	res.Table.Reset()
	session := decl.NewSession(res.Table)

	for i := range units {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Units = append(res.Units, declareUnit(ctx, session, &units[i], req, res))
	}
	res.Strings = session.Strings()

	if err := res.Table.Validate(); err != nil {
		diag.Fatal(res.Table, "symbol table corrupted: "+err.Error())
	}

	if req.Dump != nil {
		if err := runStage(res, req.Progress, buildpipeline.StageDump, func() error {
			return res.Table.DumpAll(req.Dump)
		}); err != nil {
			return res, fmt.Errorf("dump symbols: %w", err)
		}
	}
	if req.SnapshotPath != "" {
		if err := runStage(res, req.Progress, buildpipeline.StageSnapshot, func() error {
			return res.Table.WriteSnapshotFile(req.SnapshotPath)
		}); err != nil {
			return res, fmt.Errorf("write snapshot: %w", err)
		}
	}
	return res, nil
}

func declareUnit(ctx context.Context, session *decl.Session, u *unit, req Request, res *Result) UnitResult {
	out := UnitResult{Path: u.path, FileID: u.fileID, Tokens: len(u.tokens), LoadErr: u.loadErr}
	if u.loadErr != nil {
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: u.fileID}, "failed to load "+u.path+": "+u.loadErr.Error()))
		return out
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeUnit, "unit:"+u.path, trace.CurrentSpan(ctx))
	done := res.Timer.Track("unit " + u.path)
	buildpipeline.Emit(req.Progress, buildpipeline.Event{File: u.path, Stage: buildpipeline.StageDeclare, Status: buildpipeline.StatusWorking})

	start := time.Now()
	lexErrors, _ := safecast.Conv[uint](u.bag.ErrorCount())
	maxErrors, _ := safecast.Conv[uint](req.MaxDiagnostics)
	out.Decl = session.Unit(u.tokens, decl.Options{
		MaxErrors:     maxErrors,
		CurrentErrors: lexErrors,
		Reporter:      diag.BagReporter{Bag: u.bag},
	})
	elapsed := time.Since(start)
	res.Timings.Add(buildpipeline.StageDeclare, elapsed)
	status := buildpipeline.StatusDone
	if u.bag.HasErrors() {
		status = buildpipeline.StatusError
	}
	buildpipeline.Emit(req.Progress, buildpipeline.Event{File: u.path, Stage: buildpipeline.StageDeclare, Status: status, Elapsed: elapsed})

	out.Pruned = res.Table.PruneStatics()
	buildpipeline.Emit(req.Progress, buildpipeline.Event{File: u.path, Stage: buildpipeline.StagePrune, Status: buildpipeline.StatusDone})

	res.Bag.Merge(u.bag)
	note := fmt.Sprintf("%d functions, %d globals, %d pruned", out.Decl.Functions, out.Decl.Globals, out.Pruned)
	done(note)
	span.With("errors", strconv.Itoa(u.bag.ErrorCount())).End(note)
	return out
}

func runStage(res *Result, sink buildpipeline.ProgressSink, stage buildpipeline.Stage, fn func() error) error {
	buildpipeline.Emit(sink, buildpipeline.Event{Stage: stage, Status: buildpipeline.StatusWorking})
	done := res.Timer.Track(string(stage))
	start := time.Now()
	err := fn()
	res.Timings.Set(stage, time.Since(start))
	status := buildpipeline.StatusDone
	if err != nil {
		status = buildpipeline.StatusError
	}
	done("")
	buildpipeline.Emit(sink, buildpipeline.Event{Stage: stage, Status: status, Err: err, Elapsed: time.Since(start)})
	return err
}

// symbolHint guesses the arena size from the token count.
func symbolHint(units []unit) uint {
	n := 0
	for _, u := range units {
		n += len(u.tokens)
	}
	hint, err := safecast.Conv[uint](n / 4)
	if err != nil {
		return 0
	}
	return hint
}

// DumpSnapshot loads a snapshot file and writes its symbol dump to w.
func DumpSnapshot(path string, w io.Writer) error {
	table, err := symbols.ReadSnapshotFile(path)
	if err != nil {
		return err
	}
	return table.DumpAll(w)
}
