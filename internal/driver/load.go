package driver

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"cfront/internal/buildpipeline"
	"cfront/internal/diag"
	"cfront/internal/lexer"
	"cfront/internal/source"
	"cfront/internal/token"
)

// unit is one loaded and tokenized translation unit.
type unit struct {
	path    string
	fileID  source.FileID
	tokens  []token.Token
	bag     *diag.Bag
	loadErr error
}

// loadUnits reads every file into fs in order, then tokenizes them in
// parallel. Each unit reports into its own bag; the results keep the
// order of paths.
func loadUnits(ctx context.Context, fs *source.FileSet, paths []string, maxDiagnostics, jobs int, sink buildpipeline.ProgressSink) ([]unit, error) {
	units := make([]unit, len(paths))
	for i, path := range paths {
		buildpipeline.Emit(sink, buildpipeline.Event{File: path, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusWorking})
		start := time.Now()
		units[i] = unit{path: path, bag: diag.NewBag(maxDiagnostics)}
		id, err := fs.Load(path)
		if err != nil {
			units[i].loadErr = err
			// an empty stand-in gives the load diagnostic a file to point at
			units[i].fileID = fs.AddVirtual(path, nil)
			buildpipeline.Emit(sink, buildpipeline.Event{File: path, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusError, Err: err})
			continue
		}
		units[i].fileID = id
		buildpipeline.Emit(sink, buildpipeline.Event{File: path, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusDone, Elapsed: time.Since(start)})
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(paths)), 1))
	for i := range units {
		if units[i].loadErr != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			u := &units[i] // index i is owned by this goroutine
			buildpipeline.Emit(sink, buildpipeline.Event{File: u.path, Stage: buildpipeline.StageLex, Status: buildpipeline.StatusWorking})
			start := time.Now()
			u.tokens = lexer.Tokenize(fs.Get(u.fileID), lexer.Options{Reporter: diag.BagReporter{Bag: u.bag}})
			status := buildpipeline.StatusDone
			if u.bag.HasErrors() {
				status = buildpipeline.StatusError
			}
			buildpipeline.Emit(sink, buildpipeline.Event{File: u.path, Stage: buildpipeline.StageLex, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return units, err
	}
	return units, nil
}
