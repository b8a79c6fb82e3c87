package main

import (
	"fmt"
	"io"
	"time"

	"cfront/internal/buildpipeline"
	"cfront/internal/driver"
)

func printTimings(out io.Writer, res *driver.Result) {
	for _, stage := range buildpipeline.Stages {
		if res.Timings.Has(stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(res.Timings.Duration(stage)))
		}
	}
	fmt.Fprint(out, res.Timer.Summary())
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
