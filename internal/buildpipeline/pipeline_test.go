package buildpipeline

import (
	"testing"
	"time"
)

func TestTimingsAccumulate(t *testing.T) {
	var tm Timings
	if tm.Has(StageDeclare) {
		t.Fatal("empty timings report a stage")
	}
	tm.Add(StageDeclare, 2*time.Millisecond)
	tm.Add(StageDeclare, 3*time.Millisecond)
	tm.Set(StageLoad, time.Millisecond)
	if got := tm.Duration(StageDeclare); got != 5*time.Millisecond {
		t.Errorf("declare = %v", got)
	}
	if got := tm.Sum(StageLoad, StageDeclare, StageDump); got != 6*time.Millisecond {
		t.Errorf("sum = %v", got)
	}
	var nilTimings *Timings
	nilTimings.Add(StageLoad, time.Second)
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 1)
	Emit(ChannelSink{Ch: ch}, Event{File: "a.c", Stage: StageLex, Status: StatusDone})
	if evt := <-ch; evt.File != "a.c" || evt.Stage != StageLex {
		t.Errorf("event = %+v", evt)
	}
	ChannelSink{}.OnEvent(Event{})
	Emit(nil, Event{})

	rec := &RecordingSink{}
	Emit(rec, Event{Stage: StageLoad})
	Emit(rec, Event{Stage: StageDump})
	if evs := rec.Events(); len(evs) != 2 || evs[1].Stage != StageDump {
		t.Errorf("recorded = %+v", evs)
	}
}
