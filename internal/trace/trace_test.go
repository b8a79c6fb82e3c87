package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeFunction, true},
		{LevelError, ScopeSymbol, false},
		{LevelPhase, ScopeUnit, true},
		{LevelPhase, ScopeFunction, false},
		{LevelDetail, ScopeFunction, true},
		{LevelDetail, ScopeSymbol, false},
		{LevelDebug, ScopeSymbol, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	span := Begin(tr, ScopeUnit, "unit:a.c", 0)
	child := Begin(tr, ScopeFunction, "function:main", span.ID())
	Point(tr, ScopeSymbol, "add-globals", "x")
	child.End("")
	span.With("globals", "1").With("errors", "0").End("ok")

	out := buf.String()
	for _, want := range []string{
		"→ unit:a.c",
		"  → function:main",
		"• add-globals (x)",
		"← unit:a.c (ok) {globals=1, errors=0}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "compile", 0).With("units", "2").End("")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Scope != "driver" || len(ev.Attrs) != 1 || ev.Attrs[0].Value != "2" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestFilteredSpanIsInert(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	span := Begin(tr, ScopeSymbol, "ignored", 0)
	if span.ID() != 0 || span.With("k", "v").End("") != 0 {
		t.Fatalf("filtered span should be inert")
	}
	if buf.Len() != 0 {
		t.Fatalf("filtered span wrote %q", buf.String())
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	Point(r, ScopeSymbol, "a", "")
	if got := r.Snapshot(); len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("partial snapshot = %+v", got)
	}
	for _, name := range []string{"b", "c", "d"} {
		Point(r, ScopeSymbol, name, "")
	}
	got := r.Snapshot()
	if len(got) != 2 || got[0].Name != "c" || got[1].Name != "d" {
		t.Fatalf("snapshot = %+v", got)
	}
}

func TestNewPicksSinks(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if FindRing(tr) == nil {
		t.Fatalf("ring not found behind both-mode tracer")
	}
	if off, _ := New(Config{Level: LevelOff, Mode: ModeBoth}); off != Nop {
		t.Fatalf("LevelOff should give Nop")
	}
	if FindRing(Nop) != nil {
		t.Fatalf("nop tracer has no ring")
	}
	if _, err := ParseMode("sideways"); err == nil {
		t.Fatalf("expected bad mode error")
	}
}

func TestContextCarriesTracerAndSpan(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop || CurrentSpan(ctx) != 0 {
		t.Fatalf("empty context should give Nop and no span")
	}
	r := NewRingTracer(8, LevelDebug)
	ctx = WithTracer(ctx, r)
	span := Begin(FromContext(ctx), ScopeDriver, "compile", CurrentSpan(ctx))
	ctx = WithSpan(ctx, span)
	if FromContext(ctx) != r || CurrentSpan(ctx) != span.ID() {
		t.Fatalf("context lost tracer or span")
	}
}
