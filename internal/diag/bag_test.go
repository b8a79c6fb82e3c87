package diag

import (
	"strings"
	"testing"

	"cfront/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	ReportWarning(r, SemaDuplicateSymbol, source.Span{}, "first").Emit()
	ReportError(r, SemaUnresolvedSymbol, source.Span{}, "second").Emit()
	ReportError(r, SemaUnknownType, source.Span{}, "dropped").Emit()

	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	if !bag.HasErrors() || bag.ErrorCount() != 1 {
		t.Fatalf("HasErrors=%v ErrorCount=%d", bag.HasErrors(), bag.ErrorCount())
	}
}

func TestBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SemaDuplicateSymbol, source.Span{}, "dup").
		WithNote(source.Span{Start: 1, End: 2}, "previous declaration here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected note to be attached")
	}
}

func TestSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(SemaUnknownType, source.Span{Start: 9, End: 10}, "b"))
	bag.Add(NewError(SemaUnresolvedSymbol, source.Span{Start: 1, End: 2}, "a"))
	bag.Add(NewError(SemaUnresolvedSymbol, source.Span{Start: 1, End: 2}, "a again"))
	bag.Sort()
	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Len after dedup = %d", bag.Len())
	}
	if bag.Items()[0].Message != "a" {
		t.Fatalf("first = %q", bag.Items()[0].Message)
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("unit.c", []byte("int x;\nfoo y;\n"))
	d := NewError(SemaUnknownType, source.Span{File: id, Start: 7, End: 10}, "unknown type name 'foo'")
	got := FormatShort([]Diagnostic{d}, fs)
	want := "error SEM3003 unit.c:2:1 unknown type name 'foo'"
	if got != want {
		t.Fatalf("FormatShort =\n%s\nwant\n%s", got, want)
	}
	if !strings.HasPrefix(SemaUnknownType.String(), "[SEM3003]") {
		t.Fatalf("Code.String = %q", SemaUnknownType.String())
	}
}
