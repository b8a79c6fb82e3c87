package layout

import (
	"math"

	"fortio.org/safecast"

	"cfront/internal/types"
)

// Composite is implemented by struct and union tag records, which carry the
// precomputed size and alignment of their member chain.
type Composite interface {
	CompositeSize() int
	CompositeAlign() int
}

// TypeLayout is the size and alignment of an aggregate plus its member offsets.
type TypeLayout struct {
	Size         int
	Align        int
	FieldOffsets []int
}

// Field is one member handed to Struct or Union.
type Field struct {
	Size  int
	Align int
}

// Engine answers size and alignment queries for a Target.
type Engine struct {
	Target Target
}

// New creates a new Engine for the specified target.
func New(target Target) *Engine {
	return &Engine{Target: target}
}

// SizeOf returns the byte width of one value of t. Pointers of any base kind
// use the target pointer width; struct/union values use the composite's size.
func (e *Engine) SizeOf(t types.Type, composite Composite) (int, error) {
	if types.IsPointer(t) {
		return e.ptrSize(), nil
	}
	switch t.Kind() {
	case types.Char:
		return e.Target.CharSize, nil
	case types.Int:
		return e.Target.IntSize, nil
	case types.Long:
		return e.Target.LongSize, nil
	case types.Struct, types.Union:
		if composite == nil {
			return 0, &LayoutError{Kind: LayoutErrIncomplete, Type: t}
		}
		return composite.CompositeSize(), nil
	case types.None, types.Void:
		return 0, &LayoutError{Kind: LayoutErrNoSize, Type: t}
	default:
		return 0, &LayoutError{Kind: LayoutErrUnknownKind, Type: t}
	}
}

// AlignOf returns the natural alignment of t.
func (e *Engine) AlignOf(t types.Type, composite Composite) (int, error) {
	if types.IsPointer(t) {
		return e.ptrAlign(), nil
	}
	if types.IsComposite(t) {
		if composite == nil {
			return 0, &LayoutError{Kind: LayoutErrIncomplete, Type: t}
		}
		if a := composite.CompositeAlign(); a > 0 {
			return a, nil
		}
		return 1, nil
	}
	return e.SizeOf(t, composite)
}

// ArraySize multiplies an element size by a count, failing on overflow.
func (e *Engine) ArraySize(t types.Type, elemSize, count int) (int, error) {
	if count == 0 || elemSize == 0 {
		return 0, nil
	}
	total := int64(elemSize) * int64(count)
	if total/int64(count) != int64(elemSize) || total > math.MaxInt32 {
		return 0, &LayoutError{Kind: LayoutErrOverflow, Type: t}
	}
	n, err := safecast.Conv[int](total)
	if err != nil {
		return 0, &LayoutError{Kind: LayoutErrOverflow, Type: t, Err: err}
	}
	return n, nil
}

// Struct lays members out in order: each member starts at the next multiple
// of its own alignment, the struct aligns to its strictest member and its
// size is rounded up to that alignment.
func (e *Engine) Struct(fields []Field) TypeLayout {
	out := TypeLayout{Align: 1, FieldOffsets: make([]int, len(fields))}
	offset := 0
	for i, f := range fields {
		align := max(f.Align, 1)
		offset = AlignTo(offset, align)
		out.FieldOffsets[i] = offset
		offset += f.Size
		out.Align = max(out.Align, align)
	}
	out.Size = AlignTo(offset, out.Align)
	return out
}

// Union places every member at offset zero; the size is the widest member
// rounded up to the strictest alignment.
func (e *Engine) Union(fields []Field) TypeLayout {
	out := TypeLayout{Align: 1, FieldOffsets: make([]int, len(fields))}
	for _, f := range fields {
		out.Size = max(out.Size, f.Size)
		out.Align = max(out.Align, f.Align)
	}
	out.Size = AlignTo(out.Size, out.Align)
	return out
}

// AlignTo rounds n up to the nearest multiple of align.
func AlignTo(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

func (e *Engine) ptrSize() int {
	if e.Target.PtrSize <= 0 {
		return 8
	}
	return e.Target.PtrSize
}

func (e *Engine) ptrAlign() int {
	if e.Target.PtrAlign <= 0 {
		return e.ptrSize()
	}
	return e.Target.PtrAlign
}
