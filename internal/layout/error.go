package layout

import (
	"fmt"

	"cfront/internal/types"
)

// LayoutErrorKind enumerates why a size or alignment could not be computed.
type LayoutErrorKind uint8

const (
	// LayoutErrNoSize is reported for types without storage (none, void values).
	LayoutErrNoSize LayoutErrorKind = iota + 1
	// LayoutErrIncomplete is reported for struct/union values without a composite.
	LayoutErrIncomplete
	LayoutErrUnknownKind
	LayoutErrOverflow
)

// LayoutError represents an error during size or alignment calculation.
type LayoutError struct {
	Kind LayoutErrorKind
	Type types.Type
	Err  error // for LayoutErrOverflow
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrNoSize:
		return fmt.Sprintf("type %s has no size", e.Type)
	case LayoutErrIncomplete:
		return fmt.Sprintf("incomplete type %s", e.Type)
	case LayoutErrUnknownKind:
		return fmt.Sprintf("unknown type encoding %d", uint16(e.Type))
	case LayoutErrOverflow:
		return fmt.Sprintf("size of %s overflows: %v", e.Type, e.Err)
	default:
		return fmt.Sprintf("layout error kind=%d type %s", e.Kind, e.Type)
	}
}

func (e *LayoutError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
