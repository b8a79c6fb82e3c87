package diag

import (
	"fmt"
	"strings"

	"cfront/internal/source"
)

// FormatShort renders diagnostics one per line as
// "<severity> <CODE> <path>:<line>:<col> <message>" in bag order.
// The format is stable and used by tests and the --format short CLI mode.
func FormatShort(diags []Diagnostic, fs *source.FileSet) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		path, line, col := "?", uint32(0), uint32(0)
		if fs != nil {
			if f := fs.Get(d.Primary.File); f != nil {
				start, _ := fs.Resolve(d.Primary)
				path, line, col = f.Path, start.Line, start.Col
			}
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", severityLabel(d.Severity), d.Code.ID(), path, line, col, sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
