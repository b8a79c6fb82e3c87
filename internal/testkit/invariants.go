// Package testkit holds consistency checks shared by tests of packages
// that fill a symbol table from source.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cfront/internal/source"
	"cfront/internal/symbols"
)

// CheckSymbolSpans verifies the source spans recorded on symbols:
// 1) every non-empty span names a file of fs and lies inside its content
// 2) the text under the span is the symbol name
// Symbols without a span (anonymous tags, synthesized records) are skipped.
func CheckSymbolSpans(table *symbols.Table, fs *source.FileSet) error {
	if table == nil || fs == nil {
		return fmt.Errorf("nil table or file set")
	}
	data := table.Symbols.Data()
	for i := range data {
		sym := &data[i]
		sp := sym.Span
		if sp.Empty() {
			continue
		}
		if sp.End < sp.Start {
			return fmt.Errorf("symbol %q: inverted span %v", sym.Name, sp)
		}
		if int(sp.File) >= fs.Len() {
			return fmt.Errorf("symbol %q: span file %d not in file set", sym.Name, sp.File)
		}
		f := fs.Get(sp.File)
		size, err := safecast.Conv[uint32](len(f.Content))
		if err != nil {
			return fmt.Errorf("len content overflow: %w", err)
		}
		if sp.End > size {
			return fmt.Errorf("symbol %q: span %v beyond content of %s (%d bytes)", sym.Name, sp, f.Path, size)
		}
		if text := string(f.Content[sp.Start:sp.End]); text != sym.Name {
			return fmt.Errorf("symbol %q: span %v covers %q", sym.Name, sp, text)
		}
	}
	return nil
}
