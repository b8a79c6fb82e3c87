package symbols

import (
	"fmt"
	"io"
	"strings"

	"cfront/internal/types"
)

// dumpWriter remembers the first write error so the dump code can stay linear.
type dumpWriter struct {
	w   io.Writer
	err error
}

func (d *dumpWriter) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

// DumpSymbol writes one line describing id, followed by its members (tags)
// or parameters (functions) indented four more columns.
func (t *Table) DumpSymbol(w io.Writer, id SymbolID, indent int) error {
	d := &dumpWriter{w: w}
	t.dumpSymbol(d, id, indent)
	return d.err
}

// DumpCatalog writes every entry of a catalog under a title. The title is
// skipped for empty catalogs or when it is empty.
func (t *Table) DumpCatalog(w io.Writer, kind CatalogKind, title string, indent int) error {
	return t.DumpList(w, t.Catalog(kind).IDs(), title, indent)
}

// DumpList writes the records of ids under a title, like DumpCatalog.
func (t *Table) DumpList(w io.Writer, ids []SymbolID, title string, indent int) error {
	d := &dumpWriter{w: w}
	t.dumpList(d, ids, title, indent)
	return d.err
}

// DumpAll writes the globals, enums and typedefs, separated by blank lines.
func (t *Table) DumpAll(w io.Writer) error {
	d := &dumpWriter{w: w}
	t.dumpList(d, t.catalogs[Globals].ids, "Global", 0)
	d.printf("\n")
	t.dumpList(d, t.catalogs[Enums].ids, "Enums", 0)
	d.printf("\n")
	t.dumpList(d, t.catalogs[Typedefs].ids, "Typedefs", 0)
	return d.err
}

func (t *Table) dumpList(d *dumpWriter, ids []SymbolID, title string, indent int) {
	if len(ids) > 0 && title != "" {
		d.printf("%s\n--------\n", title)
	}
	for _, id := range ids {
		t.dumpSymbol(d, id, indent)
	}
}

func (t *Table) dumpSymbol(d *dumpWriter, id SymbolID, indent int) {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return
	}
	d.printf("%s%s%s%s", strings.Repeat(" ", indent), t.typePrefix(sym), strings.Repeat("*", sym.Type.Indirection()), sym.Name)

	switch sym.Kind {
	case Variable:
	case Function:
		d.printf("()")
	case Array:
		d.printf("[]")
	default:
		d.printf(" unknown stype")
	}

	if label := sym.Class.String(); label != "unknown" {
		d.printf(": %s", label)
	} else {
		d.printf(": unknown class")
	}

	switch sym.Kind {
	case Variable:
		if sym.Class == EnumValue {
			d.printf(", value %d\n", sym.EnumValue())
		} else {
			d.printf(", size %d\n", sym.Size)
		}
	case Function:
		d.printf(", %d params\n", sym.NElems)
	case Array:
		d.printf(", %d elems, size %d\n", sym.NElems, sym.Size)
	default:
		d.printf("\n")
	}

	switch {
	case sym.Kind == Function:
		t.dumpList(d, sym.Params, "", indent+4)
	case sym.Type.Kind() == types.Struct, sym.Type.Kind() == types.Union:
		t.dumpList(d, sym.Members, "", indent+4)
	}
}

// typePrefix renders the base kind, naming the struct or union: the tag of a
// composite-typed record, or the record itself when it is the tag.
func (t *Table) typePrefix(sym *Symbol) string {
	switch sym.Type.Kind() {
	case types.Void:
		return "void "
	case types.Char:
		return "char "
	case types.Int:
		return "int "
	case types.Long:
		return "long "
	case types.Struct, types.Union:
		word := "struct"
		if sym.Type.Kind() == types.Union {
			word = "union"
		}
		name := sym.Name
		if tag := t.Symbols.Get(sym.Composite); tag != nil {
			name = tag.Name
		}
		return word + " " + name + " "
	default:
		return "unknown type "
	}
}
