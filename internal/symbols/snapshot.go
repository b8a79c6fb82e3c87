package symbols

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"cfront/internal/layout"
	"cfront/internal/source"
	"cfront/internal/types"
)

// Current schema version - increment when the Snapshot format changes
const snapshotSchemaVersion uint16 = 1

// ErrSnapshotSchema is returned for snapshots written by another format version.
var ErrSnapshotSchema = errors.New("symbol snapshot schema mismatch")

// SnapshotSymbol is the serialized form of a Symbol.
type SnapshotSymbol struct {
	Name      string
	Type      types.Type
	Composite SymbolID
	Kind      StructKind
	Class     Class
	Size      int
	NElems    int
	Align     int
	Slot      int
	Members   []SymbolID
	Params    []SymbolID
	Init      []int64
	Span      source.Span
}

// Snapshot is a self-contained copy of a table, written with msgpack.
type Snapshot struct {
	Schema   uint16
	Target   layout.Target
	Symbols  []SnapshotSymbol // arena order, without the sentinel
	Catalogs [][]SymbolID     // indexed by CatalogKind
	Active   SymbolID
}

// Snapshot captures the arena, the catalogs and the active function.
func (t *Table) Snapshot() *Snapshot {
	snap := &Snapshot{
		Schema:   snapshotSchemaVersion,
		Target:   t.Layout.Target,
		Symbols:  make([]SnapshotSymbol, 0, t.Symbols.Len()),
		Catalogs: make([][]SymbolID, catalogCount),
		Active:   t.function,
	}
	for _, sym := range t.Symbols.Data() {
		c := sym.clone()
		snap.Symbols = append(snap.Symbols, SnapshotSymbol{
			Name:      c.Name,
			Type:      c.Type,
			Composite: c.Composite,
			Kind:      c.Kind,
			Class:     c.Class,
			Size:      c.Size,
			NElems:    c.NElems,
			Align:     c.Align,
			Slot:      c.slot,
			Members:   c.Members,
			Params:    c.Params,
			Init:      c.Init,
			Span:      c.Span,
		})
	}
	for k := range t.catalogs {
		snap.Catalogs[k] = append([]SymbolID(nil), t.catalogs[k].ids...)
	}
	return snap
}

// FromSnapshot rebuilds a table and checks it with Validate.
func FromSnapshot(snap *Snapshot) (*Table, error) {
	if snap == nil {
		return nil, errors.New("nil snapshot")
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSnapshotSchema, snap.Schema, snapshotSchemaVersion)
	}
	if len(snap.Catalogs) != int(catalogCount) {
		return nil, fmt.Errorf("snapshot has %d catalogs, want %d", len(snap.Catalogs), catalogCount)
	}
	if err := snap.Target.Validate(); err != nil {
		return nil, err
	}

	hint, err := toSymbolID(len(snap.Symbols))
	if err != nil {
		return nil, err
	}
	t := NewTable(Hints{Symbols: uint(hint)}, snap.Target)
	for i := range snap.Symbols {
		s := &snap.Symbols[i]
		t.Symbols.New(&Symbol{
			Name:      s.Name,
			Type:      s.Type,
			Composite: s.Composite,
			Kind:      s.Kind,
			Class:     s.Class,
			Size:      s.Size,
			NElems:    s.NElems,
			Align:     s.Align,
			Members:   s.Members,
			Params:    s.Params,
			Init:      s.Init,
			Span:      s.Span,
			slot:      s.Slot,
		})
	}
	for k, ids := range snap.Catalogs {
		for _, id := range ids {
			if t.Symbols.Get(id) == nil {
				return nil, fmt.Errorf("snapshot %s catalog references missing symbol %d", CatalogKind(k), id)
			}
		}
		t.catalogs[k].ids = append(t.catalogs[k].ids, ids...)
	}
	t.function = snap.Active
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return t, nil
}

// EncodeSnapshot writes the table to w.
func (t *Table) EncodeSnapshot(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(t.Snapshot())
}

// DecodeSnapshot reads a table written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (*Table, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode symbol snapshot: %w", err)
	}
	return FromSnapshot(&snap)
}

// WriteSnapshotFile writes the snapshot through a temporary file and renames
// it into place, so readers never see a partial snapshot.
func (t *Table) WriteSnapshotFile(path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*.cfsym")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if err = t.EncodeSnapshot(f); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadSnapshotFile loads a snapshot written by WriteSnapshotFile.
func ReadSnapshotFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSnapshot(f)
}
