package schema

import (
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// A Snapshot is an encodable capture of an introspected schema, taken
// for offline comparison between environments. It deliberately records
// reflection shapes only, not logical column kinds.
type Snapshot struct {
	Database string                      `msgpack:"database"`
	Dialect  string                      `msgpack:"dialect"`
	Tables   []string                    `msgpack:"tables"`
	Columns  map[string][]ColumnMetadata `msgpack:"columns"`
	Indexes  map[string][]*Index         `msgpack:"indexes"`
	FKs      map[string][]ForeignKey     `msgpack:"fks"`
}

// TakeSnapshot introspects the full schema of the vendor's current
// catalog through its (cached) reflection entry points.
func TakeSnapshot(ctx context.Context, v Vendor) (*Snapshot, error) {
	db, err := v.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlkit/schema: snapshot: %w", err)
	}
	tables, err := v.TableNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlkit/schema: snapshot: %w", err)
	}
	s := &Snapshot{
		Database: db,
		Dialect:  v.Name(),
		Tables:   tables,
		Columns:  make(map[string][]ColumnMetadata, len(tables)),
		Indexes:  make(map[string][]*Index, len(tables)),
		FKs:      make(map[string][]ForeignKey, len(tables)),
	}
	cols, err := v.Columns(ctx, tables...)
	if err != nil {
		return nil, fmt.Errorf("sqlkit/schema: snapshot: %w", err)
	}
	for t, c := range cols {
		s.Columns[t] = c
	}
	idxs, err := v.Indexes(ctx, tables...)
	if err != nil {
		return nil, fmt.Errorf("sqlkit/schema: snapshot: %w", err)
	}
	for t, i := range idxs {
		s.Indexes[t] = i
	}
	fks, err := v.ForeignKeys(ctx, tables...)
	if err != nil {
		return nil, fmt.Errorf("sqlkit/schema: snapshot: %w", err)
	}
	for tc, f := range fks {
		s.FKs[tc.Table] = append(s.FKs[tc.Table], f...)
	}
	return s, nil
}

// Encode serializes the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("sqlkit/schema: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot deserializes a snapshot previously produced by
// Encode.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	s := &Snapshot{}
	if err := msgpack.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("sqlkit/schema: decode snapshot: %w", err)
	}
	return s, nil
}
