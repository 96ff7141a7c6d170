package schema

// A memo holds a lazily computed value with an explicit empty/populated
// state instead of a nil sentinel.
type memo[T any] struct {
	populated bool
	value     T
}

// Get returns the stored value, populating it through fill on first
// use. A fill error leaves the memo empty.
func (m *memo[T]) Get(fill func() (T, error)) (T, error) {
	if m.populated {
		return m.value, nil
	}
	v, err := fill()
	if err != nil {
		var zero T
		return zero, err
	}
	m.value, m.populated = v, true
	return v, nil
}

// Invalidate transitions the memo back to the empty state.
func (m *memo[T]) Invalidate() {
	var zero T
	m.value, m.populated = zero, false
}

// A MetadataCache holds introspected schema facts per vendor instance:
// the table-name list and per-table columns, foreign keys and indexes.
// Population is lazy and staleness is the caller's responsibility:
// there is no automatic expiry, only explicit invalidation after
// schema-mutating operations.
//
// The cache performs no internal locking. A vendor instance shared
// across concurrently executing units of work requires external
// serialization of cache access.
type MetadataCache struct {
	tableNames memo[[]string]
	columns    map[string][]ColumnMetadata
	fks        map[string][]ForeignKey
	indexes    map[string][]*Index
}

// NewMetadataCache returns an empty cache.
func NewMetadataCache() *MetadataCache {
	c := &MetadataCache{}
	c.reset()
	return c
}

func (c *MetadataCache) reset() {
	c.tableNames.Invalidate()
	c.columns = make(map[string][]ColumnMetadata)
	c.fks = make(map[string][]ForeignKey)
	c.indexes = make(map[string][]*Index)
}

// TableNames returns the cached table-name list, populating it through
// fill on first use.
func (c *MetadataCache) TableNames(fill func() ([]string, error)) ([]string, error) {
	return c.tableNames.Get(fill)
}

// Columns returns the cached column metadata of the given table,
// populating it through fill on first use.
func (c *MetadataCache) Columns(table string, fill func() ([]ColumnMetadata, error)) ([]ColumnMetadata, error) {
	if v, ok := c.columns[table]; ok {
		return v, nil
	}
	v, err := fill()
	if err != nil {
		return nil, err
	}
	c.columns[table] = v
	return v, nil
}

// ForeignKeys returns the cached foreign keys of the given table,
// populating them through fill on first use.
func (c *MetadataCache) ForeignKeys(table string, fill func() ([]ForeignKey, error)) ([]ForeignKey, error) {
	if v, ok := c.fks[table]; ok {
		return v, nil
	}
	v, err := fill()
	if err != nil {
		return nil, err
	}
	c.fks[table] = v
	return v, nil
}

// Indexes returns the cached indexes of the given table, populating
// them through fill on first use.
func (c *MetadataCache) Indexes(table string, fill func() ([]*Index, error)) ([]*Index, error) {
	if v, ok := c.indexes[table]; ok {
		return v, nil
	}
	v, err := fill()
	if err != nil {
		return nil, err
	}
	c.indexes[table] = v
	return v, nil
}

// Reset invalidates all cached reflection data. The next read of each
// fact performs a fresh live query.
func (c *MetadataCache) Reset() {
	c.reset()
}
