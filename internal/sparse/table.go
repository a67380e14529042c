// Package sparse provides a two-level sparse table with a declared default value.
package sparse

// Table is a sparse float64 map over (row, column) pairs.
// Entries that were never set resolve to the table default.
type Table[R, C comparable] struct {
	rows map[R]map[C]float64
	def  float64
	n    int
}

// New creates an empty table whose unset entries read as def.
func New[R, C comparable](def float64) *Table[R, C] {
	return &Table[R, C]{
		rows: make(map[R]map[C]float64),
		def:  def,
	}
}

// Default returns the value reported for unset entries.
func (t *Table[R, C]) Default() float64 {
	return t.def
}

// Get returns the stored value, or the default if (row, col) was never set.
func (t *Table[R, C]) Get(row R, col C) float64 {
	if v, ok := t.Lookup(row, col); ok {
		return v
	}
	return t.def
}

// Lookup returns the stored value and whether it was explicitly set.
func (t *Table[R, C]) Lookup(row R, col C) (float64, bool) {
	r, ok := t.rows[row]
	if !ok {
		return 0, false
	}
	v, ok := r[col]
	return v, ok
}

// Has reports whether (row, col) was explicitly set.
func (t *Table[R, C]) Has(row R, col C) bool {
	_, ok := t.Lookup(row, col)
	return ok
}

// HasRow reports whether any entry of row was explicitly set.
func (t *Table[R, C]) HasRow(row R) bool {
	return len(t.rows[row]) > 0
}

// Set stores a value, creating the row as needed.
func (t *Table[R, C]) Set(row R, col C, val float64) {
	r, ok := t.rows[row]
	if !ok {
		r = make(map[C]float64)
		t.rows[row] = r
	}
	if _, ok := r[col]; !ok {
		t.n++
	}
	r[col] = val
}

// Add adds delta to the current value (default included) and returns the result.
func (t *Table[R, C]) Add(row R, col C, delta float64) float64 {
	v := t.Get(row, col) + delta
	t.Set(row, col, v)
	return v
}

// Delete removes an explicit entry so it reads as the default again.
func (t *Table[R, C]) Delete(row R, col C) {
	r, ok := t.rows[row]
	if !ok {
		return
	}
	if _, ok := r[col]; !ok {
		return
	}
	delete(r, col)
	t.n--
	if len(r) == 0 {
		delete(t.rows, row)
	}
}

// Row returns the explicit entries of a row. The map must not be modified.
func (t *Table[R, C]) Row(row R) map[C]float64 {
	return t.rows[row]
}

// RowSum sums the explicit entries of a row.
func (t *Table[R, C]) RowSum(row R) float64 {
	var sum float64
	for _, v := range t.rows[row] {
		sum += v
	}
	return sum
}

// Rows returns the keys of all rows holding at least one entry.
func (t *Table[R, C]) Rows() []R {
	keys := make([]R, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	return keys
}

// Each calls fn for every explicitly set entry. Iteration order is unspecified.
func (t *Table[R, C]) Each(fn func(row R, col C, val float64)) {
	for r, cols := range t.rows {
		for c, v := range cols {
			fn(r, c, v)
		}
	}
}

// Len returns the number of explicitly set entries.
func (t *Table[R, C]) Len() int {
	return t.n
}

// Reset drops every entry, keeping the default.
func (t *Table[R, C]) Reset() {
	t.rows = make(map[R]map[C]float64)
	t.n = 0
}

// Clone returns a deep copy.
func (t *Table[R, C]) Clone() *Table[R, C] {
	out := New[R, C](t.def)
	t.Each(out.Set)
	return out
}
