package pdooci

import (
	"strconv"

	"github.com/pdooci/pdooci/utils"
)

// Key is one key of a Row: a 0-based position or a column name.
type Key struct {
	Pos  int
	Name string
}

// IsName reports whether the key is a column name.
func (k Key) IsName() bool { return k.Name != "" }

func (k Key) String() string {
	if k.IsName() {
		return k.Name
	}
	return strconv.Itoa(k.Pos)
}

// Row is one fetched row in Both, Assoc or Num shape. Both shape exposes every value
// under its position and under its name; the two keys read the same slot.
type Row struct {
	names  []string
	values []interface{}
	style  Style
}

func newRow(style Style, names []string, values []interface{}) *Row {
	return &Row{names: names, values: values, style: style}
}

// Style is StyleBoth, StyleAssoc or StyleNum.
func (r *Row) Style() Style { return r.style }

func (r *Row) hasPos() bool  { return r.style != StyleAssoc }
func (r *Row) hasName() bool { return r.style != StyleNum }

// Len is the number of keys: twice the column count in Both shape.
func (r *Row) Len() int {
	if r.style == StyleBoth {
		return 2 * len(r.values)
	}
	return len(r.values)
}

// Keys lists the keys in fetch order. Both shape interleaves 0, NAME, 1, EMAIL.
func (r *Row) Keys() []Key {
	keys := make([]Key, 0, r.Len())
	for i := range r.values {
		if r.hasPos() {
			keys = append(keys, Key{Pos: i})
		}
		if r.hasName() {
			keys = append(keys, Key{Pos: i, Name: r.names[i]})
		}
	}
	return keys
}

// Get reads the value under an int position or a string column name. NULL reads as nil
// with ok true.
func (r *Row) Get(key interface{}) (interface{}, bool) {
	switch k := key.(type) {
	case int:
		if r.hasPos() && k >= 0 && k < len(r.values) {
			return r.values[k], true
		}
	case string:
		if r.hasName() {
			for i, name := range r.names {
				if name == k {
					return r.values[i], true
				}
			}
		}
	case Key:
		if k.IsName() {
			return r.Get(k.Name)
		}
		return r.Get(k.Pos)
	}
	return nil, false
}

// Index is the value at position i regardless of shape.
func (r *Row) Index(i int) interface{} { return r.values[i] }

// Values is the backing slice of the row.
func (r *Row) Values() []interface{} { return r.values }

// Columns are the column keys after the key-case policy.
func (r *Row) Columns() []string { return r.names }

// Map renders the row as a map; positions become decimal string keys.
func (r *Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, r.Len())
	for _, k := range r.Keys() {
		v, _ := r.Get(k)
		m[k.String()] = v
	}
	return m
}

// Object is a row fetched in Obj shape: one attribute per column under the column's
// natural name.
type Object map[string]interface{}

// Groups is the result of a ColumnGroup fetch: column 1 values grouped under the
// column 0 value, keys in order of first appearance.
type Groups struct {
	keys   []string
	values map[string][]interface{}
}

func newGroups() *Groups {
	return &Groups{values: map[string][]interface{}{}}
}

func (g *Groups) add(key, value interface{}) {
	k := utils.ToStringKey(key)
	if _, ok := g.values[k]; !ok {
		g.keys = append(g.keys, k)
	}
	g.values[k] = append(g.values[k], value)
}

// Keys lists group keys in order of first appearance.
func (g *Groups) Keys() []string { return g.keys }

// Get lists the values of group key in fetch order.
func (g *Groups) Get(key string) []interface{} { return g.values[key] }

func (g *Groups) Len() int { return len(g.keys) }

// Map returns the groups as a plain map.
func (g *Groups) Map() map[string][]interface{} {
	m := make(map[string][]interface{}, len(g.values))
	for k, v := range g.values {
		m[k] = v
	}
	return m
}

// Result is the outcome of FetchAll. Rows holds one shaped entry per row: *Row, Object,
// a class pointer, a func result or a column value. Groups is only set for ColumnGroup.
type Result struct {
	Mode   FetchMode
	Rows   []interface{}
	Groups *Groups
}

// Len is the number of rows, or of groups for ColumnGroup.
func (r *Result) Len() int {
	if r.Groups != nil {
		return r.Groups.Len()
	}
	return len(r.Rows)
}
