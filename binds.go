package pdooci

import (
	"strings"
	"sync"

	"github.com/pdooci/pdooci/utils"
	"github.com/spf13/cast"
)

// Slot is a caller-owned output cell. BindParam reads it at execute time; Bound-mode
// fetches write the matching column into it.
type Slot struct {
	mu  sync.RWMutex
	v   interface{}
	set bool
}

// NewSlot returns a slot holding v.
func NewSlot(v interface{}) *Slot {
	return &Slot{v: v, set: true}
}

// Value reads the current content.
func (s *Slot) Value() interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

// Set replaces the content.
func (s *Slot) Set(v interface{}) {
	s.mu.Lock()
	s.v, s.set = v, true
	s.mu.Unlock()
}

// Filled reports whether the slot was ever given a value.
func (s *Slot) Filled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

type bindEntry struct {
	// param as the caller gave it, for DebugDumpParams
	param string
	// marker is the bind name without colon; empty for column binds
	marker string
	// pos is the 0-based column a positional bind maps to, -1 for names
	pos   int
	name  string
	value interface{}
	slot  *Slot
	kind  ParamKind
	// coerce is set when the caller chose the kind explicitly
	coerce bool
}

// current is the value sent to the native bind: the slot content for BindParam.
func (e *bindEntry) current() (interface{}, error) {
	v := e.value
	if e.slot != nil {
		v = e.slot.Value()
	}
	if !e.coerce {
		return v, nil
	}
	return coerceParam(e.kind, v)
}

// column finds the result column this entry maps to in Bound mode.
func (e *bindEntry) column(columns []string) (int, bool) {
	if e.pos >= 0 {
		return e.pos, e.pos < len(columns)
	}
	upper := strings.ToUpper(e.name)
	for i, c := range columns {
		if strings.EqualFold(c, upper) {
			return i, true
		}
	}
	return 0, false
}

type bindRegistry struct {
	params  []*bindEntry
	columns []*bindEntry
}

// resolveParam maps a 1-based index (int or digit string) to the generated marker of
// the positional placeholder, and a name to itself without its colon.
func resolveParam(op string, param interface{}) (*bindEntry, error) {
	switch p := param.(type) {
	case string:
		name := strings.TrimPrefix(p, ":")
		if name == "" {
			return nil, usageErr(op, "empty parameter name")
		}
		if utils.IsDigits(name) {
			return resolveParam(op, cast.ToInt(name))
		}
		return &bindEntry{param: p, marker: name, pos: -1, name: name}, nil
	default:
		idx, err := cast.ToIntE(param)
		if err != nil {
			return nil, usageErr(op, "parameter must be a 1-based index or a name, got %T", param)
		}
		if idx < 1 {
			return nil, usageErr(op, "parameter index %d is not 1-based", idx)
		}
		return &bindEntry{param: cast.ToString(idx), marker: markName(idx - 1), pos: idx - 1}, nil
	}
}

// resolveColumn maps a 1-based column number or a column name.
func resolveColumn(column interface{}) (*bindEntry, error) {
	if name, ok := column.(string); ok && !utils.IsDigits(name) {
		if name == "" {
			return nil, usageErr("bind column", "empty column name")
		}
		return &bindEntry{param: name, pos: -1, name: name}, nil
	}
	idx, err := cast.ToIntE(column)
	if err != nil || idx < 1 {
		return nil, usageErr("bind column", "column must be a 1-based number or a name, got %v", column)
	}
	return &bindEntry{param: cast.ToString(idx), pos: idx - 1}, nil
}

func (r *bindRegistry) put(e *bindEntry) {
	for i, old := range r.params {
		if strings.EqualFold(old.marker, e.marker) {
			r.params[i] = e
			return
		}
	}
	r.params = append(r.params, e)
}

func (r *bindRegistry) putColumn(e *bindEntry) {
	r.columns = append(r.columns, e)
}

// vars snapshots marker values for trace lines.
func (r *bindRegistry) vars() map[string]interface{} {
	vars := make(map[string]interface{}, len(r.params))
	for _, e := range r.params {
		if v, err := e.current(); err == nil {
			vars[e.marker] = v
		}
	}
	return vars
}

// propagate copies a fetched row into every slot whose column exists; the rest are
// skipped.
func (r *bindRegistry) propagate(columns []string, values []interface{}) int {
	n := 0
	for _, group := range [][]*bindEntry{r.params, r.columns} {
		for _, e := range group {
			if e.slot == nil {
				continue
			}
			if i, ok := e.column(columns); ok {
				e.slot.Set(values[i])
				n++
			}
		}
	}
	return n
}

func coerceParam(kind ParamKind, v interface{}) (interface{}, error) {
	if v == nil || kind == ParamNull {
		return nil, nil
	}

	switch kind {
	case ParamInt:
		return cast.ToInt64E(v)
	case ParamBool:
		return cast.ToBoolE(v)
	case ParamStr:
		return cast.ToStringE(v)
	case ParamLOB:
		if b, ok := v.([]byte); ok {
			return b, nil
		}
		s, err := cast.ToStringE(v)
		return []byte(s), err
	case ParamCLOB:
		return cast.ToStringE(v)
	}
	return v, nil
}
