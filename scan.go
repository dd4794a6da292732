package pdooci

import (
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// foldKeys applies the key-case policy to column names.
func foldKeys(c Case, names []string) []string {
	var caser cases.Caser
	switch c {
	case CaseUpper:
		caser = cases.Upper(language.Und)
	case CaseLower:
		caser = cases.Lower(language.Und)
	default:
		return names
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = caser.String(name)
	}
	return keys
}

func columnNames(columns []ColumnMeta) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}

// shape turns one native row into the value Fetch returns for mode. Every Style has a
// branch; an unknown Style is a UsageError.
func (s *Stmt) shape(mode FetchMode, values []interface{}) (interface{}, error) {
	switch mode.Style {
	case StyleBoth, StyleAssoc, StyleNum:
		return newRow(mode.Style, s.keys(), values), nil
	case StyleObj:
		obj := make(Object, len(values))
		for i, name := range s.names {
			obj[name] = values[i]
		}
		return obj, nil
	case StyleBound:
		s.binds.propagate(s.names, values)
		return true, nil
	case StyleColumn:
		if mode.Column >= len(values) {
			return nil, usageErr("fetch", "column %d out of range, %d columns", mode.Column, len(values))
		}
		return values[mode.Column], nil
	case StyleClass:
		t, err := lookupClass(mode.Class)
		if err != nil {
			return nil, err
		}
		return s.instance(t, values), nil
	case StyleFunc:
		fn, err := lookupFunc(mode.Func)
		if err != nil {
			return nil, err
		}
		return callFunc(fn, values)
	case StyleColumnGroup:
		return nil, usageErr("fetch", "%v groups rows and is only valid for FetchAll", mode)
	default:
		return nil, usageErr("fetch", "unknown fetch style %v", mode.Style)
	}
}

// instance fills a new *t from values. Columns without a matching field, and values that
// do not convert, are skipped with a warning.
func (s *Stmt) instance(t reflect.Type, values []interface{}) interface{} {
	p := reflect.New(t)
	fields := fieldIndex(t)
	for i, name := range s.names {
		idx, ok := fields[strings.ToLower(name)]
		if !ok {
			s.conn.logger.Warn(s.ctx, "column %s has no field in %s", name, t)
			continue
		}
		field, ok := settableField(p.Elem(), idx)
		if !ok {
			s.conn.logger.Warn(s.ctx, "column %s: field of %s is not settable", name, t)
			continue
		}
		if err := assign(field, values[i]); err != nil {
			s.conn.logger.Warn(s.ctx, "column %s into %s: %v", name, t, err)
		}
	}
	return p.Interface()
}

// settableField walks idx from v, allocating nil embedded struct pointers on the way.
// It reports false when an embedded pointer cannot be set.
func settableField(v reflect.Value, idx []int) (reflect.Value, bool) {
	for i, x := range idx {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, v.CanSet()
}

// keys are the column names after the connection's current key-case policy.
func (s *Stmt) keys() []string {
	c := s.conn.keyCase
	if s.folded == nil || s.foldedCase != c {
		s.folded, s.foldedCase = foldKeys(c, s.names), c
	}
	return s.folded
}

// shapeAll shapes every remaining row. ColumnGroup appends column 1 under column 0 in
// native fetch order.
func (s *Stmt) shapeAll(mode FetchMode, rows [][]interface{}) (*Result, error) {
	res := &Result{Mode: mode, Rows: make([]interface{}, 0, len(rows))}

	if mode.Style == StyleColumnGroup {
		if len(s.names) < 2 {
			return nil, usageErr("fetch all", "%v needs two columns, got %d", mode, len(s.names))
		}
		res.Groups = newGroups()
		for _, values := range rows {
			res.Groups.add(values[0], values[1])
		}
		return res, nil
	}

	for _, values := range rows {
		v, err := s.shape(mode, values)
		if err != nil {
			return nil, err
		}
		res.Rows = append(res.Rows, v)
	}
	return res, nil
}
