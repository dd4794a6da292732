package pdooci

import (
	"fmt"
	"reflect"
)

// Style is the shape of fetched rows.
type Style int

const (
	StyleBoth Style = iota
	StyleAssoc
	StyleNum
	StyleObj
	StyleBound
	StyleColumn
	StyleClass
	StyleFunc
	StyleColumnGroup
)

var styleNames = [...]string{
	StyleBoth:        "both",
	StyleAssoc:       "assoc",
	StyleNum:         "num",
	StyleObj:         "obj",
	StyleBound:       "bound",
	StyleColumn:      "column",
	StyleClass:       "class",
	StyleFunc:        "func",
	StyleColumnGroup: "column|group",
}

func (s Style) String() string {
	if s >= 0 && int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// FetchMode selects a Style plus the argument some styles carry.
type FetchMode struct {
	Style Style
	// Column is the 0-based column of StyleColumn
	Column int
	// Class is a registered class name or a prototype struct for StyleClass
	Class interface{}
	// Func is a registered function name or a func value for StyleFunc
	Func interface{}
}

var (
	Both        = FetchMode{Style: StyleBoth}
	Assoc       = FetchMode{Style: StyleAssoc}
	Num         = FetchMode{Style: StyleNum}
	Obj         = FetchMode{Style: StyleObj}
	Bound       = FetchMode{Style: StyleBound}
	ColumnGroup = FetchMode{Style: StyleColumnGroup}
)

// Column fetches the single column idx of every row.
func Column(idx int) FetchMode {
	return FetchMode{Style: StyleColumn, Column: idx}
}

// Class fills a new instance of class per row. class is a name passed to RegisterClass
// or a struct value or pointer.
func Class(class interface{}) FetchMode {
	return FetchMode{Style: StyleClass, Class: class}
}

// Func calls fn with the values of each row. fn is a name passed to RegisterFunc or a
// func value.
func Func(fn interface{}) FetchMode {
	return FetchMode{Style: StyleFunc, Func: fn}
}

func (m FetchMode) String() string {
	switch m.Style {
	case StyleColumn:
		return fmt.Sprintf("column(%d)", m.Column)
	case StyleClass:
		if name, ok := m.Class.(string); ok {
			return "class(" + name + ")"
		}
		return fmt.Sprintf("class(%v)", reflect.TypeOf(m.Class))
	case StyleFunc:
		if name, ok := m.Func.(string); ok {
			return "func(" + name + ")"
		}
		return fmt.Sprintf("func(%v)", reflect.TypeOf(m.Func))
	}
	return m.Style.String()
}

// validate resolves the argument of Class and Func modes so a bad mode fails when it is
// set rather than on the first row.
func (m FetchMode) validate() error {
	switch m.Style {
	case StyleBoth, StyleAssoc, StyleNum, StyleObj, StyleBound, StyleColumnGroup:
		return nil
	case StyleColumn:
		if m.Column < 0 {
			return usageErr("fetch mode", "negative column %d", m.Column)
		}
		return nil
	case StyleClass:
		_, err := lookupClass(m.Class)
		return err
	case StyleFunc:
		_, err := lookupFunc(m.Func)
		return err
	default:
		return usageErr("fetch mode", "unknown style %v", m.Style)
	}
}
