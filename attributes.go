package pdooci

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Attribute names a connection setting for SetAttribute/GetAttribute.
type Attribute int

const (
	AttrAutocommit Attribute = iota + 1
	AttrCase
	AttrDriverName
	AttrPersistent
)

func (a Attribute) String() string {
	switch a {
	case AttrAutocommit:
		return "AUTOCOMMIT"
	case AttrCase:
		return "CASE"
	case AttrDriverName:
		return "DRIVER_NAME"
	case AttrPersistent:
		return "PERSISTENT"
	}
	return fmt.Sprintf("Attribute(%d)", int(a))
}

// Case is the key-case policy applied to column-name keys.
type Case int

const (
	CaseNatural Case = iota
	CaseUpper
	CaseLower
)

func (c Case) String() string {
	switch c {
	case CaseNatural:
		return "natural"
	case CaseUpper:
		return "upper"
	case CaseLower:
		return "lower"
	}
	return fmt.Sprintf("Case(%d)", int(c))
}

// ParseCase accepts a Case, its name in any case, or its integer value.
func ParseCase(v interface{}) (Case, error) {
	switch c := v.(type) {
	case Case:
		if c >= CaseNatural && c <= CaseLower {
			return c, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(c)) {
		case "natural":
			return CaseNatural, nil
		case "upper":
			return CaseUpper, nil
		case "lower":
			return CaseLower, nil
		}
	default:
		if i, err := cast.ToIntE(v); err == nil && i >= int(CaseNatural) && i <= int(CaseLower) {
			return Case(i), nil
		}
	}
	return 0, usageErr("case", "unknown key case %v", v)
}

// autocommitValue is true for boolean true and for "on"/"true" in any case.
func autocommitValue(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		return s == "on" || s == "true"
	}
	return false
}
