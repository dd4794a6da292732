package logger

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
	"unicode"
)

func isPrintable(s []byte) bool {
	for _, r := range s {
		if !unicode.IsPrint(rune(r)) {
			return false
		}
	}
	return true
}

func isNameByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// FormatVar renders a bound value the way it would read as a SQL literal.
func FormatVar(v interface{}, escaper string) string {
	if valuer, ok := v.(driver.Valuer); ok {
		v, _ = valuer.Value()
	}

	switch v := v.(type) {
	case bool:
		return fmt.Sprint(v)
	case time.Time:
		return escaper + v.Format("2006-01-02 15:04:05") + escaper
	case *time.Time:
		if v == nil {
			return "NULL"
		}
		return escaper + v.Format("2006-01-02 15:04:05") + escaper
	case []byte:
		if isPrintable(v) {
			return escaper + strings.ReplaceAll(string(v), escaper, escaper+escaper) + escaper
		}
		return escaper + "<binary>" + escaper
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float64, float32:
		return fmt.Sprintf("%.6f", v)
	case string:
		return escaper + strings.ReplaceAll(v, escaper, escaper+escaper) + escaper
	case nil:
		return "NULL"
	default:
		return escaper + strings.ReplaceAll(fmt.Sprint(v), escaper, escaper+escaper) + escaper
	}
}

// ExplainSQL substitutes :name markers with their values in vars. Markers inside
// quoted literals and names missing from vars are left untouched.
func ExplainSQL(sql string, escaper string, vars map[string]interface{}) string {
	if len(vars) == 0 {
		return sql
	}

	var (
		b     strings.Builder
		quote byte
	)
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ':' && i+1 < len(sql) && isNameByte(sql[i+1]):
			j := i + 1
			for j < len(sql) && isNameByte(sql[j]) {
				j++
			}
			if v, ok := vars[sql[i+1:j]]; ok {
				b.WriteString(FormatVar(v, escaper))
				i = j - 1
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
