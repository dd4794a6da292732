package utils

import (
	"database/sql/driver"
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"time"
)

var sourceRoot string

func init() {
	_, file, _, _ := runtime.Caller(0)
	sourceRoot = sourceDir(file)
}

// sourceDir returns the module root for a file living in <root>/utils.
func sourceDir(file string) string {
	dir := filepath.Dir(filepath.Dir(file))
	return filepath.ToSlash(dir) + "/"
}

// FileWithLineNum returns file:line of the first caller outside this module (test files
// count as outside).
func FileWithLineNum() string {
	frame := CallerFrame()
	if frame.File == "" {
		return ""
	}
	return frame.File + ":" + strconv.FormatInt(int64(frame.Line), 10)
}

// CallerFrame is FileWithLineNum returning the whole frame.
func CallerFrame() runtime.Frame {
	pcs := [13]uintptr{}
	// skip runtime.Callers, CallerFrame and its caller
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != "" && (!strings.HasPrefix(frame.File, sourceRoot) || strings.HasSuffix(frame.File, "_test.go")) {
			return frame
		}
		if !more {
			return runtime.Frame{}
		}
	}
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ToStringKey renders values as a single comparable key. Equal native values (an int64
// 1 and a string "1" included) produce the same key.
func ToStringKey(values ...interface{}) string {
	results := make([]string, len(values))

	for idx, value := range values {
		if valuer, ok := value.(driver.Valuer); ok {
			value, _ = valuer.Value()
		}

		switch v := value.(type) {
		case nil:
			results[idx] = ""
		case string:
			results[idx] = v
		case []byte:
			results[idx] = string(v)
		case int64:
			results[idx] = strconv.FormatInt(v, 10)
		case uint:
			results[idx] = strconv.FormatUint(uint64(v), 10)
		case float64:
			results[idx] = strconv.FormatFloat(v, 'f', -1, 64)
		case time.Time:
			results[idx] = v.Format(time.RFC3339Nano)
		default:
			results[idx] = fmt.Sprint(reflect.Indirect(reflect.ValueOf(v)).Interface())
		}
	}

	return strings.Join(results, "_")
}
