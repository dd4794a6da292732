package pdooci

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/jinzhu/now"
	"github.com/spf13/cast"
)

var (
	callablesMu sync.RWMutex
	classes     = map[string]reflect.Type{}
	funcs       = map[string]reflect.Value{}

	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	timeType    = reflect.TypeOf(time.Time{})
)

// RegisterClass makes the struct type of prototype available to Class fetch mode under
// name.
func RegisterClass(name string, prototype interface{}) error {
	t, err := structType(prototype)
	if err != nil {
		return err
	}

	callablesMu.Lock()
	defer callablesMu.Unlock()
	classes[strings.ToLower(name)] = t
	return nil
}

// RegisterFunc makes fn available to Func fetch mode under name.
func RegisterFunc(name string, fn interface{}) error {
	v, err := funcValue(fn)
	if err != nil {
		return err
	}

	callablesMu.Lock()
	defer callablesMu.Unlock()
	funcs[strings.ToLower(name)] = v
	return nil
}

func structType(prototype interface{}) (reflect.Type, error) {
	t := reflect.TypeOf(prototype)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, usageErr("class", "%T is not a struct", prototype)
	}
	return t, nil
}

func funcValue(fn interface{}) (reflect.Value, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return reflect.Value{}, usageErr("func", "%T is not a function", fn)
	}
	if v.Type().NumIn() < 1 {
		return reflect.Value{}, usageErr("func", "%s accepts no parameters", v.Type())
	}
	return v, nil
}

func lookupClass(class interface{}) (reflect.Type, error) {
	name, ok := class.(string)
	if !ok {
		return structType(class)
	}

	callablesMu.RLock()
	defer callablesMu.RUnlock()
	if t, ok := classes[strings.ToLower(name)]; ok {
		return t, nil
	}
	return nil, usageErr("class", "class %q is not registered", name)
}

func lookupFunc(fn interface{}) (reflect.Value, error) {
	name, ok := fn.(string)
	if !ok {
		return funcValue(fn)
	}

	callablesMu.RLock()
	defer callablesMu.RUnlock()
	if v, ok := funcs[strings.ToLower(name)]; ok {
		return v, nil
	}
	return reflect.Value{}, usageErr("func", "function %q does not exist", name)
}

// fieldIndex maps lower-cased field names, or `pdooci` tags, to field indexes.
func fieldIndex(t reflect.Type) map[string][]int {
	idx := map[string][]int{}
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("pdooci"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		idx[strings.ToLower(name)] = f.Index
	}
	return idx
}

// assign stores v into dst converting as needed. nil leaves the zero value.
func assign(dst reflect.Value, v interface{}) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	if dst.CanAddr() && dst.Addr().Type().Implements(scannerType) {
		return dst.Addr().Interface().(sql.Scanner).Scan(v)
	}

	if dst.Kind() == reflect.Ptr {
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), v); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}

	if dst.Type() == timeType {
		return assignTime(dst, v)
	}

	src := reflect.ValueOf(v)
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}

	switch dst.Kind() {
	case reflect.String:
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		dst.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := cast.ToInt64E(v)
		if err != nil {
			return err
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := cast.ToUint64E(v)
		if err != nil {
			return err
		}
		dst.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	case reflect.Bool:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	default:
		if !src.Type().ConvertibleTo(dst.Type()) {
			return fmt.Errorf("cannot assign %T to %s", v, dst.Type())
		}
		dst.Set(src.Convert(dst.Type()))
	}
	return nil
}

func assignTime(dst reflect.Value, v interface{}) error {
	var s string
	switch t := v.(type) {
	case time.Time:
		dst.Set(reflect.ValueOf(t))
		return nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		tm, err := cast.ToTimeE(v)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(tm))
		return nil
	}

	tm, err := now.Parse(s)
	if err != nil {
		return err
	}
	dst.Set(reflect.ValueOf(tm))
	return nil
}

// callFunc invokes fn with values as positional arguments. Missing arguments are zero
// values and surplus values are dropped unless fn is variadic.
func callFunc(fn reflect.Value, values []interface{}) (interface{}, error) {
	t := fn.Type()
	n := t.NumIn()
	if t.IsVariadic() && len(values) >= n-1 {
		n = len(values)
	}

	args := make([]reflect.Value, n)
	for i := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= t.NumIn()-1 {
			pt = t.In(t.NumIn() - 1).Elem()
		} else {
			pt = t.In(i)
		}

		arg := reflect.New(pt).Elem()
		if i < len(values) {
			if err := assign(arg, values[i]); err != nil {
				return nil, usageErr("func", "argument %d: %v", i, err)
			}
		}
		args[i] = arg
	}

	out := fn.Call(args)
	if len(out) == 0 {
		return nil, nil
	}
	if last := out[len(out)-1]; last.Type() == reflect.TypeOf((*error)(nil)).Elem() {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		if len(out) == 1 {
			return nil, nil
		}
	}
	return out[0].Interface(), nil
}
