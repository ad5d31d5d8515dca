// Package record provides the opaque row type shared by every table component.
//
// A Record maps property names to values. The table never interprets a value
// beyond two questions: what is its string form, and does it parse as a
// number. Records are owned by the caller; views and selections hold
// *Record pointers and never copy contents, so pointer equality is identity.
package record

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Record is a single row of tabular data.
type Record struct {
	fields map[string]any
}

// New creates a record over the given fields.
// The map is referenced, not copied.
func New(fields map[string]any) *Record {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Record{fields: fields}
}

// FromStrings creates a record from parallel name/value slices.
// Extra values beyond len(names) are ignored.
func FromStrings(names, values []string) *Record {
	fields := make(map[string]any, len(names))
	for i, name := range names {
		if i < len(values) {
			fields[name] = values[i]
		}
	}
	return &Record{fields: fields}
}

// Get returns the value for a property and whether it is present.
func (r *Record) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.fields[name]
	return v, ok
}

// Value returns the value for a property, or nil when absent.
func (r *Record) Value(name string) any {
	v, _ := r.Get(name)
	return v
}

// Has returns true if the property is present with a non-nil value.
func (r *Record) Has(name string) bool {
	v, ok := r.Get(name)
	return ok && v != nil
}

// Text returns the string form of a property value.
// Missing values produce an empty string.
func (r *Record) Text(name string) string {
	return String(r.Value(name))
}

// Len returns the number of properties on the record.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// String returns the string representation of a value.
// nil renders as the empty string; floats use the shortest exact form.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// Number reports whether v parses as a number and returns it.
// NaN is never considered a number. Strings are trimmed before parsing;
// the empty string is not numeric.
func Number(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// IsFalsy reports whether v counts as "no value" for bucketing:
// nil, empty string, false, zero and NaN.
func IsFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0 || math.IsNaN(x)
	case float32:
		return x == 0 || math.IsNaN(float64(x))
	case int:
		return x == 0
	case int64:
		return x == 0
	case int32:
		return x == 0
	case uint:
		return x == 0
	case uint64:
		return x == 0
	case uint32:
		return x == 0
	}
	return false
}

// Identical reports whether two values are the same value.
// Non-comparable values (maps, slices) are compared by string form.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if isComparable(a) && isComparable(b) {
		return a == b
	}
	return String(a) == String(b)
}

// NativeLess orders two non-numeric values by their native ordering:
// strings ordinally, booleans false before true, and anything else by
// string form.
func NativeLess(a, b any) bool {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return x < y
		}
	case bool:
		if y, ok := b.(bool); ok {
			return !x && y
		}
	}
	return String(a) < String(b)
}

func isComparable(v any) bool {
	return reflect.TypeOf(v).Comparable()
}
