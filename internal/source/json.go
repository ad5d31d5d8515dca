package source

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/gridview/internal/record"
)

func decodeJSON(data []byte, path string) (*Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrNotArray)
	}

	root := gjson.ParseBytes(data)
	if path != "" {
		root = root.Get(path)
		if !root.Exists() {
			return nil, fmt.Errorf("%w: path %q not found", ErrNotArray, path)
		}
	}
	if !root.IsArray() {
		return nil, ErrNotArray
	}

	var (
		props   propertySet
		records []*record.Record
		bad     int
	)
	root.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			bad++
			return true
		}
		records = append(records, objectRecord(item, &props))
		return true
	})
	if bad > 0 && len(records) == 0 {
		return nil, ErrNotArray
	}
	return &Dataset{Records: records, Properties: props.order}, nil
}

func decodeJSONLines(data []byte) (*Dataset, error) {
	var (
		props   propertySet
		records []*record.Record
		n       int
		err     error
	)
	gjson.ForEachLine(string(data), func(item gjson.Result) bool {
		n++
		if !item.IsObject() {
			err = fmt.Errorf("%w: value %d is not an object", ErrNotArray, n)
			return false
		}
		records = append(records, objectRecord(item, &props))
		return true
	})
	if err != nil {
		return nil, err
	}
	return &Dataset{Records: records, Properties: props.order}, nil
}

func objectRecord(obj gjson.Result, props *propertySet) *record.Record {
	fields := make(map[string]any)
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		props.add(name)
		if v, ok := jsonValue(value); ok {
			fields[name] = v
		}
		return true
	})
	return record.New(fields)
}

// jsonValue converts a scalar; null is missing and nested values keep
// their raw JSON text.
func jsonValue(v gjson.Result) (any, bool) {
	switch v.Type {
	case gjson.Null:
		return nil, false
	case gjson.String:
		return v.Str, true
	case gjson.Number:
		return v.Num, true
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	default:
		return v.Raw, true
	}
}
