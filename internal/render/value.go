package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// object is a read-only view over a JSON object that preserves a stable key
// order: insertion order for ordered maps, sorted order for plain Go maps
// (YAML/TOML/CEL results), so rendering stays deterministic either way.
type object struct {
	keys   []string
	values map[string]any
}

func asObject(v any) (*object, bool) {
	switch m := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		o := &object{
			keys:   make([]string, 0, m.Len()),
			values: make(map[string]any, m.Len()),
		}
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			o.keys = append(o.keys, pair.Key)
			o.values[pair.Key] = pair.Value
		}
		return o, true
	case map[string]any:
		o := &object{
			keys:   make([]string, 0, len(m)),
			values: m,
		}
		for k := range m {
			o.keys = append(o.keys, k)
		}
		sort.Strings(o.keys)
		return o, true
	default:
		return nil, false
	}
}

func (o *object) len() int { return len(o.keys) }

func (o *object) value(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *object) has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func asArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

func isObjectValue(v any) bool {
	_, ok := asObject(v)
	return ok
}

// isPrimitiveValue reports whether v is a JSON scalar other than null:
// string, bool, or a number in any of the decoded representations.
func isPrimitiveValue(v any) bool {
	switch v.(type) {
	case string, bool, json.Number, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

// isNumericValue reports whether v renders as a number: an actual number, or
// a string that parses as a float.
func isNumericValue(v any) bool {
	switch t := v.(type) {
	case json.Number, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case string:
		_, err := strconv.ParseFloat(t, 64)
		return err == nil
	default:
		return false
	}
}

// formatValue turns a decoded JSON value into its cell text.
// null -> "null", bool -> "true"/"false", numbers -> canonical decimal text,
// strings verbatim, anything else -> compact serialized JSON.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	default:
		return rawJSON(v, true)
	}
}

// rawJSON serializes v, pretty-printed unless compact. Serialization is
// best-effort: values that cannot marshal degrade to fmt's representation
// rather than failing the render.
func rawJSON(v any, compact bool) string {
	var (
		b   []byte
		err error
	)
	if compact {
		b, err = json.Marshal(v)
	} else {
		b, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
