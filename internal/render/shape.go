package render

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// listField is an object field whose value is a non-empty array of uniformly
// typed elements: all objects, or all primitives. Mixed-content arrays and
// empty arrays never qualify.
type listField struct {
	key   string
	items []any
}

// scanListFields partitions an object's scannable fields into lists of
// objects and lists of primitives, in key order.
func scanListFields(obj *object) (dictLists, primLists []listField) {
	for _, key := range obj.keys {
		arr, ok := asArray(obj.values[key])
		if !ok || len(arr) == 0 {
			continue
		}
		allObjects := true
		allPrimitives := true
		for _, item := range arr {
			if !isObjectValue(item) {
				allObjects = false
			}
			if !isPrimitiveValue(item) {
				allPrimitives = false
			}
		}
		switch {
		case allObjects:
			dictLists = append(dictLists, listField{key: key, items: arr})
		case allPrimitives:
			primLists = append(primLists, listField{key: key, items: arr})
		}
	}
	return dictLists, primLists
}

// singularize derives a column name from a plural field key by stripping a
// trailing "es", then "s". Lossy for irregular plurals ("children" stays
// "children"); kept to match the server's established CLI conventions.
func singularize(key string) string {
	if strings.HasSuffix(key, "es") {
		return strings.TrimSuffix(key, "es")
	}
	if strings.HasSuffix(key, "s") {
		return strings.TrimSuffix(key, "s")
	}
	return key
}

func healthWord(healthy bool) string {
	if healthy {
		return "healthy"
	}
	return "unhealthy"
}

// isComponentStatus reports whether obj matches the component status shape:
// the name, is_healthy, and status keys are all present.
func isComponentStatus(obj *object) bool {
	return obj.has("name") && obj.has("is_healthy") && obj.has("status")
}

// componentStatusText renders the fixed two-line component summary.
func componentStatusText(obj *object) string {
	name, _ := obj.value("name")
	healthy, _ := obj.value("is_healthy")
	status, _ := obj.value("status")
	return fmt.Sprintf("[%s] (%s)\n%s", asString(name), healthWord(asBool(healthy)), asString(status))
}

// listFieldsTable applies the list-field strategies to an object:
// a single list of primitives becomes one singular-named column, a single
// list of objects renders directly, and any remaining object lists are
// merged into one row set with an injected "type" column naming the
// (singularized) source field.
func listFieldsTable(obj *object, compact bool) (string, bool) {
	dictLists, primLists := scanListFields(obj)

	if len(dictLists) == 0 && len(primLists) == 1 {
		field := primLists[0]
		col := singularize(field.key)
		rows := make([]any, 0, len(field.items))
		for _, item := range field.items {
			row := orderedmap.New[string, any]()
			row.Set(col, item)
			rows = append(rows, row)
		}
		return arrayTable(rows, compact)
	}

	if len(dictLists) == 1 && len(primLists) == 0 {
		return arrayTable(dictLists[0].items, compact)
	}

	if len(dictLists) > 0 {
		merged := make([]any, 0)
		for _, field := range dictLists {
			typeName := singularize(field.key)
			for _, item := range field.items {
				src, ok := asObject(item)
				if !ok {
					continue
				}
				row := orderedmap.New[string, any]()
				for _, k := range src.keys {
					row.Set(k, src.values[k])
				}
				row.Set("type", typeName)
				merged = append(merged, row)
			}
		}
		if len(merged) > 0 {
			return arrayTable(merged, compact)
		}
	}

	return "", false
}

// componentTable renders one value of an aggregate status' components map,
// reusing the array, component-status, and list-field strategies. Shapes
// none of those cover are skipped by the caller.
func componentTable(v any, compact bool) (string, bool) {
	if arr, ok := asArray(v); ok {
		if len(arr) > 0 && allObjects(arr) {
			return arrayTable(arr, compact)
		}
		return "", false
	}

	obj, ok := asObject(v)
	if !ok {
		return "", false
	}
	if isComponentStatus(obj) {
		return componentStatusText(obj), true
	}
	return listFieldsTable(obj, compact)
}

func allObjects(items []any) bool {
	for _, item := range items {
		if !isObjectValue(item) {
			return false
		}
	}
	return true
}
