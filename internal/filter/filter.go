// Package filter evaluates CEL expressions against API responses so users
// can reshape a result before it is rendered. The response is bound to the
// variable "_", e.g. `_.entries.filter(e, e.size > 0)`.
package filter

import (
	"encoding/json"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the common extension libraries
// enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Evaluate compiles expr and evaluates it with data bound to "_".
// The result is converted back to plain Go values.
func (e *Evaluator) Evaluate(expr string, data any) (any, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("filter compilation error: %w", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("filter program error: %w", err)
	}

	result, _, err := prg.Eval(map[string]any{
		"_": Plainify(data),
	})
	if err != nil {
		return nil, fmt.Errorf("filter eval error: %w", err)
	}

	return toGo(result), nil
}

// Apply is the one-shot convenience used by the CLI.
func Apply(expr string, data any) (any, error) {
	ev, err := NewEvaluator()
	if err != nil {
		return nil, err
	}
	return ev.Evaluate(expr, data)
}

// Plainify converts decoded JSON values into the plain Go shapes CEL
// understands: ordered maps flatten to map[string]any and json.Number
// becomes int64 when integral, float64 otherwise.
func Plainify(v any) any {
	switch t := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		m := make(map[string]any, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = Plainify(pair.Value)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = Plainify(val)
		}
		return m
	case []any:
		arr := make([]any, len(t))
		for i, item := range t {
			arr[i] = Plainify(item)
		}
		return arr
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

// toGo converts CEL values to native Go types recursively.
func toGo(val ref.Val) any {
	if val == nil {
		return nil
	}

	inner := val.Value()
	switch t := inner.(type) {
	case []ref.Val:
		result := make([]any, len(t))
		for i, elem := range t {
			result[i] = toGo(elem)
		}
		return result
	case []any:
		result := make([]any, len(t))
		for i, elem := range t {
			if rv, ok := elem.(ref.Val); ok {
				result[i] = toGo(rv)
			} else {
				result[i] = elem
			}
		}
		return result
	case map[ref.Val]ref.Val:
		result := make(map[string]any, len(t))
		for k, v := range t {
			result[fmt.Sprintf("%v", k.Value())] = toGo(v)
		}
		return result
	case map[string]any:
		result := make(map[string]any, len(t))
		for k, v := range t {
			if rv, ok := v.(ref.Val); ok {
				result[k] = toGo(rv)
			} else {
				result[k] = v
			}
		}
		return result
	default:
		return inner
	}
}
