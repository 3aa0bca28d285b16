// Package render turns arbitrary decoded JSON values into readable terminal
// output. A shape classifier picks one of several strategies in a fixed
// priority order; grid-shaped output goes through a Unicode-width-aware
// column layout. Every call is a pure function of its input: the package
// performs no I/O of its own and never fails — unrecognized shapes degrade
// to serialized JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format selects the whole-program output mode.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat maps a flag value to a Format; anything but "json" is table.
func ParseFormat(s string) Format {
	if s == string(FormatJSON) {
		return FormatJSON
	}
	return FormatTable
}

// renderRule is one strategy: it returns ok=false when the value's shape is
// not its to handle, letting evaluation fall through to the next rule.
type renderRule func(v any, compact bool) (string, bool)

// renderRules is evaluated in order with short-circuit on first match.
// New shapes slot in without restructuring control flow.
var renderRules = []renderRule{
	renderScalarString,
	renderArray,
	renderComponentStatus,
	renderSystemStatus,
	renderListFields,
	renderPlainObject,
}

// Render formats a decoded JSON value for the terminal. It is total: every
// input produces output, with raw JSON as the final fallback.
func Render(v any, compact bool) string {
	for _, rule := range renderRules {
		if out, ok := rule(v, compact); ok {
			return out
		}
	}
	return rawJSON(v, compact)
}

// renderScalarString emits a top-level string verbatim: no quoting, no table.
func renderScalarString(v any, _ bool) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// renderArray handles top-level arrays: grid or line-per-element for
// non-empty ones, a literal marker for empty ones.
func renderArray(v any, compact bool) (string, bool) {
	arr, ok := asArray(v)
	if !ok {
		return "", false
	}
	if len(arr) == 0 {
		return "(empty)", true
	}
	return arrayTable(arr, compact)
}

func renderComponentStatus(v any, _ bool) (string, bool) {
	obj, ok := asObject(v)
	if !ok || obj.len() == 0 || !isComponentStatus(obj) {
		return "", false
	}
	return componentStatusText(obj), true
}

// renderSystemStatus handles the aggregate shape: a components object plus
// is_healthy. Each component renders through the shared strategies,
// blank-line separated, followed by the overall health line and, when
// present, a comma-joined errors line.
func renderSystemStatus(v any, compact bool) (string, bool) {
	obj, ok := asObject(v)
	if !ok || obj.len() == 0 || !obj.has("components") || !obj.has("is_healthy") {
		return "", false
	}

	var lines []string
	if compsVal, ok := obj.value("components"); ok {
		if comps, ok := asObject(compsVal); ok {
			for _, key := range comps.keys {
				if table, ok := componentTable(comps.values[key], compact); ok {
					lines = append(lines, table, "")
				}
			}
		}
	}

	healthy, _ := obj.value("is_healthy")
	lines = append(lines, fmt.Sprintf("[system] (%s)", healthWord(asBool(healthy))))

	if errsVal, ok := obj.value("errors"); ok {
		if errs, ok := asArray(errsVal); ok {
			var msgs []string
			for _, e := range errs {
				if s, ok := e.(string); ok {
					msgs = append(msgs, s)
				}
			}
			if len(msgs) > 0 {
				lines = append(lines, "Errors: "+strings.Join(msgs, ", "))
			}
		}
	}

	return strings.Join(lines, "\n"), true
}

func renderListFields(v any, compact bool) (string, bool) {
	obj, ok := asObject(v)
	if !ok || obj.len() == 0 {
		return "", false
	}
	return listFieldsTable(obj, compact)
}

// renderPlainObject emits a vertical key/value listing for objects with no
// expandable list fields: keys left-justified to the widest key, a two-space
// gap, then the formatted value under the usual truncation and uri rules.
func renderPlainObject(v any, _ bool) (string, bool) {
	obj, ok := asObject(v)
	if !ok || obj.len() == 0 {
		return "", false
	}
	dictLists, primLists := scanListFields(obj)
	if len(dictLists) > 0 || len(primLists) > 0 {
		return "", false
	}

	maxKeyWidth := 0
	for _, k := range obj.keys {
		if w := displayWidth(k); w > maxKeyWidth {
			maxKeyWidth = w
		}
	}
	if maxKeyWidth > maxColWidth {
		maxKeyWidth = maxColWidth
	}

	var b strings.Builder
	for _, k := range obj.keys {
		content, _ := truncateCell(formatValue(obj.values[k]), k == "uri", maxColWidth)
		b.WriteString(padCell(k, maxKeyWidth, false))
		b.WriteString(cellGap)
		b.WriteString(content)
		b.WriteByte('\n')
	}
	return b.String(), true
}

// successEnvelope is the compact JSON-mode wrapper.
type successEnvelope struct {
	OK     bool `json:"ok"`
	Result any  `json:"result"`
}

type errorEnvelope struct {
	OK    bool      `json:"ok"`
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes a command result to w in the selected output mode.
// JSON mode: compact emits a single-line {"ok":true,"result":...} envelope,
// non-compact emits the pretty-printed raw value. Table mode runs the
// adaptive renderer.
func Success(w io.Writer, result any, format Format, compact bool) {
	if format == FormatJSON {
		if compact {
			if b, err := json.Marshal(successEnvelope{OK: true, Result: result}); err == nil {
				fmt.Fprintln(w, string(b))
				return
			}
			// Unserializable result: fall back to best-effort raw output.
			fmt.Fprintln(w, rawJSON(result, true))
			return
		}
		fmt.Fprintln(w, rawJSON(result, false))
		return
	}

	out := Render(result, compact)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	io.WriteString(w, out)
}

// Error writes a command error to w. JSON+compact emits a single-line
// {"ok":false,"error":{...}} envelope; every other mode emits
// "ERROR[<code>]: <message>".
func Error(w io.Writer, code, message string, format Format, compact bool) {
	if format == FormatJSON && compact {
		if b, err := json.Marshal(errorEnvelope{Error: errorBody{Code: code, Message: message}}); err == nil {
			fmt.Fprintln(w, string(b))
			return
		}
	}
	fmt.Fprintf(w, "ERROR[%s]: %s\n", code, message)
}
