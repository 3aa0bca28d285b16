package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxColWidth is the hard cap, in terminal columns, on any cell or column
// width. Cells wider than this are truncated with a "..." suffix; the uri
// column is exempt.
const maxColWidth = 256

const cellGap = "  "

// displayWidth measures s in terminal columns, East-Asian-width aware.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// columnInfo is the per-column layout decision for one render call.
type columnInfo struct {
	width   int  // display width, always >= header width, capped at maxColWidth
	numeric bool // every present value is a number or float-parseable string
	uri     bool // column named "uri": never truncated, unpadded when over-width
}

// arrayTable renders a non-empty array. Arrays of objects become an aligned
// grid over the union of keys; anything else renders one formatted element
// per line. Returns false when there is nothing to lay out (no keys, or all
// columns dropped in compact mode).
func arrayTable(items []any, compact bool) (string, bool) {
	if len(items) == 0 {
		return "", false
	}

	if !allObjects(items) {
		var b strings.Builder
		for _, item := range items {
			content, _ := truncateCell(formatValue(item), false, maxColWidth)
			b.WriteString(content)
			b.WriteByte('\n')
		}
		return b.String(), true
	}

	keys := unionKeys(items)
	if len(keys) == 0 {
		return "", false
	}
	if compact {
		keys = dropEmptyColumns(keys, items)
		if len(keys) == 0 {
			return "", false
		}
	}

	// First pass: column widths and numeric classification.
	columns := make([]columnInfo, len(keys))
	for i, key := range keys {
		info := columnInfo{
			width:   runewidth.StringWidth(key),
			numeric: true,
			uri:     key == "uri",
		}
		for _, item := range items {
			obj, _ := asObject(item)
			val, ok := obj.value(key)
			if !ok {
				continue
			}
			w := runewidth.StringWidth(formatValue(val))
			if w > maxColWidth {
				w = maxColWidth
			}
			if w > info.width {
				info.width = w
			}
			if info.numeric && !isNumericValue(val) {
				info.numeric = false
			}
		}
		columns[i] = info
	}

	// Second pass: header and rows.
	var b strings.Builder
	headerCells := make([]string, len(keys))
	for i, key := range keys {
		headerCells[i] = padCell(key, columns[i].width, false)
	}
	b.WriteString(strings.Join(headerCells, cellGap))
	b.WriteByte('\n')

	rowCells := make([]string, len(keys))
	for _, item := range items {
		obj, _ := asObject(item)
		for i, key := range keys {
			info := columns[i]
			value := ""
			if v, ok := obj.value(key); ok {
				value = formatValue(v)
			}
			content, skipPadding := truncateCell(value, info.uri, info.width)
			if skipPadding {
				// Over-width uri, emitted as-is so the path stays intact.
				rowCells[i] = content
			} else {
				rowCells[i] = padCell(content, info.width, info.numeric)
			}
		}
		b.WriteString(strings.Join(rowCells, cellGap))
		b.WriteByte('\n')
	}

	return b.String(), true
}

// unionKeys collects the keys present in any element, in first-seen order.
func unionKeys(items []any) []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, item := range items {
		obj, ok := asObject(item)
		if !ok {
			continue
		}
		for _, k := range obj.keys {
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// dropEmptyColumns removes columns where every row's value is null, an empty
// string, or an empty array.
func dropEmptyColumns(keys []string, items []any) []string {
	kept := make([]string, 0, len(keys))
	for _, key := range keys {
		for _, item := range items {
			obj, _ := asObject(item)
			val, ok := obj.value(key)
			if !ok || val == nil {
				continue
			}
			if s, isStr := val.(string); isStr && s == "" {
				continue
			}
			if arr, isArr := asArray(val); isArr && len(arr) == 0 {
				continue
			}
			kept = append(kept, key)
			break
		}
	}
	return kept
}

// truncateCell enforces the width cap on a formatted cell. The returned bool
// asks the caller to skip padding: set only for uri values wider than their
// column, which are emitted untouched.
func truncateCell(s string, isURI bool, colWidth int) (string, bool) {
	displayWidth := runewidth.StringWidth(s)

	if isURI {
		return s, displayWidth > colWidth
	}

	if displayWidth > maxColWidth {
		var b strings.Builder
		current := 0
		for _, r := range s {
			rw := runewidth.RuneWidth(r)
			if current+rw > maxColWidth-3 {
				break
			}
			current += rw
			b.WriteRune(r)
		}
		return b.String() + "...", false
	}

	return s, false
}

// padCell pads content to width using display width: right-justified for
// numeric columns, left-justified otherwise. Content at or over width is
// returned unchanged.
func padCell(content string, width int, alignRight bool) string {
	displayWidth := runewidth.StringWidth(content)
	if displayWidth >= width {
		return content
	}
	padding := strings.Repeat(" ", width-displayWidth)
	if alignRight {
		return padding + content
	}
	return content + padding
}
