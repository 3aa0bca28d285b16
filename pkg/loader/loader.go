// Package loader parses structured input (JSON, NDJSON, YAML, TOML) into
// plain Go values suitable for rendering. JSON objects are decoded into
// insertion-ordered maps so that downstream output preserves the field order
// the producer chose.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadData loads structured data from a string, auto-detecting format.
// Supports:
// - Single JSON object/array/scalar
// - Newline-delimited JSON (NDJSON): one JSON document per line
// - YAML: single document or multi-document (separated by ---)
// - TOML
//
// All formats return a []any where each element is a parsed document.
// For single-document inputs, the slice contains one element.
func LoadData(input string) ([]any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	// Multi-document YAML first (most restrictive marker)
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return loadMultiDocYAML(input)
	}

	// Newline-delimited JSON: multiple lines, each a JSON document
	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(lines)
	}

	// TOML before JSON - TOML [section] headers look like JSON arrays
	// but are distinct (e.g. "[server]" vs "[1, 2, 3]")
	if isLikelyTOML(input) {
		return loadTOML(input)
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		v, err := DecodeJSONBytes([]byte(input))
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}

	// Fall back to single YAML document (also covers bare scalars)
	return loadYAML(input)
}

// LoadRoot parses input into a single root node. Multi-document inputs are
// returned as a slice.
func LoadRoot(input string) (any, error) {
	results, err := LoadData(input)
	if err != nil {
		return nil, err
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

// LoadFile reads a file and parses it into a single root node.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadRoot(string(data))
}

func loadNDJSON(lines []string) ([]any, error) {
	docs := make([]any, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := DecodeJSONBytes([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("invalid NDJSON on line %d: %w", i+1, err)
		}
		docs = append(docs, v)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("empty NDJSON input")
	}
	return docs, nil
}

func loadYAML(input string) ([]any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(input), &v); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return []any{v}, nil
}

func loadMultiDocYAML(input string) ([]any, error) {
	dec := yaml.NewDecoder(strings.NewReader(input))
	var docs []any
	for {
		var v any
		err := dec.Decode(&v)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
		docs = append(docs, v)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no YAML documents found")
	}
	return docs, nil
}

func loadTOML(input string) ([]any, error) {
	var m map[string]any
	if err := toml.Unmarshal([]byte(input), &m); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return []any{m}, nil
}

// isLikelyNDJSON reports whether every non-blank line looks like a standalone
// JSON document.
func isLikelyNDJSON(lines []string) bool {
	jsonLines := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "{") && !strings.HasPrefix(line, "[") {
			return false
		}
		if !strings.HasSuffix(line, "}") && !strings.HasSuffix(line, "]") {
			return false
		}
		jsonLines++
	}
	return jsonLines > 1
}

// isLikelyTOML distinguishes TOML section headers and key = value pairs from
// JSON/YAML. Only the first non-comment line is inspected.
func isLikelyTOML(input string) bool {
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// [section] but not [1, 2] or ["a"]
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inner := strings.TrimSpace(line[1 : len(line)-1])
			if inner != "" && !strings.ContainsAny(inner, ",\"'{}") {
				return true
			}
			return false
		}
		// key = value at the top level is TOML, not JSON
		if idx := strings.Index(line, "="); idx > 0 && !strings.HasPrefix(line, "{") {
			key := strings.TrimSpace(line[:idx])
			return key != "" && !strings.ContainsAny(key, ":{}")
		}
		return false
	}
	return false
}
