package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingularize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"entries", "entri"},
		{"uris", "uri"},
		{"files", "fil"},
		{"dirs", "dir"},
		{"results", "result"},
		{"memories", "memori"},
		{"data", "data"},
		// Irregular plurals pass through untouched.
		{"children", "children"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, singularize(tc.in), "singularize(%q)", tc.in)
	}
}

func TestScanListFields(t *testing.T) {
	t.Run("partitions by element kind", func(t *testing.T) {
		obj, ok := asObject(omap(
			"dicts", []any{omap("a", num("1"))},
			"prims", []any{"x", num("2"), true},
			"empty", []any{},
			"scalar", "not a list",
		))
		require.True(t, ok)

		dictLists, primLists := scanListFields(obj)
		require.Len(t, dictLists, 1)
		assert.Equal(t, "dicts", dictLists[0].key)
		require.Len(t, primLists, 1)
		assert.Equal(t, "prims", primLists[0].key)
	})

	t.Run("mixed arrays are ignored", func(t *testing.T) {
		obj, ok := asObject(omap("mixed", []any{omap("a", num("1")), "str"}))
		require.True(t, ok)

		dictLists, primLists := scanListFields(obj)
		assert.Empty(t, dictLists)
		assert.Empty(t, primLists)
	})

	t.Run("null elements disqualify both kinds", func(t *testing.T) {
		obj, ok := asObject(omap("vals", []any{"a", nil}))
		require.True(t, ok)

		dictLists, primLists := scanListFields(obj)
		assert.Empty(t, dictLists)
		assert.Empty(t, primLists)
	})
}

func TestListFieldsTableMerge(t *testing.T) {
	t.Run("type column names the source field", func(t *testing.T) {
		obj, ok := asObject(omap(
			"files", []any{omap("uri", "viking://f")},
			"dirs", []any{omap("uri", "viking://d")},
		))
		require.True(t, ok)

		got, rendered := listFieldsTable(obj, true)
		require.True(t, rendered)
		assert.Contains(t, got, "type")
		assert.Contains(t, got, "file")
		assert.Contains(t, got, "dir")
	})

	t.Run("existing type key is replaced in place", func(t *testing.T) {
		obj, ok := asObject(omap(
			"files", []any{omap("type", "old", "uri", "viking://f")},
			"dirs", []any{omap("type", "old", "uri", "viking://d")},
		))
		require.True(t, ok)

		got, rendered := listFieldsTable(obj, true)
		require.True(t, rendered)
		assert.NotContains(t, got, "old")
		// Replacing in place keeps type as the first column.
		assert.True(t, strings.HasPrefix(got, "type  uri"))
	})

	t.Run("source rows are not mutated", func(t *testing.T) {
		row := omap("uri", "viking://f")
		obj, ok := asObject(omap(
			"files", []any{row},
			"dirs", []any{omap("uri", "viking://d")},
		))
		require.True(t, ok)

		_, rendered := listFieldsTable(obj, true)
		require.True(t, rendered)
		_, present := row.Get("type")
		assert.False(t, present)
	})

	t.Run("prim lists alongside dict lists still merge the dicts", func(t *testing.T) {
		obj, ok := asObject(omap(
			"files", []any{omap("uri", "viking://f")},
			"tags", []any{"a", "b"},
		))
		require.True(t, ok)

		got, rendered := listFieldsTable(obj, true)
		require.True(t, rendered)
		assert.Contains(t, got, "type")
		assert.NotContains(t, got, "tag")
	})

	t.Run("no list fields yields no table", func(t *testing.T) {
		obj, ok := asObject(omap("a", num("1")))
		require.True(t, ok)

		_, rendered := listFieldsTable(obj, true)
		assert.False(t, rendered)
	})
}

func TestComponentTable(t *testing.T) {
	t.Run("array of objects", func(t *testing.T) {
		got, ok := componentTable([]any{omap("a", num("1"))}, true)
		require.True(t, ok)
		assert.Equal(t, "a\n1\n", got)
	})

	t.Run("array of primitives is skipped", func(t *testing.T) {
		_, ok := componentTable([]any{"a", "b"}, true)
		assert.False(t, ok)
	})

	t.Run("component status", func(t *testing.T) {
		got, ok := componentTable(omap("name", "db", "is_healthy", true, "status", "ok"), true)
		require.True(t, ok)
		assert.Equal(t, "[db] (healthy)\nok", got)
	})

	t.Run("scalar is skipped", func(t *testing.T) {
		_, ok := componentTable(num("3"), true)
		assert.False(t, ok)
	})
}

func TestIsComponentStatus(t *testing.T) {
	yes, ok := asObject(omap("name", "db", "is_healthy", true, "status", "ok", "extra", "x"))
	require.True(t, ok)
	assert.True(t, isComponentStatus(yes))

	no, ok := asObject(omap("name", "db", "status", "ok"))
	require.True(t, ok)
	assert.False(t, isComponentStatus(no))
}
