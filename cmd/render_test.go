package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderCommandJSONEnvelope(t *testing.T) {
	path := writeTempJSON(t, `{"b": 2, "a": 1}`)

	out, err := runCommand(t, "", "render", path, "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true,"result":{"b":2,"a":1}}`+"\n", out)
}

func TestRenderCommandTable(t *testing.T) {
	path := writeTempJSON(t, `[{"id": 1, "name": "a"}, {"id": 2, "name": "bb"}]`)

	out, err := runCommand(t, "", "render", path, "-o", "table")
	require.NoError(t, err)
	assert.Equal(t, "id  name\n 1  a   \n 2  bb  \n", out)
}

func TestRenderCommandStdin(t *testing.T) {
	out, err := runCommand(t, `"hello"`, "render", "-o", "table")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRenderCommandFilter(t *testing.T) {
	defer func() { filterExpr = "" }()
	path := writeTempJSON(t, `{"b": 2, "a": 1}`)

	out, err := runCommand(t, "", "render", path, "-o", "json", "--filter", "_.b")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true,"result":2}`+"\n", out)
}

func TestRenderCommandMissingFile(t *testing.T) {
	_, err := runCommand(t, "", "render", filepath.Join(t.TempDir(), "missing.json"), "-o", "table")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(&exitError{code: 2, err: errors.New("bad config")}))
}

func TestCollectURIs(t *testing.T) {
	entry := func(uri string) *orderedmap.OrderedMap[string, any] {
		m := orderedmap.New[string, any]()
		m.Set("uri", uri)
		return m
	}

	t.Run("array of entry objects", func(t *testing.T) {
		got := collectURIs([]any{entry("viking://a"), entry("viking://b")})
		assert.Equal(t, []string{"viking://a", "viking://b"}, got)
	})

	t.Run("array of strings", func(t *testing.T) {
		got := collectURIs([]any{"viking://a"})
		assert.Equal(t, []string{"viking://a"}, got)
	})

	t.Run("object wrapping entry arrays", func(t *testing.T) {
		wrapper := orderedmap.New[string, any]()
		wrapper.Set("entries", []any{entry("viking://a")})
		got := collectURIs(wrapper)
		assert.Equal(t, []string{"viking://a"}, got)
	})

	t.Run("unrelated shapes yield nothing", func(t *testing.T) {
		assert.Empty(t, collectURIs("just a string"))
		assert.Empty(t, collectURIs(nil))
	})
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "", maskKey(""))
	assert.Equal(t, "****", maskKey("abc"))
	assert.Equal(t, "sk-1****", maskKey("sk-1234567890"))
}
