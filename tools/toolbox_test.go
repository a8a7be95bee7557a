package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/taskrunner/internal/fsops"
	"github.com/petasbytes/taskrunner/tools"
)

func TestRegistry_ToolNames(t *testing.T) {
	defs := tools.NewToolbox(newRecorder("x"), tools.Options{}).Registry()

	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
		assert.NotEmpty(t, d.Description, d.Name)
		assert.NotNil(t, d.Function, d.Name)
	}
	assert.Equal(t, []string{"run_code", "browse", "search", "read_file"}, names)
}

func TestRegistry_SchemasSerialise(t *testing.T) {
	defs := tools.NewToolbox(newRecorder("x"), tools.Options{}).Registry()
	d, ok := tools.Lookup(defs, "search")
	require.True(t, ok)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "search", m["name"])
	schema, ok := m["input_schema"].(map[string]any)
	require.True(t, ok, "%s", b)
	assert.Contains(t, schema["properties"], "query")
	assert.Equal(t, []any{"query"}, schema["required"])
}

func TestRegistry_SearchInvocation(t *testing.T) {
	an := newRecorder("summary")
	d, _ := tools.Lookup(tools.NewToolbox(an, tools.Options{}).Registry(), "search")

	res, err := d.Function(context.Background(), json.RawMessage(`{"query":"go iterators"}`))
	require.NoError(t, err)
	assert.Equal(t, "summary", res.Display().Value)
	assert.Contains(t, an.last(), "'go iterators'")
}

func TestRegistry_ReadFileThroughLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644))
	reader, err := fsops.NewReader(dir)
	require.NoError(t, err)

	d, _ := tools.Lookup(tools.NewToolbox(newRecorder("ok"), tools.Options{Loader: reader}).Registry(), "read_file")
	res, err := d.Function(context.Background(), json.RawMessage(`{"path":"a.txt"}`))
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", res.(tools.FileResult).Content)

	_, err = d.Function(context.Background(), json.RawMessage(`{"path":"../escape.txt"}`))
	assert.Error(t, err)
}

func TestRegistry_ReadFileWithoutLoader(t *testing.T) {
	d, _ := tools.Lookup(tools.NewToolbox(newRecorder("ok"), tools.Options{}).Registry(), "read_file")
	_, err := d.Function(context.Background(), json.RawMessage(`{"path":"a.txt"}`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}

func TestLookup_Missing(t *testing.T) {
	_, ok := tools.Lookup(nil, "nope")
	assert.False(t, ok)
}
