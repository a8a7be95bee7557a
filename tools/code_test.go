package tools_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/taskrunner/internal/outcome"
	"github.com/petasbytes/taskrunner/tools"
)

func TestRunCode_Python(t *testing.T) {
	res := tools.RunCode("print('Hello World')", tools.Python)

	assert.Equal(t, tools.KindCode, res.Kind())
	assert.False(t, res.Display().Failed())
	assert.Equal(t, "Simulated execution of code:\nprint('Hello World')\nOutput: Code executed successfully", res.Display().Value)
}

func TestRunCode_UnsupportedLanguage(t *testing.T) {
	res := tools.RunCode("fn main() {}", "rust")

	assert.Equal(t, outcome.UnsupportedInputError, res.Display().Kind)
	assert.Equal(t, "Unsupported language: rust", res.Display().Value)
}

func TestRunCode_HistoryJSONIsPlainString(t *testing.T) {
	b, err := json.Marshal(tools.RunCode("x = 1", tools.Python))
	require.NoError(t, err)

	var s string
	require.NoError(t, json.Unmarshal(b, &s))
	assert.Contains(t, s, "x = 1")
}

func TestRunCodeDefinition_DefaultsToPython(t *testing.T) {
	res, err := tools.RunCodeDefinition.Function(context.Background(), json.RawMessage(`{"code":"print(1)"}`))
	require.NoError(t, err)
	assert.False(t, res.Display().Failed())

	_, err = tools.RunCodeDefinition.Function(context.Background(), json.RawMessage(`{bad`))
	assert.Error(t, err)
}
