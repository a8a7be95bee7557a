package outcome_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/taskrunner/internal/outcome"
)

func TestFail_TagsMessage(t *testing.T) {
	got := outcome.Fail(outcome.GatewayError, "LLM API error", errors.New("quota exceeded"))
	assert.Equal(t, "LLM API error: quota exceeded", got.Value)
	assert.Equal(t, outcome.GatewayError, got.Kind)
	assert.True(t, got.Failed())
}

func TestFail_NilError(t *testing.T) {
	got := outcome.Fail(outcome.FetchError, "Browsing error", nil)
	assert.Equal(t, "Browsing error: unknown error", got.Value)
}

func TestOk_NotFailed(t *testing.T) {
	got := outcome.Ok("fine")
	assert.False(t, got.Failed())
	assert.Equal(t, "fine", got.String())
}

func TestReject_KeepsMessage(t *testing.T) {
	got := outcome.Reject(outcome.UnsupportedInputError, "Unsupported language: go")
	assert.Equal(t, "Unsupported language: go", got.Value)
	assert.True(t, got.Failed())
}

func TestText_MarshalsAsString(t *testing.T) {
	b, err := json.Marshal(map[string]any{"summary": outcome.Ok("short")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"short"}`, string(b))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "decode_error", outcome.DecodeError.String())
	assert.Equal(t, "kind(42)", outcome.Kind(42).String())
}
