package engineconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigEvalBool(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Define("wasm_globals", "features.wasm_globals"))

	enabled, err := c.EvalBool("wasm_globals", map[string]any{
		"features": map[string]any{"wasm_globals": true},
	})
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestConfigEvalArithmetic(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Define("over_limit", "mem_bytes > limit"))

	over, err := c.EvalBool("over_limit", map[string]any{"mem_bytes": 70000, "limit": 65536})
	require.NoError(t, err)
	assert.True(t, over)
}

func TestConfigUndefinedNameFails(t *testing.T) {
	c := NewConfig()
	_, err := c.Eval("missing", nil)
	assert.ErrorIs(t, err, ErrUndefined{Name: "missing"})
}

func TestConfigNonBoolResultFails(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Define("count", "1 + 1"))
	_, err := c.EvalBool("count", nil)
	assert.Error(t, err)
}

func TestCompileEmptyExprIsEmpty(t *testing.T) {
	x, err := Compile("")
	require.NoError(t, err)
	assert.True(t, x.IsEmpty())
}
