package wasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpotapov/miniweb/engineconfig"
)

func TestFeaturesFromConfigDefaultsWhenUndefined(t *testing.T) {
	f, err := FeaturesFromConfig(engineconfig.NewConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultFeatures(), f)
}

func TestFeaturesFromConfigGatesSignExtension(t *testing.T) {
	cfg := engineconfig.NewConfig()
	require.NoError(t, cfg.Define(FeatureSignExtension, "build.sign_extension"))

	f, err := FeaturesFromConfig(cfg, map[string]any{
		"build": map[string]any{"sign_extension": false},
	})
	require.NoError(t, err)
	assert.False(t, f.SignExtension)
}

func TestInterpreterSignExtensionGate(t *testing.T) {
	insns := []Instruction{
		{Op: OpI32Const, I32Value: 0xFF},
		{Op: OpI32Extend8Signed},
	}

	enabled := NewInterpreter(nil, nil, 0)
	top, err := enabled.Run(insns)
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, int32(-1), *top)

	disabled := NewInterpreter(nil, nil, 0, WithFeatures(Features{SignExtension: false}))
	_, err = disabled.Run(insns)
	assert.ErrorIs(t, err, UnhandledInstruction)
}
