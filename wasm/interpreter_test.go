package wasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreterAdd(t *testing.T) {
	in := NewInterpreter(nil, nil, 0)
	top, err := in.Run([]Instruction{
		{Op: OpI32Const, I32Value: 20},
		{Op: OpI32Const, I32Value: 22},
		{Op: OpI32Add},
	})
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, int32(42), *top)
}

func TestInterpreterLoadOutOfBounds(t *testing.T) {
	in := NewInterpreter(nil, nil, 10)
	_, err := in.Run([]Instruction{
		{Op: OpI32Const, I32Value: 0},
		{Op: OpI32Load, MemArg: MemArg{Offset: 100}},
	})
	assert.ErrorIs(t, err, MemoryAccessOutOfBounds)
}

func TestInterpreterLessThanSigned(t *testing.T) {
	in := NewInterpreter(nil, nil, 0)
	top, err := in.Run([]Instruction{
		{Op: OpI32Const, I32Value: 10},
		{Op: OpI32Const, I32Value: 20},
		{Op: OpI32LessThanSigned},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), *top)

	in2 := NewInterpreter(nil, nil, 0)
	top2, err := in2.Run([]Instruction{
		{Op: OpI32Const, I32Value: 20},
		{Op: OpI32Const, I32Value: 10},
		{Op: OpI32LessThanSigned},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(0), *top2)
}

func TestInterpreterStoreThenLoad(t *testing.T) {
	in := NewInterpreter(nil, nil, 16)
	_, err := in.Run([]Instruction{
		{Op: OpI32Const, I32Value: 0},
		{Op: OpI32Const, I32Value: 99},
		{Op: OpI32Store},
	})
	require.NoError(t, err)

	top, err := in.Run([]Instruction{
		{Op: OpI32Const, I32Value: 0},
		{Op: OpI32Load},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(99), *top)
}

func TestInterpreterUnhandledControlFlow(t *testing.T) {
	in := NewInterpreter(nil, nil, 0)
	_, err := in.Run([]Instruction{{Op: OpBlock}})
	assert.ErrorIs(t, err, UnhandledInstruction)
}

func TestInterpreterEmptyStackYieldsNoValue(t *testing.T) {
	in := NewInterpreter(nil, nil, 0)
	top, err := in.Run(nil)
	require.NoError(t, err)
	assert.Nil(t, top)
}
