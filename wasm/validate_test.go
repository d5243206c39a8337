package wasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsSimpleAddFunction(t *testing.T) {
	m := &Module{
		TypeSection:     &TypeSection{Types: []FunctionType{{Results: []ValueType{I32}}}},
		FunctionSection: &FunctionSection{TypeIndices: []TypeIdx{0}},
		CodeSection: &CodeSection{Entries: []CodeEntry{{
			Code: []Instruction{
				{Op: OpI32Const, I32Value: 20},
				{Op: OpI32Const, I32Value: 22},
				{Op: OpI32Add},
			},
		}}},
	}
	require.NoError(t, Validate(m))
}

func TestValidateRejectsStackUnderflow(t *testing.T) {
	m := &Module{
		TypeSection:     &TypeSection{Types: []FunctionType{{Results: []ValueType{I32}}}},
		FunctionSection: &FunctionSection{TypeIndices: []TypeIdx{0}},
		CodeSection: &CodeSection{Entries: []CodeEntry{{
			Code: []Instruction{{Op: OpI32Add}},
		}}},
	}
	assert.ErrorIs(t, Validate(m), ErrValueStackUnderflow)
}

func TestValidateRejectsLoadWithoutMemory(t *testing.T) {
	m := &Module{
		TypeSection:     &TypeSection{Types: []FunctionType{{Results: []ValueType{I32}}}},
		FunctionSection: &FunctionSection{TypeIndices: []TypeIdx{0}},
		CodeSection: &CodeSection{Entries: []CodeEntry{{
			Code: []Instruction{
				{Op: OpI32Const, I32Value: 0},
				{Op: OpI32Load},
			},
		}}},
	}
	assert.ErrorIs(t, Validate(m), ErrMemorySectionUndefined)
}

func TestValidateRejectsInvalidTableLimits(t *testing.T) {
	max := uint32(1)
	m := &Module{
		TableSection: &TableSection{Tables: []TableType{
			{ElementType: FuncRef, Limits: Limits{Min: 5, Max: &max}},
		}},
	}
	assert.ErrorIs(t, Validate(m), ErrTableInvalid)
}

func TestValidateAcceptsNestedBlock(t *testing.T) {
	m := &Module{
		TypeSection:     &TypeSection{Types: []FunctionType{{Results: []ValueType{I32}}}},
		FunctionSection: &FunctionSection{TypeIndices: []TypeIdx{0}},
		CodeSection: &CodeSection{Entries: []CodeEntry{{
			Code: []Instruction{
				{Op: OpBlock, BlockType: BlockType{Kind: BlockTypeValue, Value: I32}},
				{Op: OpI32Const, I32Value: 1},
				{Op: OpI32Const, I32Value: 2},
				{Op: OpI32Add},
				{Op: OpEnd},
			},
		}}},
	}
	require.NoError(t, Validate(m))
}
