package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpreterNativeFunctionAddition(t *testing.T) {
	prog, err := Parse("a = 2; b = 3; add(a, b);")
	require.NoError(t, err)

	in := NewInterpreter()
	in.Variables["add"] = NativeFunctionValue(func(args []Value) (Value, error) {
		return NumberValue(args[0].Number + args[1].Number), nil
	})

	result, err := in.Run(prog)
	require.NoError(t, err)
	assert.Equal(t, 5.0, result.Number)
}

func TestInterpreterReturnShortCircuitsFunctionBody(t *testing.T) {
	called := false
	prog, err := Parse("function get_3() { return 3; foo(); } get_3();")
	require.NoError(t, err)

	in := NewInterpreter()
	in.Variables["foo"] = NativeFunctionValue(func(args []Value) (Value, error) {
		called = true
		return Undefined, nil
	})

	result, err := in.Run(prog)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.Number)
	assert.False(t, called, "foo must never be invoked once get_3 has returned")
}

func TestInterpreterMemberExpression(t *testing.T) {
	in := NewInterpreter()
	in.Variables["obj"] = ObjectValue(map[string]Value{"prop": NumberValue(123)})

	result, err := in.evalExpression(Expression{
		Kind:     ExprMember,
		Object:   &Expression{Kind: ExprIdentifier, Identifier: Identifier{Name: "obj"}},
		Property: Identifier{Name: "prop"},
	})
	require.NoError(t, err)
	assert.Equal(t, 123.0, result.Number)

	_, err = in.evalExpression(Expression{
		Kind:     ExprMember,
		Object:   &Expression{Kind: ExprIdentifier, Identifier: Identifier{Name: "obj"}},
		Property: Identifier{Name: "missing"},
	})
	assert.Error(t, err)
}

// TestInterpreterWhileLoop builds a while-loop AST by hand: the
// parser's grammar subset has no while-statement production, but the
// interpreter still executes one per the node's documented semantics.
func TestInterpreterWhileLoop(t *testing.T) {
	var err error
	in := NewInterpreter()
	in.Variables["i"] = NumberValue(0)

	cond := &Expression{Kind: ExprBinary, Op: BinaryMinus,
		LHS: &Expression{Kind: ExprIdentifier, Identifier: Identifier{Name: "limit"}},
		RHS: &Expression{Kind: ExprIdentifier, Identifier: Identifier{Name: "i"}},
	}
	in.Variables["limit"] = NumberValue(3)

	body := Statement{Kind: StmtExpression, Expression: &Expression{
		Kind: ExprAssignment,
		LHS:  &Expression{Kind: ExprIdentifier, Identifier: Identifier{Name: "i"}},
		RHS: &Expression{Kind: ExprBinary, Op: BinaryPlus,
			LHS: &Expression{Kind: ExprIdentifier, Identifier: Identifier{Name: "i"}},
			RHS: &Expression{Kind: ExprNumericLiteral, NumValue: 1},
		},
	}}

	loop := Statement{Kind: StmtWhile, Test: cond, WhileBody: &body}
	_, err = in.execStatement(loop)
	require.NoError(t, err)
	assert.Equal(t, 3.0, in.Variables["i"].Number)
}

func TestInterpreterUnboundIdentifierIsError(t *testing.T) {
	in := NewInterpreter()
	_, err := in.evalExpression(Expression{Kind: ExprIdentifier, Identifier: Identifier{Name: "missing"}})
	assert.Error(t, err)
}
