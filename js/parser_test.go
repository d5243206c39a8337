package js

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallExpressionWithArguments(t *testing.T) {
	prog, err := Parse("foo(1, 2);")
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)

	stmt := prog.Body[0]
	require.Equal(t, StmtExpression, stmt.Kind)

	call := stmt.Expression
	require.Equal(t, ExprCall, call.Kind)
	require.Equal(t, ExprIdentifier, call.Callee.Kind)
	assert.Equal(t, "foo", call.Callee.Identifier.Name)

	require.Len(t, call.Arguments, 2)
	assert.Equal(t, ExprNumericLiteral, call.Arguments[0].Kind)
	assert.Equal(t, 1.0, call.Arguments[0].NumValue)
	assert.Equal(t, ExprNumericLiteral, call.Arguments[1].Kind)
	assert.Equal(t, 2.0, call.Arguments[1].NumValue)
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog, err := Parse("function get_3() { return 3; }")
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)

	stmt := prog.Body[0]
	require.Equal(t, StmtFunctionDeclaration, stmt.Kind)
	assert.Equal(t, "get_3", stmt.FunctionID.Name)
	require.Len(t, stmt.FunctionBody.Body, 1)
	assert.Equal(t, StmtReturn, stmt.FunctionBody.Body[0].Kind)
}

func TestParseAssignmentAndMemberExpression(t *testing.T) {
	prog, err := Parse("a = obj.prop;")
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)

	expr := prog.Body[0].Expression
	require.Equal(t, ExprAssignment, expr.Kind)
	assert.Equal(t, "a", expr.LHS.Identifier.Name)

	member := expr.RHS
	require.Equal(t, ExprMember, member.Kind)
	assert.Equal(t, "obj", member.Object.Identifier.Name)
	assert.Equal(t, "prop", member.Property.Name)
}

func TestParseFunctionDeclarationRequiresName(t *testing.T) {
	_, err := Parse("function (a) { return a; };")
	assert.Error(t, err)
}

func TestParseSkipsComments(t *testing.T) {
	prog, err := Parse("/* setup */ a = 1;")
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)
	assert.Equal(t, ExprAssignment, prog.Body[0].Expression.Kind)
}

func TestParseSemicolonOptionalAfterFunctionBody(t *testing.T) {
	prog, err := Parse("function f() { return 1; } f();")
	require.NoError(t, err)
	require.Len(t, prog.Body, 2)
	assert.Equal(t, StmtFunctionDeclaration, prog.Body[0].Kind)
	assert.Equal(t, StmtExpression, prog.Body[1].Kind)
}

func TestParseMissingSemicolonFails(t *testing.T) {
	_, err := Parse("foo() bar()")
	assert.Error(t, err)
}
