package outputast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCallMethodOnThis(t *testing.T) {
	call := ThisExpr.CallMethod("debug", Literal(0), NullExpr, NullExpr)

	assert.Equal(t, Expression(ThisExpr), call.Receiver)
	assert.Equal(t, "debug", call.Name)
	assert.Equal(t, 3, len(call.Args))
	assert.True(t, IsNull(call.Args[1]))
	assert.False(t, IsNull(call.Args[0]))
}

func TestCallMethodWithoutArgs(t *testing.T) {
	call := CallMethod(Variable("el"), "detach")
	assert.True(t, call.Args != nil)
	assert.Equal(t, 0, len(call.Args))
}

func TestToStmt(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
	}{
		{"method call", ThisExpr.CallMethod("render")},
		{"literal", Literal("text")},
		{"variable", Variable("el")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := tt.expr.ToStmt()
			exprStmt, ok := stmt.(*ExpressionStatement)
			assert.True(t, ok)
			assert.Equal(t, tt.expr, exprStmt.Expr)
		})
	}
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(NullExpr))
	assert.True(t, IsNull(Literal(nil)))
	assert.False(t, IsNull(Literal(0)))
	assert.False(t, IsNull(ThisExpr))
	assert.False(t, IsNull(nil))
}

func TestFreshBuiltins(t *testing.T) {
	this := This()
	assert.Equal(t, ThisExpr, this)
	assert.True(t, this != ThisExpr)

	null := Null()
	assert.True(t, IsNull(null))
	null.Value = 1
	assert.True(t, IsNull(NullExpr))
	assert.True(t, IsNull(Null()))
}
