// Package outputast is the language-neutral output model the view compiler
// builds method bodies from. Renderers such as langs/gogen turn it into source.
package outputast

// Expression is any value-producing node.
type Expression interface {
	// ToStmt wraps the expression into a standalone statement.
	ToStmt() Statement
	isExpression()
}

// Statement is a node that can appear in a method body.
type Statement interface {
	isStatement()
}

// BuiltinVar identifies variables every generated method has access to.
type BuiltinVar int

const (
	BuiltinNone BuiltinVar = iota
	// BuiltinThis is the receiver of the generated method
	BuiltinThis
)

// ReadVarExpr reads a named variable or a builtin one.
type ReadVarExpr struct {
	Name    string
	Builtin BuiltinVar
}

// ThisExpr refers to the generated method's own receiver.
// It is shared and must be treated as read-only; use This for a private copy.
var ThisExpr = &ReadVarExpr{Builtin: BuiltinThis}

// This returns a new reference to the receiver
func This() *ReadVarExpr {
	return &ReadVarExpr{Builtin: BuiltinThis}
}

// Variable reads a local variable by name
func Variable(name string) *ReadVarExpr {
	return &ReadVarExpr{Name: name}
}

// CallMethod builds a method call on this expression
func (e *ReadVarExpr) CallMethod(name string, args ...Expression) *InvokeMethodExpr {
	return CallMethod(e, name, args...)
}

func (e *ReadVarExpr) ToStmt() Statement {
	return &ExpressionStatement{Expr: e}
}

// InvokeMethodExpr calls Name on Receiver with positional Args.
type InvokeMethodExpr struct {
	Receiver Expression
	Name     string
	Args     []Expression
}

// CallMethod builds receiver.name(args...)
func CallMethod(receiver Expression, name string, args ...Expression) *InvokeMethodExpr {
	if args == nil {
		args = []Expression{}
	}

	return &InvokeMethodExpr{Receiver: receiver, Name: name, Args: args}
}

func (e *InvokeMethodExpr) ToStmt() Statement {
	return &ExpressionStatement{Expr: e}
}

// LiteralExpr is a constant. Value is nil, bool, int, float64 or string.
type LiteralExpr struct {
	Value any
}

// NullExpr is the null literal. It is shared and must be treated as
// read-only; use Null for a private copy.
var NullExpr = &LiteralExpr{Value: nil}

// Null returns a new null literal
func Null() *LiteralExpr {
	return &LiteralExpr{Value: nil}
}

// Literal wraps a constant value
func Literal(value any) *LiteralExpr {
	return &LiteralExpr{Value: value}
}

func (e *LiteralExpr) ToStmt() Statement {
	return &ExpressionStatement{Expr: e}
}

// IsNull reports whether expr is the null literal
func IsNull(expr Expression) bool {
	lit, ok := expr.(*LiteralExpr)
	return ok && lit.Value == nil
}

// ExpressionStatement evaluates an expression for its side effects.
type ExpressionStatement struct {
	Expr Expression
}

// ReturnStatement returns Value from the generated method.
type ReturnStatement struct {
	Value Expression
}

// FnParam is a parameter of a generated method.
type FnParam struct {
	Name string
	Type string
}

// ClassMethod is one generated method on the view receiver.
type ClassMethod struct {
	Name   string
	Params []FnParam
	Body   []Statement
}

func (*ReadVarExpr) isExpression()      {}
func (*InvokeMethodExpr) isExpression() {}
func (*LiteralExpr) isExpression()      {}

func (*ExpressionStatement) isStatement() {}
func (*ReturnStatement) isStatement()     {}
