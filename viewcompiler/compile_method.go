package viewcompiler

import (
	"reflect"
	"slices"

	"github.com/shibukawa/snapview"
	"github.com/shibukawa/snapview/outputast"
	"github.com/shibukawa/snapview/templateast"
)

// DebugHookMethod is the receiver method every debug marker calls.
const DebugHookMethod = "debug"

// debugState はデバッグマーカーが指す位置（ノード番号とテンプレートノード）
type debugState struct {
	nodeIndex  *int
	sourceNode templateast.Node
}

var nullDebugState = debugState{}

// equal compares node indices by value and source nodes by handle identity.
func (s debugState) equal(other debugState) bool {
	if (s.nodeIndex == nil) != (other.nodeIndex == nil) {
		return false
	}

	if s.nodeIndex != nil && *s.nodeIndex != *other.nodeIndex {
		return false
	}

	return sameNode(s.sourceNode, other.sourceNode)
}

// sameNode compares node handles. Nodes of a non-comparable type have no
// identity and never compare equal.
func sameNode(a, b templateast.Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}

	return a == b
}

// CompileMethod accumulates the statements of one generated method body and
// inserts debug markers whenever the recorded template location changes.
//
// ResetDebugInfo only records the location. The marker is flushed by the next
// AddStmt/AddStmts/Push, once per call, so a batch sharing one location gets
// at most one marker. A CompileMethod must not be shared between goroutines.
type CompileMethod struct {
	newState  debugState
	currState debugState

	debugEnabled bool

	bodyStatements []outputast.Statement
}

// NewCompileMethod は新しい CompileMethod を作成する
func NewCompileMethod(cfg snapview.GenConfig) *CompileMethod {
	debugEnabled := false
	if cfg != nil {
		debugEnabled = cfg.GenDebugInfo()
	}

	return &CompileMethod{
		newState:       nullDebugState,
		currState:      nullDebugState,
		debugEnabled:   debugEnabled,
		bodyStatements: make([]outputast.Statement, 0, 16),
	}
}

func (m *CompileMethod) updateDebugContextIfNeeded() {
	if m.newState.equal(m.currState) {
		return
	}

	expr := m.updateDebugContext(m.newState)
	if expr != nil {
		m.bodyStatements = append(m.bodyStatements, expr.ToStmt())
	}
}

// updateDebugContext syncs both states to newState and returns its marker,
// or nil when debug info is disabled.
func (m *CompileMethod) updateDebugContext(newState debugState) outputast.Expression {
	m.currState = newState
	m.newState = newState

	if !m.debugEnabled {
		return nil
	}

	return debugMarker(newState)
}

func debugMarker(state debugState) outputast.Expression {
	nodeIndex := outputast.Expression(outputast.Null())
	if state.nodeIndex != nil {
		nodeIndex = outputast.Literal(*state.nodeIndex)
	}

	line := outputast.Expression(outputast.Null())
	col := outputast.Expression(outputast.Null())

	if start, ok := templateast.StartOf(state.sourceNode); ok {
		line = outputast.Literal(start.Line)
		col = outputast.Literal(start.Col)
	}

	return outputast.This().CallMethod(DebugHookMethod, nodeIndex, line, col)
}

// ResetDebugInfoExpr moves the debug context to the given location immediately
// and returns the marker expression for it, for callers that embed the marker
// inline. It returns a null literal when debug info is disabled. Nothing is
// appended to the body. Every call returns a new expression.
func (m *CompileMethod) ResetDebugInfoExpr(nodeIndex *int, node templateast.Node) outputast.Expression {
	expr := m.updateDebugContext(debugState{nodeIndex: copyIndex(nodeIndex), sourceNode: node})
	if expr == nil {
		return outputast.Null()
	}

	return expr
}

// ResetDebugInfo records the location for the statements added next.
func (m *CompileMethod) ResetDebugInfo(nodeIndex *int, node templateast.Node) {
	m.newState = debugState{nodeIndex: copyIndex(nodeIndex), sourceNode: node}
}

// Push appends stmts as one batch
func (m *CompileMethod) Push(stmts ...outputast.Statement) {
	m.AddStmts(stmts)
}

// AddStmt appends stmt, preceded by a debug marker if the location changed.
func (m *CompileMethod) AddStmt(stmt outputast.Statement) {
	m.updateDebugContextIfNeeded()
	m.bodyStatements = append(m.bodyStatements, stmt)
}

// AddStmts appends stmts, preceded by at most one debug marker.
func (m *CompileMethod) AddStmts(stmts []outputast.Statement) {
	m.updateDebugContextIfNeeded()
	m.bodyStatements = append(m.bodyStatements, stmts...)
}

// Finish returns the accumulated body. Appending to the result never
// touches statements the builder adds later.
func (m *CompileMethod) Finish() []outputast.Statement {
	return slices.Clip(m.bodyStatements)
}

// IsEmpty reports whether no statement (including markers) has been emitted.
func (m *CompileMethod) IsEmpty() bool {
	return len(m.bodyStatements) == 0
}

// DebugEnabled reports whether markers are generated
func (m *CompileMethod) DebugEnabled() bool {
	return m.debugEnabled
}

// Current returns the location of the last emitted marker.
func (m *CompileMethod) Current() (*int, templateast.Node) {
	return copyIndex(m.currState.nodeIndex), m.currState.sourceNode
}

// Pending returns the most recently recorded location.
func (m *CompileMethod) Pending() (*int, templateast.Node) {
	return copyIndex(m.newState.nodeIndex), m.newState.sourceNode
}

// Synced reports whether the recorded location has already been flushed.
func (m *CompileMethod) Synced() bool {
	return m.newState.equal(m.currState)
}

// 呼び出し元のポインタを保持しないようにコピーする
func copyIndex(nodeIndex *int) *int {
	if nodeIndex == nil {
		return nil
	}

	v := *nodeIndex

	return &v
}

// NodeIndex is a helper for passing literal node indices
func NodeIndex(i int) *int {
	return &i
}
