// Package templateast holds the template node handles the view compiler attributes
// generated code to. Nodes are always used through pointers so that two nodes
// covering the same text are still distinct handles.
package templateast

// Node is implemented by every template AST node.
type Node interface {
	SourceSpan() *ParseSourceSpan
}

// TextAst is static text between elements.
type TextAst struct {
	Value string
	Span  *ParseSourceSpan
}

// SourceSpan returns the span of the text
func (n *TextAst) SourceSpan() *ParseSourceSpan {
	if n == nil {
		return nil
	}

	return n.Span
}

// BoundTextAst is an interpolation such as {{ user.name }}.
type BoundTextAst struct {
	Expr string
	Span *ParseSourceSpan
}

// SourceSpan returns the span of the interpolation
func (n *BoundTextAst) SourceSpan() *ParseSourceSpan {
	if n == nil {
		return nil
	}

	return n.Span
}

// AttrAst is a plain attribute on an element.
type AttrAst struct {
	Name  string
	Value string
	Span  *ParseSourceSpan
}

// SourceSpan returns the span of the attribute
func (n *AttrAst) SourceSpan() *ParseSourceSpan {
	if n == nil {
		return nil
	}

	return n.Span
}

// ElementAst is an element with its attributes and children.
type ElementAst struct {
	Name     string
	Attrs    []*AttrAst
	Children []Node
	Span     *ParseSourceSpan
}

// SourceSpan returns the span of the start tag
func (n *ElementAst) SourceSpan() *ParseSourceSpan {
	if n == nil {
		return nil
	}

	return n.Span
}

// StartOf returns the start location of node, or false when the node
// or its span is missing.
func StartOf(node Node) (ParseLocation, bool) {
	if node == nil {
		return ParseLocation{}, false
	}

	span := node.SourceSpan()
	if span == nil {
		return ParseLocation{}, false
	}

	return span.Start, true
}

var (
	_ Node = (*TextAst)(nil)
	_ Node = (*BoundTextAst)(nil)
	_ Node = (*AttrAst)(nil)
	_ Node = (*ElementAst)(nil)
)
