// Package methodscript drives a viewcompiler.CompileMethod from a YAML
// description of template nodes and builder calls.
//
// A script looks like:
//
//	method: detectChangesInternal
//	source: user.html
//	params:
//	  - name: throwOnChange
//	    type: bool
//	nodes:
//	  - id: div
//	    line: 0
//	    col: 0
//	steps:
//	  - record: {node_index: 0, node: div}
//	  - stmt: {method: createElement, args: ["div"]}
//	  - force: {node_index: 1}
//	  - stmt: {receiver: listener, method: bind, args: [$debug]}
//
// The string argument "$debug" is replaced with the expression returned by
// the latest force step.
package methodscript

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml"

	"github.com/shibukawa/snapview"
	"github.com/shibukawa/snapview/outputast"
	"github.com/shibukawa/snapview/templateast"
	"github.com/shibukawa/snapview/viewcompiler"
)

// DebugArgument is replaced with the most recent forced marker expression.
const DebugArgument = "$debug"

// Script is the parsed form of a method script file.
type Script struct {
	Method string    `yaml:"method"`
	Source string    `yaml:"source,omitempty"`
	Params []Param   `yaml:"params,omitempty"`
	Nodes  []NodeDef `yaml:"nodes,omitempty"`
	Steps  []Step    `yaml:"steps"`
}

// Param is a generated method parameter.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// NodeDef declares a template node the steps can point at.
type NodeDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`
	Line int    `yaml:"line"`
	Col  int    `yaml:"col"`
}

// Location is the argument of record and force steps.
// An empty node means "no source node".
type Location struct {
	NodeIndex *int   `yaml:"node_index"`
	Node      string `yaml:"node"`
}

// Call is a method call statement. An empty receiver or "this" calls the
// generated view itself.
type Call struct {
	Receiver string `yaml:"receiver,omitempty"`
	Method   string `yaml:"method"`
	Args     []any  `yaml:"args,omitempty"`
}

// Step is one builder operation. Exactly one field must be set.
type Step struct {
	Record *Location `yaml:"record,omitempty"`
	Force  *Location `yaml:"force,omitempty"`
	Stmt   *Call     `yaml:"stmt,omitempty"`
	Stmts  []Call    `yaml:"stmts,omitempty"`
	Return *Call     `yaml:"return,omitempty"`
}

// Kind returns the name of the step action, or "" when the step is invalid.
func (s Step) Kind() string {
	kinds := s.kinds()
	if len(kinds) != 1 {
		return ""
	}

	return kinds[0]
}

func (s Step) kinds() []string {
	var kinds []string

	if s.Record != nil {
		kinds = append(kinds, "record")
	}

	if s.Force != nil {
		kinds = append(kinds, "force")
	}

	if s.Stmt != nil {
		kinds = append(kinds, "stmt")
	}

	if s.Stmts != nil {
		kinds = append(kinds, "stmts")
	}

	if s.Return != nil {
		kinds = append(kinds, "return")
	}

	return kinds
}

// Tracer is called after each replayed step.
type Tracer func(index int, step Step, m *viewcompiler.CompileMethod)

// Parse decodes and validates a method script.
func Parse(data []byte) (*Script, error) {
	var script Script

	err := yaml.UnmarshalWithOptions(data, &script, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse method script: %w", err)
	}

	err = script.Validate()
	if err != nil {
		return nil, err
	}

	return &script, nil
}

// Validate checks the script structure without replaying it.
func (s *Script) Validate() error {
	if s.Method == "" {
		return snapview.ErrEmptyMethodName
	}

	seen := make(map[string]bool, len(s.Nodes))

	for _, n := range s.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node without id", snapview.ErrInvalidStep)
		}

		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate node id %q", snapview.ErrInvalidStep, n.ID)
		}

		seen[n.ID] = true
	}

	for i, step := range s.Steps {
		kinds := step.kinds()
		switch len(kinds) {
		case 0:
			return fmt.Errorf("%w: step %d has no action", snapview.ErrInvalidStep, i)
		case 1:
		default:
			return fmt.Errorf("%w: step %d has multiple actions %v", snapview.ErrInvalidStep, i, kinds)
		}
	}

	return nil
}

// Replay applies the steps to m in order.
func (s *Script) Replay(m *viewcompiler.CompileMethod, trace Tracer) error {
	nodes := s.buildNodes()

	var forced outputast.Expression = outputast.Null()

	for i, step := range s.Steps {
		err := s.replayStep(m, nodes, step, &forced)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Kind(), err)
		}

		if trace != nil {
			trace(i, step, m)
		}
	}

	return nil
}

func (s *Script) replayStep(m *viewcompiler.CompileMethod, nodes map[string]templateast.Node, step Step, forced *outputast.Expression) error {
	switch step.Kind() {
	case "record":
		node, err := lookupNode(nodes, step.Record.Node)
		if err != nil {
			return err
		}

		m.ResetDebugInfo(step.Record.NodeIndex, node)
	case "force":
		node, err := lookupNode(nodes, step.Force.Node)
		if err != nil {
			return err
		}

		*forced = m.ResetDebugInfoExpr(step.Force.NodeIndex, node)
	case "stmt":
		expr, err := step.Stmt.expression(*forced)
		if err != nil {
			return err
		}

		m.AddStmt(expr.ToStmt())
	case "stmts":
		stmts := make([]outputast.Statement, 0, len(step.Stmts))

		for _, call := range step.Stmts {
			expr, err := call.expression(*forced)
			if err != nil {
				return err
			}

			stmts = append(stmts, expr.ToStmt())
		}

		m.AddStmts(stmts)
	case "return":
		if step.Return.Method == "" {
			m.AddStmt(&outputast.ReturnStatement{})
			return nil
		}

		expr, err := step.Return.expression(*forced)
		if err != nil {
			return err
		}

		m.AddStmt(&outputast.ReturnStatement{Value: expr})
	default:
		return snapview.ErrInvalidStep
	}

	return nil
}

// Compile replays the script on a fresh builder and wraps the result as a
// class method. The method is nil when the body came out empty.
func (s *Script) Compile(cfg snapview.GenConfig, trace Tracer) (*outputast.ClassMethod, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	m := viewcompiler.NewCompileMethod(cfg)

	err = s.Replay(m, trace)
	if err != nil {
		return nil, err
	}

	params := make([]outputast.FnParam, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, outputast.FnParam{Name: p.Name, Type: p.Type})
	}

	return viewcompiler.ClassMethodOf(s.Method, params, m), nil
}

// buildNodes creates one node handle per declaration. Every node gets a
// span starting at its declared position in a file named after Source.
func (s *Script) buildNodes() map[string]templateast.Node {
	file := templateast.NewParseSourceFile("", s.Source)
	nodes := make(map[string]templateast.Node, len(s.Nodes))

	for _, def := range s.Nodes {
		start := templateast.ParseLocation{File: file, Line: def.Line, Col: def.Col}
		name := def.Name
		if name == "" {
			name = def.ID
		}

		nodes[def.ID] = &templateast.ElementAst{
			Name: name,
			Span: &templateast.ParseSourceSpan{Start: start, End: start},
		}
	}

	return nodes
}

func lookupNode(nodes map[string]templateast.Node, id string) (templateast.Node, error) {
	if id == "" {
		return nil, nil
	}

	node, ok := nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", snapview.ErrUnknownNode, id)
	}

	return node, nil
}

func (c *Call) expression(forced outputast.Expression) (outputast.Expression, error) {
	if c.Method == "" {
		return nil, fmt.Errorf("%w: call without method", snapview.ErrInvalidStep)
	}

	var receiver outputast.Expression = outputast.This()
	if c.Receiver != "" && c.Receiver != "this" {
		receiver = outputast.Variable(c.Receiver)
	}

	args := make([]outputast.Expression, 0, len(c.Args))

	for i, arg := range c.Args {
		expr, err := argument(arg, forced)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", c.Method, i, err)
		}

		args = append(args, expr)
	}

	return outputast.CallMethod(receiver, c.Method, args...), nil
}

func argument(value any, forced outputast.Expression) (outputast.Expression, error) {
	switch v := value.(type) {
	case nil:
		return outputast.Null(), nil
	case string:
		if v == DebugArgument {
			return forced, nil
		}

		return outputast.Literal(v), nil
	case bool, int, float64:
		return outputast.Literal(v), nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return nil, fmt.Errorf("%w: %d overflows int", snapview.ErrUnsupportedLiteral, v)
		}

		return outputast.Literal(int(v)), nil
	case uint64:
		if v > math.MaxInt {
			return nil, fmt.Errorf("%w: %d overflows int", snapview.ErrUnsupportedLiteral, v)
		}

		return outputast.Literal(int(v)), nil
	case float32:
		return outputast.Literal(float64(v)), nil
	default:
		return nil, fmt.Errorf("%w: %T", snapview.ErrUnsupportedLiteral, value)
	}
}

// IsScriptError reports whether err came from an invalid script rather than I/O.
func IsScriptError(err error) bool {
	return errors.Is(err, snapview.ErrUnknownNode) ||
		errors.Is(err, snapview.ErrInvalidStep) ||
		errors.Is(err, snapview.ErrUnsupportedLiteral) ||
		errors.Is(err, snapview.ErrEmptyMethodName)
}
