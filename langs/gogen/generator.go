package gogen

import (
	"fmt"
	"io"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shibukawa/snapview/outputast"
)

// Generator renders generated view methods as a Go source file
type Generator struct {
	PackageName  string
	Receiver     string // receiver identifier ThisExpr renders as
	ReceiverType string
	Header       string // header comment, without the leading "//"
}

// Option is a function that configures Generator
type Option func(*Generator)

// WithPackageName sets the package name for generated code
func WithPackageName(name string) Option {
	return func(g *Generator) {
		g.PackageName = name
	}
}

// WithReceiver sets the receiver identifier and type of generated methods
func WithReceiver(name, typ string) Option {
	return func(g *Generator) {
		g.Receiver = name
		g.ReceiverType = typ
	}
}

// WithHeader replaces the generated file header comment
func WithHeader(header string) Option {
	return func(g *Generator) {
		g.Header = header
	}
}

// New creates a new Generator
func New(opts ...Option) *Generator {
	g := &Generator{
		PackageName:  "generated", // Default package name
		Receiver:     "v",
		ReceiverType: "*View",
		Header:       "Code generated by snapview. DO NOT EDIT.",
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate writes a Go file with one method per non-nil method.
// Nil methods are the empty bodies the view compiler omitted.
func (g *Generator) Generate(w io.Writer, methods ...*outputast.ClassMethod) error {
	f := jen.NewFile(g.PackageName)
	if g.Header != "" {
		f.HeaderComment(g.Header)
	}

	first := true
	seen := make(map[string]string, len(methods))

	for _, method := range methods {
		if method == nil {
			continue
		}

		name := ExportName(method.Name)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: methods %q and %q both render as %s", ErrGenerateGoCode, prev, method.Name, name)
		}

		seen[name] = method.Name

		code, err := g.method(method)
		if err != nil {
			return err
		}

		if !first {
			f.Line()
		}

		first = false

		f.Add(code)
	}

	err := f.Render(w)
	if err != nil {
		return fmt.Errorf("%w: failed to render file: %w", ErrGenerateGoCode, err)
	}

	return nil
}

func (g *Generator) method(method *outputast.ClassMethod) (*jen.Statement, error) {
	params := make([]jen.Code, 0, len(method.Params))
	for _, p := range method.Params {
		params = append(params, jen.Id(p.Name).Add(typeCode(p.Type)))
	}

	body := make([]jen.Code, 0, len(method.Body))

	for i, stmt := range method.Body {
		code, err := g.statement(stmt)
		if err != nil {
			return nil, fmt.Errorf("%s statement %d: %w", method.Name, i, err)
		}

		body = append(body, code)
	}

	return jen.Func().
		Params(jen.Id(g.Receiver).Add(typeCode(g.ReceiverType))).
		Id(ExportName(method.Name)).
		Params(params...).
		Block(body...), nil
}

func (g *Generator) statement(stmt outputast.Statement) (jen.Code, error) {
	switch s := stmt.(type) {
	case *outputast.ExpressionStatement:
		return g.expression(s.Expr)
	case *outputast.ReturnStatement:
		if s.Value == nil {
			return jen.Return(), nil
		}

		value, err := g.expression(s.Value)
		if err != nil {
			return nil, err
		}

		return jen.Return(value), nil
	default:
		return nil, fmt.Errorf("%w: unsupported statement %T", ErrGenerateGoCode, stmt)
	}
}

func (g *Generator) expression(expr outputast.Expression) (*jen.Statement, error) {
	switch e := expr.(type) {
	case *outputast.ReadVarExpr:
		if e.Builtin == outputast.BuiltinThis {
			return jen.Id(g.Receiver), nil
		}

		return jen.Id(e.Name), nil
	case *outputast.InvokeMethodExpr:
		receiver, err := g.expression(e.Receiver)
		if err != nil {
			return nil, err
		}

		args := make([]jen.Code, 0, len(e.Args))

		for _, arg := range e.Args {
			code, err := g.expression(arg)
			if err != nil {
				return nil, err
			}

			args = append(args, code)
		}

		return receiver.Dot(ExportName(e.Name)).Call(args...), nil
	case *outputast.LiteralExpr:
		return literal(e.Value)
	default:
		return nil, fmt.Errorf("%w: unsupported expression %T", ErrGenerateGoCode, expr)
	}
}

func literal(value any) (*jen.Statement, error) {
	switch v := value.(type) {
	case nil:
		return jen.Nil(), nil
	case bool, int, int64, float64, string:
		return jen.Lit(v), nil
	default:
		return nil, fmt.Errorf("%w: unsupported literal %T", ErrGenerateGoCode, value)
	}
}

// typeCode renders "T", "*T" or "pkg.T" style type names
func typeCode(typ string) *jen.Statement {
	if strings.HasPrefix(typ, "*") {
		return jen.Op("*").Add(typeCode(typ[1:]))
	}

	return jen.Id(typ)
}

// ExportName converts a generated method name into an exported Go identifier:
// "debug" -> "Debug", "setText" -> "SetText", "detect_changes" -> "DetectChanges"
func ExportName(name string) string {
	caser := cases.Title(language.English, cases.NoLower)

	parts := strings.Split(name, "_")
	for i, part := range parts {
		switch strings.ToLower(part) {
		case "id":
			parts[i] = "ID"
		case "url":
			parts[i] = "URL"
		default:
			parts[i] = caser.String(part)
		}
	}

	return strings.Join(parts, "")
}
