package gogen

import (
	"bytes"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shibukawa/snapview"
	"github.com/shibukawa/snapview/outputast"
	"github.com/shibukawa/snapview/templateast"
	"github.com/shibukawa/snapview/testhelper"
	"github.com/shibukawa/snapview/viewcompiler"
)

func TestExportName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "Debug"},
		{"setText", "SetText"},
		{"detect_changes_internal", "DetectChangesInternal"},
		{"node_id", "NodeID"},
		{"image_url", "ImageURL"},
		{"Render", "Render"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExportName(tt.input))
		})
	}
}

func TestGenerateMethodBody(t *testing.T) {
	file := templateast.NewParseSourceFile("<div>\n  <span>{{ name }}</span>\n</div>", "user.html")
	div := &templateast.ElementAst{Name: "div", Span: templateast.NewSpan(file, 0, 5)}
	span := &templateast.ElementAst{Name: "span", Span: templateast.NewSpan(file, 8, 14)}

	m := viewcompiler.NewCompileMethod(snapview.StaticGenConfig(true))
	m.ResetDebugInfo(viewcompiler.NodeIndex(0), div)
	m.AddStmt(outputast.ThisExpr.CallMethod("createElement", outputast.Literal("div")).ToStmt())
	m.ResetDebugInfo(viewcompiler.NodeIndex(1), span)
	m.AddStmts([]outputast.Statement{
		outputast.ThisExpr.CallMethod("createElement", outputast.Literal("span")).ToStmt(),
		outputast.ThisExpr.CallMethod("set_text", outputast.Literal(1), outputast.Literal("name")).ToStmt(),
	})

	method := viewcompiler.ClassMethodOf("createInternal", []outputast.FnParam{{Name: "rootSelector", Type: "string"}}, m)

	var buf bytes.Buffer

	g := New(WithPackageName("views"), WithReceiver("v", "*UserView"))
	require.NoError(t, g.Generate(&buf, method))

	expected := testhelper.TrimIndent(t, `
		// Code generated by snapview. DO NOT EDIT.

		package views

		func (v *UserView) CreateInternal(rootSelector string) {
			v.Debug(0, 0, 0)
			v.CreateElement("div")
			v.Debug(1, 1, 2)
			v.CreateElement("span")
			v.SetText(1, "name")
		}
	`)

	assert.Equal(t, strings.TrimSpace(expected), strings.TrimSpace(testhelper.ExpandTabs(buf.String())))
}

func TestGenerateNullArguments(t *testing.T) {
	m := viewcompiler.NewCompileMethod(snapview.StaticGenConfig(true))
	m.ResetDebugInfo(viewcompiler.NodeIndex(3), nil)
	m.AddStmt(&outputast.ReturnStatement{})

	var buf bytes.Buffer

	require.NoError(t, New().Generate(&buf, viewcompiler.ClassMethodOf("destroy", nil, m)))
	assert.Contains(t, buf.String(), "v.Debug(3, nil, nil)")
	assert.Contains(t, buf.String(), "return")
}

func TestGenerateSkipsOmittedMethods(t *testing.T) {
	empty := viewcompiler.NewCompileMethod(snapview.StaticGenConfig(true))
	empty.ResetDebugInfo(viewcompiler.NodeIndex(0), nil)

	filled := viewcompiler.NewCompileMethod(snapview.StaticGenConfig(false))
	filled.ResetDebugInfo(viewcompiler.NodeIndex(0), nil)
	filled.AddStmt(outputast.CallMethod(outputast.Variable("el"), "detach").ToStmt())

	var buf bytes.Buffer

	err := New(WithPackageName("views")).Generate(&buf,
		viewcompiler.ClassMethodOf("dirtyParentQueriesInternal", nil, empty),
		viewcompiler.ClassMethodOf("detachInternal", nil, filled),
	)
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "DirtyParentQueriesInternal")
	assert.NotContains(t, out, "Debug")
	assert.Contains(t, out, "el.Detach()")

	_, err = parser.ParseFile(token.NewFileSet(), "view_gen.go", out, parser.AllErrors)
	require.NoError(t, err)
}

func TestGenerateMultipleMethodsIsValidGo(t *testing.T) {
	var methods []*outputast.ClassMethod

	for _, name := range []string{"createInternal", "detectChangesInternal", "destroyInternal"} {
		m := viewcompiler.NewCompileMethod(snapview.StaticGenConfig(true))
		m.ResetDebugInfo(viewcompiler.NodeIndex(len(methods)), nil)
		m.Push(
			outputast.ThisExpr.CallMethod("log", outputast.Literal(name), outputast.Literal(true), outputast.Literal(1.5)).ToStmt(),
			&outputast.ReturnStatement{Value: outputast.NullExpr},
		)
		methods = append(methods, viewcompiler.ClassMethodOf(name, []outputast.FnParam{{Name: "ctx", Type: "*context.Context"}}, m))
	}

	var buf bytes.Buffer

	require.NoError(t, New(WithPackageName("views")).Generate(&buf, methods...))

	f, err := parser.ParseFile(token.NewFileSet(), "view_gen.go", buf.String(), parser.AllErrors)
	require.NoError(t, err)
	assert.Equal(t, 3, len(f.Decls))
	assert.Contains(t, buf.String(), `v.Log("detectChangesInternal", true, 1.5)`)
	assert.Contains(t, buf.String(), "func (v *View) DestroyInternal(ctx *context.Context)")
}

func TestGenerateRejectsClashingNames(t *testing.T) {
	body := []outputast.Statement{outputast.ThisExpr.CallMethod("render").ToStmt()}

	var buf bytes.Buffer

	err := New().Generate(&buf,
		&outputast.ClassMethod{Name: "set_text", Body: body},
		&outputast.ClassMethod{Name: "setText", Body: body},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerateGoCode)
	assert.Contains(t, err.Error(), "SetText")
}

func TestGenerateUnsupportedNodes(t *testing.T) {
	tests := []struct {
		name string
		body []outputast.Statement
	}{
		{
			name: "unsupported literal",
			body: []outputast.Statement{outputast.Literal([]int{1}).ToStmt()},
		},
		{
			name: "unsupported statement",
			body: []outputast.Statement{nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := New().Generate(&buf, &outputast.ClassMethod{Name: "broken", Body: tt.body})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrGenerateGoCode)
			assert.Contains(t, err.Error(), "broken statement 0")
		})
	}
}
