package viewcompiler

import "github.com/shibukawa/snapview/outputast"

// ClassMethodOf wraps the finished body of m into a generated method.
// An empty body yields nil so the assembler can omit the method entirely.
func ClassMethodOf(name string, params []outputast.FnParam, m *CompileMethod) *outputast.ClassMethod {
	if m == nil || m.IsEmpty() {
		return nil
	}

	return &outputast.ClassMethod{
		Name:   name,
		Params: params,
		Body:   m.Finish(),
	}
}
