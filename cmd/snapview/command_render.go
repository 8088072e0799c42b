package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"

	"github.com/shibukawa/snapview"
	"github.com/shibukawa/snapview/langs/gogen"
	"github.com/shibukawa/snapview/methodscript"
	"github.com/shibukawa/snapview/outputast"
	"github.com/shibukawa/snapview/templateast"
	"github.com/shibukawa/snapview/viewcompiler"
)

// RenderCmd represents the render command
type RenderCmd struct {
	Scripts     []string `arg:"" help:"Method script files" type:"existingfile"`
	Output      string   `short:"o" help:"Output file path (- for stdout)"`
	Package     string   `help:"Package name of the generated file"`
	DebugInfo   bool     `help:"Emit debug markers regardless of configuration" xor:"debug"`
	NoDebugInfo bool     `help:"Omit debug markers regardless of configuration" xor:"debug"`
	Trace       bool     `help:"Print the debug context after every replayed step"`
}

func (r *RenderCmd) Run(ctx *Context) error {
	return r.render(ctx, os.Stdout, os.Stderr)
}

// render writes generated code to stdout when the output is "-".
// Trace lines always go to stderr.
func (r *RenderCmd) render(ctx *Context, stdout, stderr io.Writer) error {
	config, err := snapview.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	r.applyOverrides(config)

	output := config.Generation.Output
	if r.Output != "" {
		output = r.Output
	}

	if ctx.Verbose {
		color.Blue("Rendering %d script(s) with debug info %t", len(r.Scripts), config.GenDebugInfo())
	}

	var tracer methodscript.Tracer
	if r.Trace {
		tracer = traceStep(stderr)
	}

	var buf bytes.Buffer

	count, err := renderScripts(config, r.Scripts, output, &buf, tracer)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = io.Copy(stdout, &buf)
		return err
	}

	err = os.MkdirAll(filepath.Dir(output), 0755)
	if err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	err = os.WriteFile(output, buf.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	if !ctx.Quiet {
		color.Green("Generated %s (%d methods)", output, count)
	}

	return nil
}

func (r *RenderCmd) applyOverrides(config *snapview.Config) {
	switch {
	case r.DebugInfo:
		config.Generation.DebugInfo = true
	case r.NoDebugInfo:
		config.Generation.DebugInfo = false
	}

	if r.Package != "" {
		config.Generation.Package = r.Package
	}
}

// renderScripts compiles every script and writes one Go file to w.
// It returns the number of methods written; empty bodies are omitted.
func renderScripts(config *snapview.Config, paths []string, output string, w io.Writer, tracer methodscript.Tracer) (int, error) {
	if len(paths) == 0 {
		return 0, ErrNoScripts
	}

	seen := make(map[string]string, len(paths))
	methods := make([]*outputast.ClassMethod, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", path, err)
		}

		script, err := methodscript.Parse(data)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}

		name := gogen.ExportName(script.Method)
		if prev, ok := seen[name]; ok {
			return 0, fmt.Errorf("%w: %s in %s and %s", ErrDuplicateMethod, name, prev, path)
		}

		seen[name] = path

		method, err := script.Compile(config, tracer)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}

		if method != nil {
			methods = append(methods, method)
		}
	}

	g := gogen.New(gogen.WithConfig(gogen.ConfigFromGeneration(config.Generation), output))

	err := g.Generate(w, methods...)
	if err != nil {
		return 0, err
	}

	return len(methods), nil
}

func traceStep(w io.Writer) methodscript.Tracer {
	return func(index int, step methodscript.Step, m *viewcompiler.CompileMethod) {
		pendingIndex, pendingNode := m.Pending()
		currentIndex, currentNode := m.Current()

		line := fmt.Sprintf("[%d] %-6s pending=%s current=%s", index, step.Kind(),
			describe(pendingIndex, pendingNode), describe(currentIndex, currentNode))

		if m.Synced() {
			fmt.Fprintln(w, color.GreenString(line))
		} else {
			fmt.Fprintln(w, color.YellowString(line))
		}
	}
}

func describe(nodeIndex *int, node templateast.Node) string {
	index := "-"
	if nodeIndex != nil {
		index = strconv.Itoa(*nodeIndex)
	}

	if start, ok := templateast.StartOf(node); ok {
		return fmt.Sprintf("%s(%d:%d)", index, start.Line, start.Col)
	}

	return index
}
