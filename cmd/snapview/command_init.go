package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/shibukawa/snapview"
)

// InitCmd represents the init command
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(ctx *Context) error {
	if ctx.Verbose {
		color.Blue("Initializing SnapView project")
	}

	err := initProject(".", ctx.Config, i.Force)
	if err != nil {
		return err
	}

	if !ctx.Quiet {
		color.Green("SnapView project initialized successfully")
		fmt.Println("\nNext steps:")
		fmt.Printf("1. Edit %s to configure code generation\n", ctx.Config)
		fmt.Println("2. Describe view methods in the scripts/ directory")
		fmt.Println("3. Run 'snapview render scripts/*.yaml' to generate Go code")
	}

	return nil
}

// initProject writes the default configuration and a sample method script under root.
// An absolute configName is used as is. Existing files are kept unless force is set.
func initProject(root, configName string, force bool) error {
	configPath := configName
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(root, configName)
	}

	scriptPath := filepath.Join(root, "scripts", "create_internal.yaml")

	if !force {
		for _, path := range []string{configPath, scriptPath} {
			if fileExists(path) {
				return fmt.Errorf("%w: %s", ErrFileExists, path)
			}
		}
	}

	data, err := snapview.DefaultConfig().Marshal()
	if err != nil {
		return err
	}

	err = writeFile(configPath, data)
	if err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}

	err = writeFile(scriptPath, []byte(sampleScript))
	if err != nil {
		return fmt.Errorf("failed to create sample script: %w", err)
	}

	return nil
}

const sampleScript = `method: createInternal
source: app.html
params:
  - name: rootSelector
    type: string
nodes:
  - id: div
    line: 0
    col: 0
  - id: span
    line: 1
    col: 2
steps:
  - record: {node_index: 0, node: div}
  - stmt: {method: createElement, args: ["div"]}
  - record: {node_index: 1, node: span}
  - stmts:
      - {method: createElement, args: ["span"]}
      - {method: setText, args: [1, "hello"]}
`

func writeFile(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
