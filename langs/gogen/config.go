// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gogen

import (
	"path/filepath"
	"strings"

	"github.com/shibukawa/snapview"
)

// Config represents Go generator settings taken from snapview.yaml
type Config struct {
	Package      string // Package name for generated code (auto-inferred if empty)
	Receiver     string // Receiver identifier of generated methods
	ReceiverType string // Receiver type, e.g. "*View"
}

// DefaultConfig returns default configuration for Go generator
func DefaultConfig() Config {
	return Config{
		Package:      "", // Will be auto-inferred from output path
		Receiver:     "v",
		ReceiverType: "*View",
	}
}

// ConfigFromGeneration converts the project generation settings
func ConfigFromGeneration(gen snapview.GenerationConfig) Config {
	return Config{
		Package:      gen.Package,
		Receiver:     gen.Receiver,
		ReceiverType: gen.ReceiverType,
	}
}

// InferPackageNameFromPath infers package name from output file path
func InferPackageNameFromPath(outputPath string) string {
	if outputPath == "" {
		return "generated"
	}

	dir := outputPath
	if strings.HasSuffix(dir, ".go") {
		dir = filepath.Dir(dir)
	}

	// Get the last directory component
	dir = filepath.Base(dir)
	if dir == "." || dir == string(filepath.Separator) {
		return "generated"
	}

	// Handle hyphens: split by '-' and take the longest part
	if strings.Contains(dir, "-") {
		parts := strings.Split(dir, "-")

		longest := ""
		for _, part := range parts {
			if len(part) > len(longest) {
				longest = part
			}
		}

		if longest != "" {
			dir = longest
		}
	}

	return sanitizePackageName(dir)
}

// sanitizePackageName sanitizes a name to be a valid Go package name
func sanitizePackageName(name string) string {
	// Replace invalid characters with underscores
	result := strings.ReplaceAll(name, "-", "_")
	result = strings.ReplaceAll(result, ".", "_")

	// Ensure it starts with a letter
	if len(result) > 0 && (result[0] >= '0' && result[0] <= '9') {
		result = "pkg_" + result
	}

	return result
}

// WithConfig creates a Generator option from configuration
func WithConfig(config Config, outputPath string) Option {
	return func(g *Generator) {
		// Auto-infer package name if not specified
		packageName := config.Package
		if packageName == "" {
			packageName = InferPackageNameFromPath(outputPath)
		}

		g.PackageName = packageName

		if config.Receiver != "" {
			g.Receiver = config.Receiver
		}

		if config.ReceiverType != "" {
			g.ReceiverType = config.ReceiverType
		}
	}
}

// Auto-inference examples:
// output: "./internal/views/view_gen.go" -> package: "views"
// output: "./pkg/user-views"             -> package: "views" (longest part after splitting by '-')
// output: "./generated/2024"             -> package: "pkg_2024"
