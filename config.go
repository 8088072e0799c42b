package snapview

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// GenConfig is the capability the view compiler needs from configuration.
type GenConfig interface {
	GenDebugInfo() bool
}

// StaticGenConfig is a GenConfig with a fixed value.
type StaticGenConfig bool

// GenDebugInfo returns the fixed flag value
func (c StaticGenConfig) GenDebugInfo() bool {
	return bool(c)
}

// Config represents the SnapView configuration
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
}

// GenerationConfig represents code generation settings
type GenerationConfig struct {
	// Emit debug location markers into generated method bodies
	DebugInfo bool `yaml:"gen_debug_info"`

	// Empty means "infer from Output"
	Package      string `yaml:"package,omitempty"`
	Receiver     string `yaml:"receiver"`
	ReceiverType string `yaml:"receiver_type"`
	Output       string `yaml:"output"`
}

// GenDebugInfo reports whether debug markers should be generated
func (c *Config) GenDebugInfo() bool {
	if c == nil {
		return false
	}

	return c.Generation.DebugInfo
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := DefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data, applying defaults and environment expansion.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	// Parse YAML with strict mode to detect unknown fields
	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			DebugInfo:    false,
			Package:      "",
			Receiver:     "v",
			ReceiverType: "*View",
			Output:       "./views/view_gen.go",
		},
	}
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return data, nil
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	defaults := DefaultConfig().Generation

	if config.Generation.Receiver == "" {
		config.Generation.Receiver = defaults.Receiver
	}

	if config.Generation.ReceiverType == "" {
		config.Generation.ReceiverType = defaults.ReceiverType
	}

	if config.Generation.Output == "" {
		config.Generation.Output = defaults.Output
	}
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	gen := config.Generation

	if gen.Package != "" && !identPattern.MatchString(gen.Package) {
		return fmt.Errorf("%w: generation.package '%s' is not a valid identifier", ErrConfigValidation, gen.Package)
	}

	if !identPattern.MatchString(gen.Receiver) {
		return fmt.Errorf("%w: generation.receiver '%s' is not a valid identifier", ErrConfigValidation, gen.Receiver)
	}

	if !identPattern.MatchString(strings.TrimPrefix(gen.ReceiverType, "*")) {
		return fmt.Errorf("%w: generation.receiver_type '%s' must be a type name or pointer to one", ErrConfigValidation, gen.ReceiverType)
	}

	return nil
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in configuration values
func expandConfigEnvVars(config *Config) {
	config.Generation.Package = expandEnvVars(config.Generation.Package)
	config.Generation.Output = expandEnvVars(config.Generation.Output)
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}
