// Package config loads the docpatch configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Pages  PagesConfig `yaml:"pages"`
	Guides []GuidePage `yaml:"guides,omitempty"`
	Clean  CleanConfig `yaml:"clean"`
}

// PagesConfig controls how source files map to rendered pages.
type PagesConfig struct {
	// Overrides maps a source file stem to its rendered page when the default
	// Classes/<stem>.html convention does not apply.
	Overrides map[string]PageOverride `yaml:"overrides,omitempty"`
	// Summary lists the index pages that receive the union of all recovered
	// documentation, relative to the docs directory.
	Summary []string `yaml:"summary,omitempty"`
}

// PageOverride names the rendered page for one source file stem.
type PageOverride struct {
	Name    string `yaml:"name"`
	Section string `yaml:"section,omitempty"` // "Classes" or "Extensions"
}

// GuidePage pairs a markdown guide with the rendered shell it fills.
type GuidePage struct {
	Markdown string `yaml:"markdown"`
	Page     string `yaml:"page"` // relative to the docs directory
}

// CleanConfig drives the cleanup pass over rendered pages.
type CleanConfig struct {
	Replacements []Replacement `yaml:"replacements,omitempty"`
	// KeepTodos disables the built-in TODO stripping.
	KeepTodos bool `yaml:"keep_todos,omitempty"`
}

// Replacement is one ordered regex rewrite applied during cleanup.
type Replacement struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Pages: PagesConfig{
			Summary: []string{"Classes.html", "Extensions.html"},
		},
	}
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

// LoadOrDefault loads the file when it exists and falls back to Default
// otherwise. Read and parse errors on an existing file are still fatal.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(configPath)
}

func applyDefaults(config *Config) {
	if len(config.Pages.Summary) == 0 {
		config.Pages.Summary = []string{"Classes.html", "Extensions.html"}
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := `# docpatch configuration
pages:
  # Source file stems whose rendered page does not follow the
  # Classes/<stem>.html convention.
  overrides:
    AudioSingletons:
      name: Audio
      section: Classes
    GeneralUIColor:
      name: UIColor
      section: Extensions
    GeneralUINavigationBar:
      name: UINavigationBar
      section: Extensions
  summary:
    - Classes.html
    - Extensions.html

guides:
  - markdown: ARCHITECTURE.md
    page: Architecture.html

clean:
  replacements:
    - pattern: '&copy; 2017'
      replacement: '&copy; 2025'
`
	return os.WriteFile(configPath, []byte(example), 0o644)
}
