// Package config provides configuration management for wikidict.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/wikidict/internal/dictionary"
	"github.com/open-cli-collective/wikidict/internal/extract"
	"github.com/open-cli-collective/wikidict/internal/kana"
	"github.com/open-cli-collective/wikidict/internal/view"
)

// maxJobs caps the extraction worker count.
const maxJobs = 256

// Config holds the wikidict configuration.
type Config struct {
	Template        string            `yaml:"template,omitempty"`
	WordArgument    string            `yaml:"word_argument,omitempty"`
	ReadingArgument string            `yaml:"reading_argument,omitempty"`
	RubyTemplate    string            `yaml:"ruby_template,omitempty"`
	PartOfSpeech    string            `yaml:"part_of_speech,omitempty"`
	Fixups          map[string]string `yaml:"fixups,omitempty"`
	Jobs            int               `yaml:"jobs,omitempty"`
	OutputFormat    string            `yaml:"output_format,omitempty"`
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	ex := extract.DefaultOptions()
	if c.Template == "" {
		c.Template = ex.Template
	}
	if c.WordArgument == "" {
		c.WordArgument = ex.WordArgument
	}
	if c.ReadingArgument == "" {
		c.ReadingArgument = ex.ReadingArgument
	}
	if c.RubyTemplate == "" {
		c.RubyTemplate = ex.RubyTemplate
	}
	if c.PartOfSpeech == "" {
		c.PartOfSpeech = dictionary.DefaultPartOfSpeech
	}
	if c.Fixups == nil {
		c.Fixups = make(map[string]string, len(kana.DefaultFixups))
		for k, v := range kana.DefaultFixups {
			c.Fixups[k] = v
		}
	}
	if c.Jobs == 0 {
		c.Jobs = 1
	}
	if c.OutputFormat == "" {
		c.OutputFormat = "plain"
	}
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.Template == "" {
		return errors.New("template is required")
	}
	if c.WordArgument == "" {
		return errors.New("word_argument is required")
	}
	if c.ReadingArgument == "" {
		return errors.New("reading_argument is required")
	}
	if c.WordArgument == c.ReadingArgument {
		return errors.New("word_argument and reading_argument must differ")
	}
	if c.Jobs < 1 || c.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	if err := view.ValidateFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("output_format: %w", err)
	}
	for k := range c.Fixups {
		if k == "" {
			return errors.New("fixups must not contain an empty key")
		}
	}
	return nil
}

// ExtractOptions returns the template lookup settings.
func (c *Config) ExtractOptions() extract.Options {
	return extract.Options{
		Template:        c.Template,
		WordArgument:    c.WordArgument,
		ReadingArgument: c.ReadingArgument,
		RubyTemplate:    c.RubyTemplate,
	}
}

// DictionaryOptions returns the entry building settings.
func (c *Config) DictionaryOptions() dictionary.Options {
	return dictionary.Options{
		RubyTemplate: c.RubyTemplate,
		PartOfSpeech: c.PartOfSpeech,
		Fixups:       c.Fixups,
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("WIKIDICT_TEMPLATE"); v != "" {
		c.Template = v
	}
	if v := os.Getenv("WIKIDICT_WORD_ARGUMENT"); v != "" {
		c.WordArgument = v
	}
	if v := os.Getenv("WIKIDICT_READING_ARGUMENT"); v != "" {
		c.ReadingArgument = v
	}
	if v := os.Getenv("WIKIDICT_RUBY_TEMPLATE"); v != "" {
		c.RubyTemplate = v
	}
	if v := os.Getenv("WIKIDICT_PART_OF_SPEECH"); v != "" {
		c.PartOfSpeech = v
	}
	if v := os.Getenv("WIKIDICT_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Jobs = n
		}
	}
}

// EnvVars lists the environment variables LoadFromEnv reads.
var EnvVars = []string{
	"WIKIDICT_TEMPLATE",
	"WIKIDICT_WORD_ARGUMENT",
	"WIKIDICT_READING_ARGUMENT",
	"WIKIDICT_RUBY_TEMPLATE",
	"WIKIDICT_PART_OF_SPEECH",
	"WIKIDICT_JOBS",
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "wikidict", "config.yml")
	}

	// Fall back to ~/.config/wikidict/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".wikidict", "config.yml")
	}

	return filepath.Join(home, ".config", "wikidict", "config.yml")
}

// ResolvePath returns path, or the default path when path is empty.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return DefaultConfigPath()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides it with environment
// variables and fills in defaults. A missing file is not an error; a file
// that exists but cannot be parsed is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, err
		}
		// If file doesn't exist, start with empty config
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}
