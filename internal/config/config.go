package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the monadic.yaml configuration. Command-line flags
// override every field.
type Config struct {
	// Capability is the default capability used by run, repl and remote.
	Capability string `yaml:"capability,omitempty"`

	// TraceDB is a SQLite file that receives capability-boundary events.
	// Empty disables persistence.
	TraceDB string `yaml:"trace_db,omitempty"`

	// History is the REPL history file. Relative paths are resolved
	// against the user's home directory.
	History string `yaml:"history,omitempty"`

	// Addr is the gRPC listen/dial address.
	Addr string `yaml:"addr,omitempty"`

	// Verbose logs every capability-boundary event.
	Verbose bool `yaml:"verbose,omitempty"`

	// Take bounds how many elements of a lazy sequence result are printed.
	Take int `yaml:"take,omitempty"`

	// Context holds initial script variables.
	Context map[string]interface{} `yaml:"context,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a monadic.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses monadic.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for monadic.yaml starting from dir and walking up
// to parent directories. It returns "" and a nil error when none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	if c.Take < 0 {
		return fmt.Errorf("%s: take must not be negative", path)
	}
	for name := range c.Context {
		if !isIdentifier(name) {
			return fmt.Errorf("%s: context: %q is not a valid variable name", path, name)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Capability == "" {
		c.Capability = DefaultCapability
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.History == "" {
		c.History = DefaultHistoryFile
	}
	if c.Take == 0 {
		c.Take = DefaultTake
	}
}

// HistoryPath resolves History against the home directory.
func (c *Config) HistoryPath() string {
	if filepath.IsAbs(c.History) {
		return c.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.History
	}
	return filepath.Join(home, c.History)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}
