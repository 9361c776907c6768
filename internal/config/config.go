package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rexnie/gentags/internal/filelock"
	"github.com/rexnie/gentags/internal/scan"
)

// Default file names for generated artifacts.
const (
	DefaultIndexFile  = "gentags.files"
	DefaultConfigFile = "gentags.yaml"
	DefaultCmdFile    = "gentags.cmd"
	DefaultLockFile   = ".gentags.lock"
)

// Config holds the effective settings for one gentags invocation.
// It is built once from defaults, config file, and CLI flags, and is
// never mutated after that.
type Config struct {
	// Dirs is the ordered list of root directories to scan.
	Dirs []string `yaml:"dirs"`

	// Types is the list of language tags to include.
	Types []string `yaml:"types"`

	// Exclude is the list of path prefixes to skip, subtrees included.
	Exclude []string `yaml:"exclude"`

	// Depth limits traversal below each root; -1 means unbounded.
	Depth int `yaml:"depth"`

	// IndexFile is the path of the generated file index.
	IndexFile string `yaml:"index_file"`

	// LogLevel sets console verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with the stock gentags defaults: C/C++
// sources, unbounded depth, artifacts in the working directory.
func Default() *Config {
	return &Config{
		Dirs:      []string{},
		Types:     []string{"c_cpp"},
		Exclude:   []string{},
		Depth:     scan.UnboundedDepth,
		IndexFile: DefaultIndexFile,
		LogLevel:  "info",
	}
}

// Load reads configuration from path, merged over the defaults.
// A missing file is not an error and yields the defaults unchanged;
// a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaults so keys absent from the file keep
	// their default values while present keys win, including zero
	// values like depth: 0.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Write persists the effective configuration to path as YAML, using an
// atomic write so a crash never leaves a truncated config behind.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := filelock.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Depth < scan.UnboundedDepth {
		return fmt.Errorf("depth must be >= 0 (or %d for unbounded), got %d", scan.UnboundedDepth, c.Depth)
	}

	for _, tag := range c.Types {
		if !scan.IsSupportedLanguage(tag) {
			return fmt.Errorf("%w: %q", scan.ErrUnknownLanguage, tag)
		}
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.IndexFile == "" {
		return fmt.Errorf("index_file cannot be empty")
	}

	return nil
}

// ScanConfig converts the configuration into a scan request.
func (c *Config) ScanConfig() scan.Config {
	return scan.Config{
		Dirs:    c.Dirs,
		Exclude: c.Exclude,
		Depth:   c.Depth,
		Types:   c.Types,
	}
}
