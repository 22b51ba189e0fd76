// Package config loads the zdir configuration file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendSMCLI   = "smcli"
	BackendLibvirt = "libvirt"
)

// Defaults applied by Normalize.
const (
	DefaultSMCLIPath             = "/opt/zthin/bin/smcli"
	DefaultMaxReservedMemory     = "64G"
	DefaultLibvirtSocket         = "/var/run/libvirt/libvirt-sock"
	DefaultLibvirtConnectTimeout = 5 * time.Second
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "text"
)

// Config is the complete zdir configuration.
type Config struct {
	Backend string        `yaml:"backend,omitempty"` // smcli (default) or libvirt
	SMCLI   SMCLIConfig   `yaml:"smcli,omitempty"`
	Libvirt LibvirtConfig `yaml:"libvirt,omitempty"`
	ZVM     ZVMConfig     `yaml:"zvm,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// SMCLIConfig configures the SMAPI command line client.
type SMCLIConfig struct {
	Path       string `yaml:"path,omitempty"`
	Sudo       bool   `yaml:"sudo,omitempty"`
	StagingDir string `yaml:"staging_dir,omitempty"` // directory for directory-entry files (default: os.TempDir)
}

// LibvirtConfig configures the libvirt backend.
type LibvirtConfig struct {
	Socket  string        `yaml:"socket,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ZVMConfig holds hypervisor-wide settings.
type ZVMConfig struct {
	// UserDefaultMaxReservedMemory caps the reserved storage written into new
	// directory entries, e.g. "64G".
	UserDefaultMaxReservedMemory string `yaml:"user_default_max_reserved_memory,omitempty"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // text or json
}

// Default returns a normalized configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

// Normalize sanitizes user input and fills in defaults.
// This is called automatically by LoadFromFile before validation.
func (c *Config) Normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendSMCLI
	}

	if c.SMCLI.Path == "" {
		c.SMCLI.Path = DefaultSMCLIPath
	}

	if c.Libvirt.Socket == "" {
		c.Libvirt.Socket = DefaultLibvirtSocket
	}
	if c.Libvirt.Timeout == 0 {
		c.Libvirt.Timeout = DefaultLibvirtConnectTimeout
	}

	c.ZVM.UserDefaultMaxReservedMemory = strings.ToUpper(strings.TrimSpace(c.ZVM.UserDefaultMaxReservedMemory))
	if c.ZVM.UserDefaultMaxReservedMemory == "" {
		c.ZVM.UserDefaultMaxReservedMemory = DefaultMaxReservedMemory
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSMCLI, BackendLibvirt:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendSMCLI, BackendLibvirt, c.Backend)
	}

	if c.Backend == BackendSMCLI && c.SMCLI.Path == "" {
		return fmt.Errorf("smcli.path is required")
	}

	if c.Libvirt.Timeout < 0 {
		return fmt.Errorf("libvirt.timeout must be >= 0, got %s", c.Libvirt.Timeout)
	}

	if _, err := c.MaxReservedMemoryMB(); err != nil {
		return fmt.Errorf("zvm.user_default_max_reserved_memory: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}

// MaxReservedMemoryMB returns the reserved memory ceiling in megabytes.
func (c *Config) MaxReservedMemoryMB() (int, error) {
	return ParseSizeMB(c.ZVM.UserDefaultMaxReservedMemory)
}

// ParseSizeMB converts a size with an M, G or T suffix into whole megabytes.
// Fractional magnitudes such as "1.5G" are allowed and truncated after
// conversion.
func ParseSizeMB(s string) (int, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if len(v) < 2 {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	var factor float64
	switch v[len(v)-1] {
	case 'M':
		factor = 1
	case 'G':
		factor = 1024
	case 'T':
		factor = 1024 * 1024
	default:
		return 0, fmt.Errorf("size %q must end in M, G or T", s)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("size %q must not be negative", s)
	}
	return int(n * factor), nil
}

// LoadFromFile loads a configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads a configuration from YAML bytes.
func LoadFromYAML(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Normalize user input before validation
	config.Normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
