// Package output formats MakeVM results for display (table, YAML, JSON).
package output

import (
	"fmt"

	"github.com/jbweber/zdir/internal/makevm"
)

// Format represents an output format type.
type Format string

const (
	// FormatTable is a human-readable format.
	FormatTable Format = "table"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
	// FormatJSON is JSON for machine consumption.
	FormatJSON Format = "json"
)

// Formatter formats MakeVM results.
type Formatter interface {
	FormatResults(r makevm.Results) (string, error)
}

// Options contains options for formatting output.
type Options struct {
	Format Format
	// NoHeaders omits the header row in table format.
	NoHeaders bool
}

// NewFormatter creates a new Formatter based on the specified format.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable:
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat checks if a format string is valid.
func ValidateFormat(format string) error {
	switch Format(format) {
	case FormatTable, FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid formats: table, yaml, json)", format)
	}
}
