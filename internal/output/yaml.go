package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/zdir/internal/makevm"
)

// YAMLFormatter formats results as YAML.
type YAMLFormatter struct{}

// FormatResults formats r as a YAML document.
func (f *YAMLFormatter) FormatResults(r makevm.Results) (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results to YAML: %w", err)
	}
	return string(data), nil
}
