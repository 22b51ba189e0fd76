package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/zdir/internal/makevm"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// FormatResults formats r as an indented JSON object.
func (f *JSONFormatter) FormatResults(r makevm.Results) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	return string(data) + "\n", nil
}
