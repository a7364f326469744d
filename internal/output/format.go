package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format specifies an output format.
type Format string

const (
	// FormatYAML outputs in YAML format.
	FormatYAML Format = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON Format = "json"

	// FormatTable outputs a summary table.
	FormatTable Format = "table"

	// FormatTree outputs an indented tree.
	FormatTree Format = "tree"
)

// String returns the string representation of the output format.
func (f Format) String() string {
	return string(f)
}

// Valid checks if the output format is valid.
func (f Format) Valid() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable, FormatTree:
		return true
	default:
		return false
	}
}

// Structured reports whether f is a machine-readable encoding.
func (f Format) Structured() bool {
	return f == FormatYAML || f == FormatJSON
}

// ParseFormat parses a string into a Format. The second return value
// reports whether the input named a known format.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(s))
	if f == "yml" {
		f = FormatYAML
	}
	if !f.Valid() {
		return Format(s), false
	}
	return f, true
}

// WriteStructured encodes v to w in the given format.
func WriteStructured(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}
