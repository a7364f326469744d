package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/previewkit/cli/internal/preview"
)

const (
	// maxVariationChars bounds the variation summary, ellipsis included.
	maxVariationChars = 240

	defaultConfiguration = "Default configuration"
)

// variationCell renders the Variation column for one entry.
func variationCell(entry preview.Entry) string {
	var parts []string
	if entry.Configuration != "" {
		parts = append(parts, entry.Configuration)
	}
	if entry.ParameterInstance != nil {
		parts = append(parts, fmt.Sprintf("parameter #%d", *entry.ParameterInstance))
	}
	for _, p := range entry.Parameters {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, p.ValueSummary))
	}
	if entry.Placeholder {
		parts = append(parts, "placeholder image")
	}

	summary := defaultConfiguration
	if len(parts) > 0 {
		summary = truncate(strings.Join(parts, ", "), maxVariationChars)
	}

	if entry.RenderError != "" {
		msg := strings.Join(strings.Fields(entry.RenderError), " ")
		msg = strings.ReplaceAll(msg, "`", "'")
		summary += "\nRender error:\n`" + msg + "`"
	}

	return escapeCell(summary)
}

// truncate shortens s to at most limit characters, ending with an ellipsis
// when anything was cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

// escapeCell makes text safe to embed in a Markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}
