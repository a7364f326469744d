// Package report renders normalized preview manifests as a size-bounded
// Markdown document.
package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/previewkit/cli/internal/preview"
)

// Defaults for Options.
const (
	DefaultIdentifier  = "compose-preview-report"
	DefaultMaxChars    = 60000
	DefaultInlineLimit = 700000
)

const title = "## Compose Preview Results"

// Options configures rendering.
type Options struct {
	// Identifier is embedded as a hidden HTML comment so an external poster
	// can update the comment in place. Empty omits the comment.
	Identifier string

	// ImageRoot is the root used to relativize image paths and as the last
	// resort when resolving them.
	ImageRoot string

	// ImageMode selects how images are referenced.
	ImageMode ImageMode

	// InlineLimit is the largest file, in bytes, that inline mode embeds.
	InlineLimit int64

	// MaxChars is the document size ceiling in characters.
	MaxChars int

	// ArtifactURL, when set, links the uploaded preview bundle in the header.
	ArtifactURL string
}

func (o Options) withDefaults() Options {
	if o.InlineLimit <= 0 {
		o.InlineLimit = DefaultInlineLimit
	}
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	return o
}

// Document is a rendered report.
type Document struct {
	// Markdown is the report body.
	Markdown string

	// Omitted lists the titles of modules dropped to respect MaxChars.
	Omitted []string
}

// Chars returns the document length in characters.
func (d *Document) Chars() int {
	return utf8.RuneCountInString(d.Markdown)
}

// budget accumulates sections while tracking the character count.
type budget struct {
	b     strings.Builder
	chars int
	max   int
}

func (b *budget) fits(s string) bool {
	return b.chars+utf8.RuneCountInString(s) <= b.max
}

// tryAppend appends s only if the document stays within the ceiling.
func (b *budget) tryAppend(s string) bool {
	if !b.fits(s) {
		return false
	}
	b.b.WriteString(s)
	b.chars += utf8.RuneCountInString(s)
	return true
}

// Render produces the Markdown report for the given modules and global issues.
// Whenever a module is omitted the document ends with a notice naming as many
// omitted modules as fit.
func Render(modules []*preview.ModuleReport, issues []string, opts Options) *Document {
	opts = opts.withDefaults()

	body, omitted := layout(modules, issues, opts, opts.MaxChars)
	if len(omitted) == 0 {
		return &Document{Markdown: body}
	}

	// Pack again leaving room for the bare notice.
	reserve := utf8.RuneCountInString(footer(nil, opts.MaxChars))
	body, omitted = layout(modules, issues, opts, opts.MaxChars-reserve)

	doc := &budget{max: opts.MaxChars}
	doc.tryAppend(body)
	names := omitted
	for !doc.tryAppend(footer(names, opts.MaxChars)) {
		if len(names) == 0 {
			// The ceiling is shorter than the bare notice.
			doc.tryAppend(truncate(notice(nil, opts.MaxChars), opts.MaxChars))
			break
		}
		names = names[:len(names)-1]
	}

	return &Document{Markdown: doc.b.String(), Omitted: omitted}
}

// layout packs the header, global issues, and whole module sections into limit
// characters and reports the titles of the modules that did not fit.
func layout(modules []*preview.ModuleReport, issues []string, opts Options, limit int) (string, []string) {
	doc := &budget{max: limit}

	// The header is tiny; it is clipped only when limit cannot hold it.
	head := header(modules, opts)
	if !doc.tryAppend(head) && limit > 0 {
		doc.tryAppend(truncate(head, limit))
	}

	if len(issues) > 0 {
		if !doc.tryAppend(issuesBlock(issues)) {
			doc.tryAppend(fmt.Sprintf("\n**Global issues:** %d issue(s) omitted to stay under the size limit.\n", len(issues)))
		}
	}

	var omitted []string
	for _, m := range modules {
		if !doc.tryAppend(moduleSection(m, opts)) {
			omitted = append(omitted, m.Title())
		}
	}
	return doc.b.String(), omitted
}

func header(modules []*preview.ModuleReport, opts Options) string {
	total := 0
	for _, m := range modules {
		total += m.PreviewCount()
	}

	var lines []string
	if opts.Identifier != "" {
		lines = append(lines, fmt.Sprintf("<!-- %s -->", opts.Identifier))
	}
	lines = append(lines,
		title,
		"",
		fmt.Sprintf("Rendered %d previews across %d module(s).", total, len(modules)),
	)
	if opts.ArtifactURL != "" {
		lines = append(lines, "", fmt.Sprintf("[Download all preview images](%s)", opts.ArtifactURL))
	}
	return strings.Join(lines, "\n") + "\n"
}

func issuesBlock(issues []string) string {
	lines := []string{"", "**Global issues:**"}
	lines = append(lines, bullets(issues)...)
	return strings.Join(lines, "\n") + "\n"
}

func bullets(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, "- "+strings.ReplaceAll(item, "\n", " "))
	}
	return out
}

func moduleSection(m *preview.ModuleReport, opts Options) string {
	lines := []string{"", "### " + m.Title(), ""}

	if m.ManifestFile != "" {
		lines = append(lines, fmt.Sprintf("Manifest: `%s`", m.ManifestFile), "")
	}
	if len(m.EnvironmentIssues) > 0 {
		lines = append(lines, "**Environment issues:**")
		lines = append(lines, bullets(m.EnvironmentIssues)...)
		lines = append(lines, "")
	}
	if len(m.MissingImages) > 0 {
		lines = append(lines, "**Missing images:**")
		lines = append(lines, bullets(m.MissingImages)...)
		lines = append(lines, "")
	}

	if m.PreviewCount() == 0 {
		lines = append(lines, "_No previews were rendered for this module._")
		return strings.Join(lines, "\n") + "\n"
	}

	for _, key := range m.Keys() {
		lines = append(lines, groupBlock(m, key, opts)...)
	}
	return strings.Join(lines, "\n")
}

func groupBlock(m *preview.ModuleReport, key preview.Key, opts Options) []string {
	entries := m.Entries(key)
	noun := "variations"
	if len(entries) == 1 {
		noun = "variation"
	}

	lines := []string{
		"<details>",
		fmt.Sprintf("<summary>`%s` — %d %s</summary>", key.Label(), len(entries), noun),
		"",
		"| Variation | Preview |",
		"| --- | --- |",
	}
	for _, e := range entries {
		path := resolveImagePath(e, m.ManifestFile, opts.ImageRoot)
		lines = append(lines, fmt.Sprintf("| %s | %s |", variationCell(e), previewCell(e, path, opts)))
	}
	return append(lines, "", "</details>", "")
}

func footer(omitted []string, maxChars int) string {
	return "\n---\n\n" + notice(omitted, maxChars)
}

func notice(omitted []string, maxChars int) string {
	text := fmt.Sprintf("> Some modules were omitted to keep this report under %d characters", maxChars)
	if len(omitted) == 0 {
		return text + ".\n"
	}
	return text + ": " + strings.Join(omitted, ", ") + ".\n"
}
