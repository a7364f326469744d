package attachment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	oerrors "github.com/previewkit/cli/internal/errors"
	"github.com/previewkit/cli/internal/output"
)

// placeholderPattern matches ![alt](attachment://relative/path).
var placeholderPattern = regexp.MustCompile(`!\[([^\]]*)\]\(attachment://([^)]+)\)`)

const defaultAlt = "Preview"

// Uploader uploads one file and returns its hosted URL.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// Stats summarizes one rewrite.
type Stats struct {
	Placeholders int
	Uploaded     int
	Reused       int
	Unavailable  int
}

// Resolver rewrites attachment placeholders to hosted URLs. Each distinct
// resolved file is uploaded at most once per Resolver.
type Resolver struct {
	uploader  Uploader
	imageRoot string
	cache     map[string]string
}

// NewResolver creates a Resolver that resolves placeholder paths against imageRoot.
func NewResolver(uploader Uploader, imageRoot string) *Resolver {
	if abs, err := filepath.Abs(imageRoot); err == nil {
		imageRoot = abs
	}
	return &Resolver{
		uploader:  uploader,
		imageRoot: imageRoot,
		cache:     make(map[string]string),
	}
}

// Rewrite replaces every placeholder in content. Placeholders whose file is
// missing become an italic "unavailable" notice; upload failures abort.
func (r *Resolver) Rewrite(ctx context.Context, content string) (string, Stats, error) {
	var (
		b     strings.Builder
		stats Stats
		last  int
	)

	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(content, -1) {
		alt := content[m[2]:m[3]]
		rel := content[m[4]:m[5]]
		if alt == "" {
			alt = defaultAlt
		}
		stats.Placeholders++

		b.WriteString(content[last:m[0]])
		last = m[1]

		path, ok := r.resolve(rel)
		if !ok {
			output.Warn("attachment unavailable", "path", output.FormatWarn(rel))
			stats.Unavailable++
			fmt.Fprintf(&b, "_%s image unavailable (%s)_", alt, rel)
			continue
		}

		hosted, cached := r.cache[path]
		if cached {
			output.Debug("reusing uploaded attachment", "path", path, "url", hosted)
			stats.Reused++
		} else {
			var err error
			hosted, err = r.uploader.Upload(ctx, path)
			if err != nil {
				return "", stats, err
			}
			output.Info("uploaded attachment", "path", output.FormatNoun(rel))
			output.Debug("attachment url", "path", path, "url", hosted)
			r.cache[path] = hosted
			stats.Uploaded++
		}
		fmt.Fprintf(&b, "![%s](%s)", alt, hosted)
	}
	b.WriteString(content[last:])

	return b.String(), stats, nil
}

// resolve maps a placeholder path to an existing absolute file. Pipes arrive
// escaped because placeholders sit inside Markdown table cells.
func (r *Resolver) resolve(rel string) (string, bool) {
	candidate := filepath.FromSlash(strings.ReplaceAll(rel, `\|`, "|"))
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(r.imageRoot, candidate)
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return "", false
	}
	return resolved, true
}

// RewriteFile rewrites the Markdown at commentPath and writes the result to
// outputPath, or back to commentPath when outputPath is empty.
func (r *Resolver) RewriteFile(ctx context.Context, commentPath, outputPath string) (Stats, error) {
	data, err := os.ReadFile(commentPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Stats{}, oerrors.NewNotFoundError(
				fmt.Sprintf("comment file not found: %s", commentPath),
				commentPath,
				"Generate the report first with `preview report --output`",
			)
		}
		return Stats{}, fmt.Errorf("reading comment %s: %w", commentPath, err)
	}

	updated, stats, err := r.Rewrite(ctx, string(data))
	if err != nil {
		return stats, err
	}

	if outputPath == "" {
		outputPath = commentPath
	}
	if err := os.WriteFile(outputPath, []byte(updated), 0o644); err != nil { //nolint:gosec // G306: comment body should be readable
		return stats, fmt.Errorf("writing comment %s: %w", outputPath, err)
	}
	return stats, nil
}

// ParseRepository splits "owner/repo".
func ParseRepository(s string) (owner, repo string, err error) {
	owner, repo, found := strings.Cut(s, "/")
	if !found || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", oerrors.NewValidationError(
			fmt.Sprintf("--repo must be formatted as owner/repo, got %q", s),
			"",
			"Pass --repo octocat/hello-world",
		)
	}
	return owner, repo, nil
}
