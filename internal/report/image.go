package report

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/previewkit/cli/internal/preview"
)

// AttachmentScheme prefixes placeholder image references.
const AttachmentScheme = "attachment://"

const (
	imageAlt         = "Preview"
	imageUnavailable = "Image unavailable"
)

var dataURIMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// resolveImagePath returns the first existing candidate for the entry's
// image, or "" when none exists. Candidates, in order: the resolved output
// then the plain output (absolute as-is, relative to the manifest's
// directory), then both again relative to imageRoot.
func resolveImagePath(entry preview.Entry, manifestFile, imageRoot string) string {
	manifestDir := ""
	if manifestFile != "" {
		manifestDir = filepath.Dir(manifestFile)
	}

	var candidates []string
	for _, p := range []string{entry.ResolvedOutput, entry.Output} {
		if p == "" {
			continue
		}
		if filepath.IsAbs(p) {
			candidates = append(candidates, p)
		} else {
			candidates = append(candidates, filepath.Join(manifestDir, p))
		}
	}
	if imageRoot != "" {
		for _, p := range []string{entry.ResolvedOutput, entry.Output} {
			if p != "" && !filepath.IsAbs(p) {
				candidates = append(candidates, filepath.Join(imageRoot, p))
			}
		}
	}

	for _, c := range candidates {
		if isFile(c) {
			return c
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// previewCell renders the Preview column for one entry.
func previewCell(entry preview.Entry, path string, opts Options) string {
	if path == "" {
		return imageUnavailable
	}

	switch opts.ImageMode {
	case ImageModeInline:
		if uri, ok := inlineImage(entry, path, opts.InlineLimit); ok {
			return "![" + imageAlt + "](" + uri + ")"
		}
		return attachmentRef(path, opts.ImageRoot)
	case ImageModeAttachment:
		return attachmentRef(path, opts.ImageRoot)
	case ImageModeLink:
		return "`" + escapeCell(relativePath(path, opts.ImageRoot)) + "`"
	default:
		return imageUnavailable
	}
}

func attachmentRef(path, imageRoot string) string {
	return "![" + imageAlt + "](" + AttachmentScheme + escapeCell(relativePath(path, imageRoot)) + ")"
}

// inlineImage encodes path as a data URI when it is present, not flagged
// missing, and no larger than limit bytes.
func inlineImage(entry preview.Entry, path string, limit int64) (string, bool) {
	if entry.MissingImage {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > limit {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil || int64(len(data)) > limit {
		return "", false
	}

	mimeType, ok := dataURIMimeTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), true
}

// relativePath returns path relative to imageRoot using forward slashes.
// Paths outside imageRoot are returned absolute.
func relativePath(path, imageRoot string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if imageRoot == "" {
		return filepath.ToSlash(path)
	}
	root, err := filepath.Abs(imageRoot)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
