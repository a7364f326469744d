// Package manifest loads the aggregate preview manifest and normalizes it
// into the preview model.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	oerrors "github.com/previewkit/cli/internal/errors"
	"github.com/previewkit/cli/internal/preview"
)

// Result is the normalized form of an aggregate manifest.
type Result struct {
	// Modules is sorted by module path, then variant.
	Modules []*preview.ModuleReport

	// Issues are the top-level errors, in document order.
	Issues []string
}

// PreviewCount returns the number of previews across all modules.
func (r *Result) PreviewCount() int {
	n := 0
	for _, m := range r.Modules {
		n += m.PreviewCount()
	}
	return n
}

// Load reads and parses the manifest at path. A missing or unreadable file is
// reported before any normalization happens.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError(
				fmt.Sprintf("manifest file not found: %s", path),
				path,
				"Run the preview aggregation task first, or pass --manifest with the correct path",
			)
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &oerrors.DetailError{
			Type:     "invalid manifest",
			Message:  fmt.Sprintf("parsing JSON: %v", err),
			Location: path,
			Cause:    oerrors.ErrValidation,
		}
	}
	return doc, nil
}

// LoadAndNormalize loads the manifest at path and normalizes it.
func LoadAndNormalize(path string) (*Result, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Normalize(doc), nil
}

// Normalize converts a parsed manifest document into module reports.
// It never fails: missing or mistyped fields degrade to defaults.
func Normalize(doc any) *Result {
	root := object(doc)
	result := &Result{
		Issues: stringList(root["errors"]),
	}

	for _, raw := range list(root["manifests"]) {
		result.Modules = append(result.Modules, normalizeModule(object(raw)))
	}
	preview.SortModules(result.Modules)

	return result
}

func normalizeModule(entry map[string]any) *preview.ModuleReport {
	nested := object(entry["manifest"])

	modulePath := firstStr(entry, "modulePath")
	if modulePath == "" {
		modulePath = firstStr(nested, "modulePath")
	}
	if modulePath == "" {
		modulePath = preview.UnknownModule
	}

	variant := firstStr(entry, "variant")
	if variant == "" {
		variant = firstStr(nested, "variant")
	}

	report := preview.NewModuleReport(modulePath, variant, str(entry, "manifestFile"))
	report.EnvironmentIssues = stringList(entry["environmentIssues"])
	report.MissingImages = stringList(entry["missingImages"])

	for _, raw := range list(nested["previews"]) {
		key, e := normalizePreview(object(raw), modulePath, variant)
		report.Add(key, e)
	}
	report.SortEntries()

	return report
}

func normalizePreview(p map[string]any, modulePath, variant string) (preview.Key, preview.Entry) {
	key := preview.Key{
		FQCN:   str(p, "fqcn"),
		Method: str(p, "methodName"),
	}

	entry := preview.Entry{
		ModulePath:        modulePath,
		Variant:           variant,
		DisplayName:       str(p, "displayName"),
		Configuration:     str(p, "configurationSummary"),
		Output:            str(p, "output"),
		ResolvedOutput:    str(p, "resolvedOutput"),
		Placeholder:       boolean(p, "placeholder", false),
		RenderError:       str(p, "renderError"),
		ParameterInstance: intPtr(p, "parameterInstanceIndex"),
		MissingImage:      !boolean(p, "outputExists", true),
	}

	for _, raw := range list(p["parameters"]) {
		entry.Parameters = append(entry.Parameters, normalizeParameter(object(raw)))
	}

	return key, entry
}

func normalizeParameter(p map[string]any) preview.Parameter {
	param := preview.Parameter{
		Name:         firstStr(p, "displayName", "name"),
		Index:        intPtr(p, "index"),
		ValueSummary: str(p, "valueSummary"),
	}
	if param.Name == "" {
		if param.Index != nil {
			param.Name = fmt.Sprintf("arg%d", *param.Index)
		} else {
			param.Name = "parameter"
		}
	}
	return param
}
