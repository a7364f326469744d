package manifest

import "github.com/previewkit/cli/internal/preview"

// View is a serializable snapshot of a normalized manifest, used by
// `preview inspect`.
type View struct {
	Previews int          `json:"previews" yaml:"previews"`
	Modules  []ModuleView `json:"modules" yaml:"modules"`
	Issues   []string     `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// ModuleView is the serializable form of a preview.ModuleReport.
type ModuleView struct {
	Title             string          `json:"title" yaml:"title"`
	ModulePath        string          `json:"modulePath" yaml:"modulePath"`
	Variant           string          `json:"variant,omitempty" yaml:"variant,omitempty"`
	ManifestFile      string          `json:"manifestFile,omitempty" yaml:"manifestFile,omitempty"`
	EnvironmentIssues []string        `json:"environmentIssues,omitempty" yaml:"environmentIssues,omitempty"`
	MissingImages     []string        `json:"missingImages,omitempty" yaml:"missingImages,omitempty"`
	Groups            []preview.Group `json:"groups" yaml:"groups"`
}

// View returns a serializable snapshot of r.
func (r *Result) View() View {
	v := View{
		Previews: r.PreviewCount(),
		Modules:  make([]ModuleView, 0, len(r.Modules)),
		Issues:   r.Issues,
	}
	for _, m := range r.Modules {
		v.Modules = append(v.Modules, ModuleView{
			Title:             m.Title(),
			ModulePath:        m.ModulePath,
			Variant:           m.Variant,
			ManifestFile:      m.ManifestFile,
			EnvironmentIssues: m.EnvironmentIssues,
			MissingImages:     m.MissingImages,
			Groups:            m.Groups(),
		})
	}
	return v
}
