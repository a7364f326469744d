// Package preview defines the normalized in-memory model of a preview
// manifest: preview keys, entries, and per-module reports.
package preview

import (
	"fmt"
	"sort"
	"strings"
)

// UnknownModule is the module path used when neither the manifest entry nor
// its embedded manifest names one.
const UnknownModule = "<unknown module>"

// unspecifiedVariant is shown in titles when a module has no variant.
const unspecifiedVariant = "<unspecified variant>"

// Key identifies a group of preview variations. Two entries with equal keys
// are variations of the same visual unit.
type Key struct {
	FQCN   string `json:"fqcn" yaml:"fqcn"`
	Method string `json:"methodName,omitempty" yaml:"methodName,omitempty"`
}

// SimpleName returns the last dot-separated segment of the FQCN.
func (k Key) SimpleName() string {
	if i := strings.LastIndex(k.FQCN, "."); i >= 0 {
		return k.FQCN[i+1:]
	}
	return k.FQCN
}

// Label returns "Simple.Method", or the simple name alone when there is no method.
func (k Key) Label() string {
	simple := k.SimpleName()
	switch {
	case simple == "" && k.Method == "":
		return "<unknown composable>"
	case k.Method == "":
		return simple
	case simple == "":
		return k.Method
	default:
		return simple + "." + k.Method
	}
}

// Parameter describes one named preview parameter.
type Parameter struct {
	Name         string `json:"name" yaml:"name"`
	Index        *int   `json:"index,omitempty" yaml:"index,omitempty"`
	ValueSummary string `json:"valueSummary,omitempty" yaml:"valueSummary,omitempty"`
}

// Entry is one rendered (or failed) preview instance.
type Entry struct {
	ModulePath        string      `json:"modulePath" yaml:"modulePath"`
	Variant           string      `json:"variant,omitempty" yaml:"variant,omitempty"`
	DisplayName       string      `json:"displayName" yaml:"displayName"`
	Configuration     string      `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Output            string      `json:"output,omitempty" yaml:"output,omitempty"`
	ResolvedOutput    string      `json:"resolvedOutput,omitempty" yaml:"resolvedOutput,omitempty"`
	Placeholder       bool        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	RenderError       string      `json:"renderError,omitempty" yaml:"renderError,omitempty"`
	Parameters        []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ParameterInstance *int        `json:"parameterInstanceIndex,omitempty" yaml:"parameterInstanceIndex,omitempty"`
	MissingImage      bool        `json:"missingImage,omitempty" yaml:"missingImage,omitempty"`
}

// Group is one key together with its ordered variations.
type Group struct {
	Key     Key     `json:"key" yaml:"key"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// ModuleReport collects the previews rendered for one (module, variant) pair.
type ModuleReport struct {
	ModulePath        string
	Variant           string
	ManifestFile      string
	EnvironmentIssues []string
	MissingImages     []string

	groups map[Key][]Entry
	keys   []Key
}

// NewModuleReport creates an empty report for a module/variant pair.
func NewModuleReport(modulePath, variant, manifestFile string) *ModuleReport {
	return &ModuleReport{
		ModulePath:   modulePath,
		Variant:      variant,
		ManifestFile: manifestFile,
		groups:       make(map[Key][]Entry),
	}
}

// Title returns "{module} — {variant}".
func (m *ModuleReport) Title() string {
	variant := m.Variant
	if variant == "" {
		variant = unspecifiedVariant
	}
	return fmt.Sprintf("%s — %s", m.ModulePath, variant)
}

// Add appends an entry to its key's group. Keys keep first-seen order.
func (m *ModuleReport) Add(key Key, entry Entry) {
	if _, ok := m.groups[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.groups[key] = append(m.groups[key], entry)
}

// SortEntries orders every group by display name then configuration,
// case-insensitively. Group order itself is untouched.
func (m *ModuleReport) SortEntries() {
	for _, key := range m.keys {
		SortEntries(m.groups[key])
	}
}

// Keys returns the group keys in first-seen order.
func (m *ModuleReport) Keys() []Key {
	return append([]Key(nil), m.keys...)
}

// Entries returns the variations recorded for key.
func (m *ModuleReport) Entries(key Key) []Entry {
	return m.groups[key]
}

// Groups returns all groups in first-seen key order.
func (m *ModuleReport) Groups() []Group {
	groups := make([]Group, 0, len(m.keys))
	for _, key := range m.keys {
		groups = append(groups, Group{Key: key, Entries: m.groups[key]})
	}
	return groups
}

// PreviewCount returns the total number of entries across all groups.
func (m *ModuleReport) PreviewCount() int {
	n := 0
	for _, entries := range m.groups {
		n += len(entries)
	}
	return n
}

// SortEntries stably sorts entries by (display name, configuration), ignoring case.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ni, nj := strings.ToLower(entries[i].DisplayName), strings.ToLower(entries[j].DisplayName)
		if ni != nj {
			return ni < nj
		}
		return strings.ToLower(entries[i].Configuration) < strings.ToLower(entries[j].Configuration)
	})
}

// SortModules orders reports by module path, then variant.
func SortModules(modules []*ModuleReport) {
	sort.SliceStable(modules, func(i, j int) bool {
		if modules[i].ModulePath != modules[j].ModulePath {
			return modules[i].ModulePath < modules[j].ModulePath
		}
		return modules[i].Variant < modules[j].Variant
	})
}
