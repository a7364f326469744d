package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/previewkit/cli/internal/preview"
)

// tableShape parses markdown as GFM and returns, per table, the header cell
// texts and the number of body rows.
func tableShape(t *testing.T, markdown string) (headers [][]string, rows []int) {
	t.Helper()
	src := []byte(markdown)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		table, ok := n.(*extast.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		var cells []string
		count := 0
		for child := table.FirstChild(); child != nil; child = child.NextSibling() {
			switch row := child.(type) {
			case *extast.TableHeader:
				for c := row.FirstChild(); c != nil; c = c.NextSibling() {
					cells = append(cells, string(c.Text(src))) //nolint:staticcheck // test helper
				}
			case *extast.TableRow:
				count++
			}
		}
		headers = append(headers, cells)
		rows = append(rows, count)
		return ast.WalkSkipChildren, nil
	})
	require.NoError(t, err)
	return headers, rows
}

func endToEndModule(t *testing.T) (*preview.ModuleReport, string) {
	t.Helper()
	root := t.TempDir()
	manifestFile := filepath.Join(root, "mobile", "build", "manifest.json")
	writeFile(t, filepath.Join(root, "mobile", "build", "out", "light.png"), []byte("png"))

	m := preview.NewModuleReport("mobile", "debug", manifestFile)
	key := preview.Key{FQCN: "com.example.Foo", Method: "Bar"}
	m.Add(key, preview.Entry{ModulePath: "mobile", Variant: "debug", Configuration: "light", Output: "out/light.png"})
	m.Add(key, preview.Entry{ModulePath: "mobile", Variant: "debug", Configuration: "dark", Placeholder: true, Output: "out/dark.png"})
	m.SortEntries()
	return m, root
}

func TestRender_EmptyManifest(t *testing.T) {
	doc := Render(nil, nil, Options{Identifier: DefaultIdentifier})

	assert.Contains(t, doc.Markdown, "Rendered 0 previews across 0 module(s).")
	assert.Contains(t, doc.Markdown, "<!-- compose-preview-report -->")
	assert.NotContains(t, doc.Markdown, "###")
	assert.Empty(t, doc.Omitted)
}

func TestRender_NoIdentifier(t *testing.T) {
	doc := Render(nil, nil, Options{})
	assert.True(t, strings.HasPrefix(doc.Markdown, "## Compose Preview Results\n"))
	assert.NotContains(t, doc.Markdown, "<!--")
}

func TestRender_EndToEnd(t *testing.T) {
	m, root := endToEndModule(t)

	doc := Render([]*preview.ModuleReport{m}, nil, Options{ImageRoot: root, ImageMode: ImageModeAttachment})
	md := doc.Markdown

	assert.Contains(t, md, "Rendered 2 previews across 1 module(s).")
	assert.Contains(t, md, "### mobile — debug")
	assert.Contains(t, md, "<summary>`Foo.Bar` — 2 variations</summary>")
	assert.Contains(t, md, "| light | ![Preview](attachment://mobile/build/out/light.png) |")
	assert.Contains(t, md, "| dark, placeholder image | Image unavailable |")

	headers, rows := tableShape(t, md)
	require.Len(t, headers, 1)
	assert.Equal(t, []string{"Variation", "Preview"}, headers[0])
	assert.Equal(t, []int{2}, rows)
}

func TestRender_ModuleDetails(t *testing.T) {
	m := preview.NewModuleReport("wear", "", "wear/manifest.json")
	m.EnvironmentIssues = []string{"Layoutlib missing"}
	m.MissingImages = []string{"wear/out/a.png"}

	doc := Render([]*preview.ModuleReport{m}, []string{"mobile aggregation failed", "line\nbreak"}, Options{})
	md := doc.Markdown

	assert.Contains(t, md, "**Global issues:**\n- mobile aggregation failed\n- line break\n")
	assert.Contains(t, md, "### wear — <unspecified variant>")
	assert.Contains(t, md, "Manifest: `wear/manifest.json`")
	assert.Contains(t, md, "**Environment issues:**\n- Layoutlib missing")
	assert.Contains(t, md, "**Missing images:**\n- wear/out/a.png")
	assert.Contains(t, md, "_No previews were rendered for this module._")
	assert.NotContains(t, md, "<details>")
}

func TestRender_GroupOrderIsFirstSeen(t *testing.T) {
	m := preview.NewModuleReport("mobile", "debug", "")
	m.Add(preview.Key{FQCN: "a.Zeta"}, preview.Entry{Configuration: "z"})
	m.Add(preview.Key{FQCN: "a.Alpha"}, preview.Entry{Configuration: "a"})

	md := Render([]*preview.ModuleReport{m}, nil, Options{}).Markdown
	zeta := strings.Index(md, "`Zeta` — 1 variation<")
	alpha := strings.Index(md, "`Alpha` — 1 variation<")
	require.NotEqual(t, -1, zeta)
	require.NotEqual(t, -1, alpha)
	assert.Less(t, zeta, alpha)
}

func TestRender_ArtifactURL(t *testing.T) {
	md := Render(nil, nil, Options{ArtifactURL: "https://example.com/artifacts/1"}).Markdown
	assert.Contains(t, md, "[Download all preview images](https://example.com/artifacts/1)")
}

func bulkyModules(n int) []*preview.ModuleReport {
	var modules []*preview.ModuleReport
	for i := 0; i < n; i++ {
		m := preview.NewModuleReport(fmt.Sprintf("module%02d", i), "debug", "")
		m.Add(preview.Key{FQCN: "a.Screen"}, preview.Entry{Configuration: strings.Repeat("x", 200)})
		modules = append(modules, m)
	}
	return modules
}

func TestRender_SizeCeiling(t *testing.T) {
	modules := bulkyModules(10)
	for _, limit := range []int{300, 800, 1500, 2500} {
		t.Run(fmt.Sprint(limit), func(t *testing.T) {
			doc := Render(modules, nil, Options{MaxChars: limit})

			assert.LessOrEqual(t, utf8.RuneCountInString(doc.Markdown), limit)
			assert.Equal(t, doc.Chars(), utf8.RuneCountInString(doc.Markdown))

			omitted := map[string]bool{}
			for _, title := range doc.Omitted {
				omitted[title] = true
			}
			for _, m := range modules {
				present := strings.Contains(doc.Markdown, "### "+m.Title()+"\n")
				assert.NotEqual(t, present, omitted[m.Title()], "module %s must be either rendered or omitted", m.Title())
			}
		})
	}
}

func TestRender_OmittedFooterListsModulesInOrder(t *testing.T) {
	modules := bulkyModules(3)
	full := Render(modules, nil, Options{}).Markdown
	oneSection := moduleSection(modules[0], Options{}.withDefaults())

	limit := utf8.RuneCountInString(header(modules, Options{})) + utf8.RuneCountInString(oneSection) + 200
	require.Less(t, limit, utf8.RuneCountInString(full))

	doc := Render(modules, nil, Options{MaxChars: limit})
	assert.Equal(t, []string{"module01 — debug", "module02 — debug"}, doc.Omitted)
	assert.Contains(t, doc.Markdown, "### module00 — debug")
	assert.Contains(t, doc.Markdown, ": module01 — debug, module02 — debug.\n")
	assert.LessOrEqual(t, doc.Chars(), limit)
}

func TestRender_FooterDegradesToBareNotice(t *testing.T) {
	modules := bulkyModules(3)
	limit := utf8.RuneCountInString(header(modules, Options{})) + utf8.RuneCountInString(footer(nil, 9999)) + 5

	doc := Render(modules, nil, Options{MaxChars: limit})
	assert.Len(t, doc.Omitted, 3)
	assert.Contains(t, doc.Markdown, fmt.Sprintf("under %d characters.\n", limit))
	assert.NotContains(t, doc.Markdown, "module00")
	assert.LessOrEqual(t, doc.Chars(), limit)
}

func TestRender_TinyCeilingStillBounded(t *testing.T) {
	doc := Render(bulkyModules(2), []string{"issue"}, Options{MaxChars: 10})
	assert.LessOrEqual(t, doc.Chars(), 10)
	assert.Len(t, doc.Omitted, 2)
	assert.True(t, strings.HasPrefix(doc.Markdown, "> Some mo"), "got %q", doc.Markdown)
}

func TestRender_OmissionAlwaysAnnounced(t *testing.T) {
	modules := bulkyModules(10)
	for _, issues := range [][]string{nil, {"emulator missing", "gradle daemon crashed"}} {
		for limit := 400; limit <= 3500; limit += 7 {
			doc := Render(modules, issues, Options{MaxChars: limit})

			require.LessOrEqual(t, doc.Chars(), limit, "ceiling %d", limit)
			if len(doc.Omitted) == 0 {
				continue
			}
			require.Contains(t, doc.Markdown,
				fmt.Sprintf("Some modules were omitted to keep this report under %d characters", limit),
				"ceiling %d", limit)
		}
	}
}

func TestRender_ReservesRoomForNotice(t *testing.T) {
	modules := bulkyModules(2)
	first := moduleSection(modules[0], Options{}.withDefaults())
	// Room for the first module but not for the notice after it.
	limit := utf8.RuneCountInString(header(modules, Options{})) + utf8.RuneCountInString(first) + 10

	doc := Render(modules, nil, Options{MaxChars: limit})

	assert.Equal(t, []string{"module00 — debug", "module01 — debug"}, doc.Omitted)
	assert.NotContains(t, doc.Markdown, "### module00")
	assert.Contains(t, doc.Markdown, "Some modules were omitted")
	assert.LessOrEqual(t, doc.Chars(), limit)
}
