package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/justestif/moodify/internal/atlas"
	"github.com/justestif/moodify/internal/catalog"
	"github.com/justestif/moodify/internal/mood"
	"github.com/justestif/moodify/internal/songs"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Pages fill in blocks of the "base" layout
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial template (without base layout) with the given data.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.Execute(w, data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	common := append(layouts, partials...)

	for _, page := range pages {
		name := templateName(page)
		files := append([]string{page}, common...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.templates[name] = tmpl
	}

	// Partials double as standalone HTMX fragments and must {{define}}
	// a template named after their file.
	for _, partial := range partials {
		name := templateName(partial)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, partial)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		t.partials[name] = tmpl
	}

	return nil
}

func templateName(file string) string {
	return strings.TrimSuffix(path.Base(file), ".html")
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// moodColor returns the display color for an emotion name.
		"moodColor": func(e mood.Emotion) string {
			return mood.ProfileFor(e).Color
		},

		"percent": func(f float64) string {
			return fmt.Sprintf("%.0f%%", f*100)
		},

		"feature": func(f float64) string {
			return fmt.Sprintf("%.3f", f)
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	CurrentPath string
}

// ResultData is the outcome of a mood submission. Error is set instead of
// Tracks when the lookup failed.
type ResultData struct {
	Error      string
	Emotion    mood.Emotion
	Confidence float64
	Profile    mood.Profile
	Tracks     []songs.Track
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	Mood   string
	Result *ResultData
}

// BrowsePageData contains data for the CSV browse table.
type BrowsePageData struct {
	PageData
	Moods    []mood.Profile
	Selected *mood.Profile
	Limit    int
	Error    string
	Songs    []catalog.Song
	Matched  int
	Total    int
}

// AtlasPageData contains data for the cluster overview.
type AtlasPageData struct {
	PageData
	Groups   []GroupData
	Outliers int
	Total    int
	Error    string
}

// GroupData describes one atlas cluster for display.
type GroupData struct {
	Name        string
	Description string
	Size        int
	Dominant    mood.Emotion
	Matches     int
	Examples    []catalog.Song
}

func newGroupData(g atlas.Group, examples int) GroupData {
	n := min(examples, len(g.Songs))
	return GroupData{
		Name:        g.Name,
		Description: atlas.Describe(g.Centroid),
		Size:        len(g.Songs),
		Dominant:    g.Dominant,
		Matches:     g.Matches,
		Examples:    g.Songs[:n],
	}
}
