package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var viewsFS embed.FS

// Renderer holds the parsed HTML templates.
type Renderer struct {
	tmpl *template.Template
}

// Load parses the embedded templates. Call during startup; if it returns an
// error, do not start the server.
func Load() (*Renderer, error) {
	return loadFromFS(viewsFS, "templates")
}

// loadFromFS is Load over an arbitrary fs, so tests can feed broken templates.
func loadFromFS(fsys fs.FS, dir string) (*Renderer, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.ParseFS(sub, "*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Route is one line of the route index.
type Route struct {
	Label   string
	Path    string
	Example string
}

type IndexData struct {
	CutoffDate  string
	TobsStation string
	Routes      []Route
}

// DefaultRoutes lists the public API in the order it is documented.
func DefaultRoutes() []Route {
	return []Route{
		{Label: "Precipitation", Path: "/api/v1.0/precipitation"},
		{Label: "Stations", Path: "/api/v1.0/stations"},
		{Label: "Temperatures", Path: "/api/v1.0/tobs"},
		{Label: "Start Date", Path: "/api/v1.0/{start}", Example: "/api/v1.0/2017-01-01"},
		{Label: "Trip Start-End Date", Path: "/api/v1.0/{start}/{end}", Example: "/api/v1.0/2017-01-01/2017-01-07"},
		{Label: "Stations (objects)", Path: "/api/v1.1/stations"},
		{Label: "Temperatures (objects)", Path: "/api/v1.1/tobs"},
	}
}

func (r *Renderer) RenderIndex(w io.Writer, data IndexData) error {
	if r == nil || r.tmpl == nil {
		return errors.New("index template not loaded: call views.Load during startup")
	}
	return r.tmpl.ExecuteTemplate(w, "index.html", data)
}
