// Package pages renders the server's HTML pages from templates embedded in
// the binary.
package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"foodorder/internal/orders"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names, also the template file names without extension.
const (
	Home       = "index"
	OrderForm  = "orderform"
	Statistics = "restaurantstatistics"
)

var titles = map[string]string{
	Home:       "Home",
	OrderForm:  "Order Form",
	Statistics: "Restaurant Statistics",
}

// DefaultSite is the site name shown in page titles.
const DefaultSite = "Middle-earth Eats"

// Renderer holds one parsed template set per page.
type Renderer struct {
	site  string
	pages map[string]*template.Template
}

type pageData struct {
	Site  string
	Title string
	Rows  []orders.Summary
}

// New parses the embedded templates. An empty site uses DefaultSite.
func New(site string) (*Renderer, error) {
	if site == "" {
		site = DefaultSite
	}

	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{site: site, pages: make(map[string]*template.Template, len(titles))}
	for name := range titles {
		base, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		page, err := base.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// Home renders the landing page.
func (r *Renderer) Home(w io.Writer) error {
	return r.render(w, Home, nil)
}

// OrderForm renders the order form; the menu itself is built client-side.
func (r *Renderer) OrderForm(w io.Writer) error {
	return r.render(w, OrderForm, nil)
}

// Statistics renders one table row per summary.
func (r *Renderer) Statistics(w io.Writer, rows []orders.Summary) error {
	return r.render(w, Statistics, rows)
}

func (r *Renderer) render(w io.Writer, name string, rows []orders.Summary) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return page.ExecuteTemplate(w, "layout", pageData{
		Site:  r.site,
		Title: titles[name],
		Rows:  rows,
	})
}
