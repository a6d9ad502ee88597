// Package view composes the portfolio page from its display records.
//
// The page is a static tree of sections; the only inputs that vary between
// renders are the scroll state, the selected gallery tab and the contact
// form echo.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/scroll"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page is everything the page template reads.
type Page struct {
	Portfolio *models.Portfolio
	Scroll    scroll.State
	// ScrollOptions are handed to the browser binding as data attributes.
	ScrollOptions scroll.Options
	Gallery       Gallery
	Contact       ContactForm
	Year          int

	// LiveReload adds the script that reloads the page on content changes.
	LiveReload bool
	// WASM adds the loader for the browser scroll binding.
	WASM bool
}

// ContactForm echoes the contact form back with per-field errors.
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
	Errors  map[string]string
	Sent    bool
}

// NewPage returns a page for p in its initial scroll state.
func NewPage(p *models.Portfolio, year int) Page {
	return NewPageWith(p, year, scroll.DefaultOptions())
}

// NewPageWith is NewPage with custom scroll options.
func NewPageWith(p *models.Portfolio, year int, opts scroll.Options) Page {
	opts = opts.Resolved()
	return Page{
		Portfolio:     p,
		Scroll:        scroll.Initial(opts),
		ScrollOptions: opts,
		Gallery:       NewGallery(p),
		Year:          year,
	}
}

// Composer renders pages and rendering units.
type Composer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Composer, error) {
	tmpl, err := template.New("folio").Funcs(template.FuncMap{
		"navClass":         NavClass,
		"navItemClass":     NavItemClass,
		"backToTopClass":   BackToTopClass,
		"skillBars":        skillBars,
		"skillCards":       skillCards,
		"testimonialCards": testimonialCards,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Composer{tmpl: tmpl}, nil
}

// Render writes the full page.
func (c *Composer) Render(w io.Writer, p Page) error {
	return c.exec(w, "page", p)
}

// RenderGallery writes the work gallery alone.
func (c *Composer) RenderGallery(w io.Writer, g Gallery) error {
	return c.exec(w, "gallery", g)
}

// ProjectCard writes one project card.
func (c *Composer) ProjectCard(w io.Writer, card ProjectCard) error {
	return c.exec(w, "project-card", card)
}

// SkillBar writes one skill bar.
func (c *Composer) SkillBar(w io.Writer, bar SkillBar) error {
	return c.exec(w, "skill-bar", bar)
}

// SkillCard writes one skill card.
func (c *Composer) SkillCard(w io.Writer, card SkillCard) error {
	return c.exec(w, "skill-card", card)
}

// TestimonialCard writes one testimonial.
func (c *Composer) TestimonialCard(w io.Writer, card TestimonialCard) error {
	return c.exec(w, "testimonial-card", card)
}

func (c *Composer) exec(w io.Writer, name string, data any) error {
	if err := c.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("view: render %s: %w", name, err)
	}
	return nil
}
