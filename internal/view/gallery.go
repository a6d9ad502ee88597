package view

import "github.com/starford/folio/internal/models"

// Gallery is the work section's single-select tab state. It is a value:
// Select returns a new Gallery and leaves the receiver untouched.
type Gallery struct {
	Tabs     []GalleryTab
	Selected string
}

// GalleryTab is one category with its cards resolved.
type GalleryTab struct {
	ID    string
	Label string
	Cards []ProjectCard
}

// NewGallery resolves every tab of p with the default tab selected.
func NewGallery(p *models.Portfolio) Gallery {
	g := Gallery{Selected: models.DefaultTab}
	for _, t := range p.Tabs {
		projects := p.Resolve(t)
		cards := make([]ProjectCard, len(projects))
		for i, pr := range projects {
			cards[i] = NewProjectCard(pr)
		}
		g.Tabs = append(g.Tabs, GalleryTab{ID: t.ID, Label: t.Label, Cards: cards})
	}
	return g
}

// Select returns the gallery with tab id selected. Unknown ids select the
// default tab.
func (g Gallery) Select(id string) Gallery {
	if _, ok := g.tab(id); !ok {
		id = models.DefaultTab
	}
	g.Selected = id
	return g
}

// IsSelected reports whether id is the selected tab.
func (g Gallery) IsSelected(id string) bool {
	return g.Selected == id
}

// Visible returns the cards of the selected tab.
func (g Gallery) Visible() []ProjectCard {
	t, _ := g.tab(g.Selected)
	return t.Cards
}

func (g Gallery) tab(id string) (GalleryTab, bool) {
	for _, t := range g.Tabs {
		if t.ID == id {
			return t, true
		}
	}
	return GalleryTab{}, false
}
