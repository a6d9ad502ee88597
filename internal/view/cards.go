package view

import (
	"fmt"

	"github.com/starford/folio/internal/models"
)

// ProjectCard is the display data of one gallery card.
type ProjectCard struct {
	Title       string
	Description string
	Image       string
	Tags        []string
	Link        string
	GitHub      string
}

// NewProjectCard builds a card, falling back to the default image.
func NewProjectCard(p models.Project) ProjectCard {
	img := p.Image
	if img == "" {
		img = models.DefaultProjectImage
	}
	return ProjectCard{
		Title:       p.Title,
		Description: p.Description,
		Image:       img,
		Tags:        p.Tags,
		Link:        p.Link,
		GitHub:      p.GitHub,
	}
}

// HasOverlay reports whether the card shows its link overlay.
func (c ProjectCard) HasOverlay() bool {
	return c.Link != "" || c.GitHub != ""
}

// SkillBar is a labelled proficiency bar. Percentage is not range checked.
type SkillBar struct {
	Label      string
	Percentage int
}

// Width is the CSS width of the filled part of the bar.
func (s SkillBar) Width() string {
	return fmt.Sprintf("%d%%", s.Percentage)
}

// SkillCard is an icon with a label.
type SkillCard struct {
	Label string
	Icon  string
}

// TestimonialCard is a quote block.
type TestimonialCard struct {
	Quote  string
	Author string
	Role   string
}

func skillBars(in []models.Skill) []SkillBar {
	out := make([]SkillBar, len(in))
	for i, s := range in {
		out[i] = SkillBar{Label: s.Label, Percentage: s.Percentage}
	}
	return out
}

func skillCards(in []models.SkillCard) []SkillCard {
	out := make([]SkillCard, len(in))
	for i, s := range in {
		out[i] = SkillCard{Label: s.Label, Icon: s.Icon}
	}
	return out
}

func testimonialCards(in []models.Testimonial) []TestimonialCard {
	out := make([]TestimonialCard, len(in))
	for i, t := range in {
		out[i] = TestimonialCard{Quote: t.Quote, Author: t.Author, Role: t.Role}
	}
	return out
}
