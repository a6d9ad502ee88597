// Package models defines the display records of the portfolio.
//
// Every record is fixed at build or load time and read-only afterwards.
package models

// Section anchors rendered by the page, in document order. Navigation
// identifiers must be drawn from this list.
var SectionIDs = []string{"home", "work", "skills", "about", "testimonials", "contact"}

// DefaultTab is the gallery tab holding every project.
const DefaultTab = "all"

// DefaultProjectImage is shown when a project has no image of its own.
const DefaultProjectImage = "/images/carreer.jpg"

// Portfolio is the complete content of the site.
type Portfolio struct {
	Meta         Meta          `json:"meta" yaml:"meta" toml:"meta"`
	Profile      Profile       `json:"profile" yaml:"profile" toml:"profile"`
	Nav          []NavItem     `json:"nav" yaml:"nav" toml:"nav"`
	Projects     []Project     `json:"projects" yaml:"projects" toml:"projects"`
	Tabs         []Tab         `json:"tabs" yaml:"tabs" toml:"tabs"`
	Skills       []Skill       `json:"skills" yaml:"skills" toml:"skills"`
	SkillCards   []SkillCard   `json:"skill_cards" yaml:"skill_cards" toml:"skill_cards"`
	Expertise    []Expertise   `json:"expertise" yaml:"expertise" toml:"expertise"`
	Testimonials []Testimonial `json:"testimonials" yaml:"testimonials" toml:"testimonials"`
	Clients      []Client      `json:"clients" yaml:"clients" toml:"clients"`
	Contact      Contact       `json:"contact" yaml:"contact" toml:"contact"`
	Footer       Footer        `json:"footer" yaml:"footer" toml:"footer"`
}

// Meta holds document-level metadata.
type Meta struct {
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description" yaml:"description" toml:"description"`
	// Theme is the class the theme provider resolves to when nothing else is chosen.
	Theme string `json:"theme" yaml:"theme" toml:"theme"`
}

// Profile is the person the site presents.
type Profile struct {
	Name      string   `json:"name" yaml:"name" toml:"name"`
	Initials  string   `json:"initials" yaml:"initials" toml:"initials"`
	Tagline   string   `json:"tagline" yaml:"tagline" toml:"tagline"`
	About     []string `json:"about" yaml:"about" toml:"about"`
	Email     string   `json:"email" yaml:"email" toml:"email"`
	Location  string   `json:"location" yaml:"location" toml:"location"`
	Education string   `json:"education" yaml:"education" toml:"education"`
	Photo     string   `json:"photo" yaml:"photo" toml:"photo"`
	Resume    string   `json:"resume" yaml:"resume" toml:"resume"`
	HeroImage string   `json:"hero_image" yaml:"hero_image" toml:"hero_image"`
}

// NavItem links a navigation entry to a section anchor.
type NavItem struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Label string `json:"label" yaml:"label" toml:"label"`
}

// Project is a gallery entry. Link and GitHub are optional.
type Project struct {
	ID          string   `json:"id" yaml:"id" toml:"id"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Image       string   `json:"image,omitempty" yaml:"image" toml:"image"`
	Tags        []string `json:"tags" yaml:"tags" toml:"tags"`
	Link        string   `json:"link,omitempty" yaml:"link" toml:"link"`
	GitHub      string   `json:"github,omitempty" yaml:"github" toml:"github"`
}

// Tab is one gallery category. Entries are authored per tab and may
// override the image or link of the project they reference.
type Tab struct {
	ID      string     `json:"id" yaml:"id" toml:"id"`
	Label   string     `json:"label" yaml:"label" toml:"label"`
	Entries []TabEntry `json:"entries" yaml:"entries" toml:"entries"`
}

// TabEntry references a project by ID.
type TabEntry struct {
	Ref   string  `json:"ref" yaml:"ref" toml:"ref"`
	Image *string `json:"image,omitempty" yaml:"image" toml:"image"`
	Link  *string `json:"link,omitempty" yaml:"link" toml:"link"`
}

// Skill is a proficiency bar. Percentage is expected in [0,100].
type Skill struct {
	Label      string `json:"label" yaml:"label" toml:"label"`
	Percentage int    `json:"percentage" yaml:"percentage" toml:"percentage"`
	Group      string `json:"group,omitempty" yaml:"group" toml:"group"`
}

// SkillCard is a professional skill shown with an icon.
type SkillCard struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Icon  string `json:"icon" yaml:"icon" toml:"icon"`
}

// Expertise is a technology area card.
type Expertise struct {
	Title   string   `json:"title" yaml:"title" toml:"title"`
	Icon    string   `json:"icon" yaml:"icon" toml:"icon"`
	Accent  string   `json:"accent" yaml:"accent" toml:"accent"`
	Summary string   `json:"summary" yaml:"summary" toml:"summary"`
	Badges  []string `json:"badges" yaml:"badges" toml:"badges"`
}

// Testimonial is a quote with attribution.
type Testimonial struct {
	Quote  string `json:"quote" yaml:"quote" toml:"quote"`
	Author string `json:"author" yaml:"author" toml:"author"`
	Role   string `json:"role" yaml:"role" toml:"role"`
}

// Client is a logo in the clients strip.
type Client struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Logo string `json:"logo" yaml:"logo" toml:"logo"`
}

// Contact holds the contact section copy and channels.
type Contact struct {
	Intro    string    `json:"intro" yaml:"intro" toml:"intro"`
	Channels []Channel `json:"channels" yaml:"channels" toml:"channels"`
}

// Channel is an outbound link with an icon. Href is opaque and not validated.
type Channel struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Icon  string `json:"icon" yaml:"icon" toml:"icon"`
	Href  string `json:"href" yaml:"href" toml:"href"`
	Text  string `json:"text,omitempty" yaml:"text" toml:"text"`
}

// Footer holds the footer credit and social links.
type Footer struct {
	Credit string    `json:"credit" yaml:"credit" toml:"credit"`
	Links  []Channel `json:"links" yaml:"links" toml:"links"`
}

// Project returns the project with the given ID.
func (p *Portfolio) Project(id string) (Project, bool) {
	for _, pr := range p.Projects {
		if pr.ID == id {
			return pr, true
		}
	}
	return Project{}, false
}

// Tab returns the tab with the given ID.
func (p *Portfolio) Tab(id string) (Tab, bool) {
	for _, t := range p.Tabs {
		if t.ID == id {
			return t, true
		}
	}
	return Tab{}, false
}

// Resolve returns the projects of tab t in authored order with per-tab
// overrides applied. Unknown references are skipped.
func (p *Portfolio) Resolve(t Tab) []Project {
	out := make([]Project, 0, len(t.Entries))
	for _, e := range t.Entries {
		pr, ok := p.Project(e.Ref)
		if !ok {
			continue
		}
		if e.Image != nil {
			pr.Image = *e.Image
		}
		if e.Link != nil {
			pr.Link = *e.Link
		}
		out = append(out, pr)
	}
	return out
}

// Categories returns the IDs of the non-default tabs that list project id.
func (p *Portfolio) Categories(id string) []string {
	var out []string
	for _, t := range p.Tabs {
		if t.ID == DefaultTab {
			continue
		}
		for _, e := range t.Entries {
			if e.Ref == id {
				out = append(out, t.ID)
				break
			}
		}
	}
	return out
}
