// Package scroll translates the viewport's scroll position into the three
// signals the page reacts to: the header threshold, back-to-top visibility and
// the active navigation section.
package scroll

// Rect is a viewport-relative bounding rectangle, in CSS pixels.
type Rect struct {
	Top    float64
	Bottom float64
}

// Straddles reports whether the horizontal line at y crosses r.
func (r Rect) Straddles(y float64) bool {
	return r.Top <= y && r.Bottom >= y
}

// Behavior selects how a scroll request is carried out.
type Behavior string

// Scroll behaviors, named after their DOM counterparts.
const (
	BehaviorSmooth  Behavior = "smooth"
	BehaviorInstant Behavior = "auto"
)

// Request asks the viewport to scroll to a document offset.
type Request struct {
	Top      float64
	Behavior Behavior
}

// Geometry is the read side of a viewport.
type Geometry interface {
	// ScrollY returns the vertical scroll offset of the document.
	ScrollY() float64
	// SectionRect returns the viewport-relative rectangle of the section
	// element with the given id.
	SectionRect(id string) (Rect, bool)
	// SectionOffset returns the document-relative top of the section element.
	SectionOffset(id string) (float64, bool)
}

// Viewport is the ambient scroll signal: geometry, a scroll sink and an
// event subscription.
type Viewport interface {
	Geometry
	ScrollTo(req Request)
	// OnScroll registers fn for scroll events and returns the function that
	// removes it.
	OnScroll(fn func()) (remove func())
}

// State is the UI-facing result of a scroll event.
type State struct {
	ScrolledPastThreshold bool   `json:"scrolled_past_threshold"`
	BackToTopVisible      bool   `json:"back_to_top_visible"`
	ActiveSection         string `json:"active_section"`
}

// Options tunes the coordinator. A zero field means "unset" and takes the
// default, so a threshold, probe line or offset of exactly 0 cannot be
// expressed; use a small positive value such as 0.5 instead.
type Options struct {
	HeaderThreshold    float64  `yaml:"header_threshold" toml:"header_threshold"`
	BackToTopThreshold float64  `yaml:"back_to_top_threshold" toml:"back_to_top_threshold"`
	ProbeLine          float64  `yaml:"probe_line" toml:"probe_line"`
	HeaderOffset       float64  `yaml:"header_offset" toml:"header_offset"`
	Sections           []string `yaml:"sections" toml:"sections"`
	DefaultSection     string   `yaml:"default_section" toml:"default_section"`
}

// Defaults.
const (
	DefaultHeaderThreshold    = 50
	DefaultBackToTopThreshold = 700
	DefaultProbeLine          = 100
	DefaultHeaderOffset       = 80
	DefaultSection            = "home"
)

// DefaultSections is the probe order: visual top-to-bottom.
var DefaultSections = []string{"home", "work", "skills", "about", "testimonials", "contact"}

// DefaultOptions returns the options the page is designed around.
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

// Resolved returns o with zero fields replaced by the defaults.
func (o Options) Resolved() Options {
	return o.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.HeaderThreshold == 0 {
		o.HeaderThreshold = DefaultHeaderThreshold
	}
	if o.BackToTopThreshold == 0 {
		o.BackToTopThreshold = DefaultBackToTopThreshold
	}
	if o.ProbeLine == 0 {
		o.ProbeLine = DefaultProbeLine
	}
	if o.HeaderOffset == 0 {
		o.HeaderOffset = DefaultHeaderOffset
	}
	if len(o.Sections) == 0 {
		o.Sections = append([]string(nil), DefaultSections...)
	}
	if o.DefaultSection == "" {
		o.DefaultSection = DefaultSection
	}
	return o
}

// Initial returns the state before any scroll event.
func Initial(opts Options) State {
	return State{ActiveSection: opts.withDefaults().DefaultSection}
}

// Derive computes the state for the current geometry. The active section is
// the first section, in declared order, straddling the probe line; when none
// does, prev's active section is kept.
func Derive(prev State, g Geometry, opts Options) State {
	opts = opts.withDefaults()
	y := g.ScrollY()

	next := State{
		ScrolledPastThreshold: y > opts.HeaderThreshold,
		BackToTopVisible:      y > opts.BackToTopThreshold,
		ActiveSection:         prev.ActiveSection,
	}
	if next.ActiveSection == "" {
		next.ActiveSection = opts.DefaultSection
	}

	for _, id := range opts.Sections {
		if r, ok := g.SectionRect(id); ok && r.Straddles(opts.ProbeLine) {
			next.ActiveSection = id
			break
		}
	}
	return next
}
