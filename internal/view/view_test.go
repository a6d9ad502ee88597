package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/scroll"
)

func newComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	return c
}

func parse(t *testing.T, b []byte) *html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(b))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// findAll returns the element nodes under n carrying attribute key.
func findAll(n *html.Node, key string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ok := attr(n, key); ok {
				out = append(out, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// visibleTitles returns the card titles of the panel not marked hidden.
func visibleTitles(t *testing.T, doc *html.Node) []string {
	t.Helper()
	var titles []string
	visible := 0
	for _, panel := range findAll(doc, "data-tab-panel") {
		if _, hidden := attr(panel, "hidden"); hidden {
			continue
		}
		visible++
		for _, card := range findAll(panel, "data-project") {
			for _, h := range findTag(card, "h3") {
				titles = append(titles, text(h))
			}
		}
	}
	require.Equal(t, 1, visible, "exactly one panel is visible")
	return titles
}

func findTag(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func renderGallery(t *testing.T, c *Composer, g Gallery) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.RenderGallery(&buf, g))
	return parse(t, buf.Bytes())
}

func TestGallerySelectsTabs(t *testing.T) {
	c := newComposer(t)
	g := NewGallery(content.Default())

	all := visibleTitles(t, renderGallery(t, c, g))
	assert.Len(t, all, 12)

	iot := g.Select("iot")
	assert.Equal(t, []string{"Smart Home Automation System", "Agricultural Monitoring System"},
		visibleTitles(t, renderGallery(t, c, iot)))

	back := iot.Select("all")
	assert.Equal(t, all, visibleTitles(t, renderGallery(t, c, back)))

	// Select returns a copy.
	assert.Equal(t, "all", g.Selected)
}

func TestGalleryUnknownTabFallsBack(t *testing.T) {
	g := NewGallery(content.Default()).Select("nope")
	assert.Equal(t, models.DefaultTab, g.Selected)
	assert.Len(t, g.Visible(), 12)
}

func TestGalleryTabLinksMarkSelection(t *testing.T) {
	c := newComposer(t)
	doc := renderGallery(t, c, NewGallery(content.Default()).Select("ml"))

	selected := 0
	for _, tab := range findAll(doc, "data-tab") {
		id, _ := attr(tab, "data-tab")
		href, _ := attr(tab, "href")
		assert.Equal(t, "?tab="+id+"#work", href)
		if v, _ := attr(tab, "aria-selected"); v == "true" {
			selected++
			assert.Equal(t, "ml", id)
		}
	}
	assert.Equal(t, 1, selected)
}

func TestGalleryTabOverrides(t *testing.T) {
	g := NewGallery(content.Default())

	iot := g.Select("iot").Visible()
	require.Len(t, iot, 2)
	assert.Equal(t, "/images/arola.png", iot[1].Image)

	var web, all ProjectCard
	for _, card := range g.Select("web").Visible() {
		if card.Title == "My Portfolio" {
			web = card
		}
	}
	for _, card := range g.Visible() {
		if card.Title == "My Portfolio" {
			all = card
		}
	}
	assert.Equal(t, "https://lauben.sh", web.Link)
	assert.True(t, web.HasOverlay())
	assert.Empty(t, all.Link)
}

func TestSkillBar(t *testing.T) {
	c := newComposer(t)
	var buf bytes.Buffer
	require.NoError(t, c.SkillBar(&buf, SkillBar{Label: "React", Percentage: 92}))
	doc := parse(t, buf.Bytes())

	pct := findAll(doc, "data-percentage")
	require.Len(t, pct, 1)
	assert.Equal(t, "92%", text(pct[0]))

	assert.Contains(t, buf.String(), `style="width: 92%"`)
	assert.Contains(t, buf.String(), `aria-valuenow="92"`)
}

func TestSkillBarOutOfRangeRendersAsIs(t *testing.T) {
	assert.Equal(t, "120%", SkillBar{Percentage: 120}.Width())
	assert.Equal(t, "0%", SkillBar{}.Width())
}

func TestProjectCardOverlay(t *testing.T) {
	c := newComposer(t)

	cases := map[string]struct {
		card  ProjectCard
		links []string
	}{
		"none":   {ProjectCard{Title: "A"}, nil},
		"link":   {ProjectCard{Title: "A", Link: "https://a.example"}, []string{"external"}},
		"github": {ProjectCard{Title: "A", GitHub: "https://github.com/a/a"}, []string{"source"}},
		"both": {
			ProjectCard{Title: "A", Link: "https://a.example", GitHub: "https://github.com/a/a"},
			[]string{"external", "source"},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, c.ProjectCard(&buf, tc.card))
			doc := parse(t, buf.Bytes())

			overlays := findAll(doc, "data-overlay")
			assert.Equal(t, tc.card.HasOverlay(), len(overlays) == 1)
			assert.Equal(t, len(tc.links) > 0, tc.card.HasOverlay())

			var got []string
			for _, a := range findAll(doc, "data-link") {
				v, _ := attr(a, "data-link")
				got = append(got, v)
			}
			assert.Equal(t, tc.links, got)
		})
	}
}

func TestProjectCardImageFallback(t *testing.T) {
	card := NewProjectCard(models.Project{Title: "No image"})
	assert.Equal(t, models.DefaultProjectImage, card.Image)

	card = NewProjectCard(models.Project{Title: "Image", Image: "/images/x.png"})
	assert.Equal(t, "/images/x.png", card.Image)
}

func TestTestimonialAndSkillCards(t *testing.T) {
	c := newComposer(t)

	var buf bytes.Buffer
	require.NoError(t, c.TestimonialCard(&buf, TestimonialCard{Quote: "Great <work>", Author: "Ada", Role: "CTO"}))
	out := buf.String()
	assert.Contains(t, out, "Great &lt;work&gt;")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "CTO")

	buf.Reset()
	require.NoError(t, c.SkillCard(&buf, SkillCard{Label: "Leadership", Icon: "users"}))
	assert.Contains(t, buf.String(), "/static/icons.svg#users")
	assert.Contains(t, buf.String(), "Leadership")
}

func renderPage(t *testing.T, p Page) (*html.Node, string) {
	t.Helper()
	c := newComposer(t)
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf, p))
	return parse(t, buf.Bytes()), buf.String()
}

func TestPageNavTargetsExist(t *testing.T) {
	p := content.Default()
	doc, _ := renderPage(t, NewPage(p, 2026))

	ids := map[string]bool{}
	for _, n := range findAll(doc, "id") {
		if n.Data == "section" {
			id, _ := attr(n, "id")
			ids[id] = true
		}
	}
	for _, id := range models.SectionIDs {
		assert.Truef(t, ids[id], "section %q rendered", id)
	}

	links := findAll(doc, "data-scroll-to")
	require.NotEmpty(t, links)
	for _, a := range links {
		target, _ := attr(a, "data-scroll-to")
		href, _ := attr(a, "href")
		assert.Equal(t, "#"+target, href)
		assert.Truef(t, ids[target], "link target %q exists", target)
	}
}

func TestPageReflectsScrollState(t *testing.T) {
	p := NewPage(content.Default(), 2026)

	doc, _ := renderPage(t, p)
	nav := findAll(doc, "data-nav")
	require.Len(t, nav, 1)
	class, _ := attr(nav[0], "class")
	assert.Contains(t, class, NavClass(false))
	top := findAll(doc, "data-scroll-top")
	require.Len(t, top, 1)
	class, _ = attr(top[0], "class")
	assert.Contains(t, class, BackToTopClass(false))

	p.Scroll = scroll.State{ScrolledPastThreshold: true, BackToTopVisible: true, ActiveSection: "skills"}
	doc, _ = renderPage(t, p)
	class, _ = attr(findAll(doc, "data-nav")[0], "class")
	assert.Contains(t, class, NavClass(true))
	class, _ = attr(findAll(doc, "data-scroll-top")[0], "class")
	assert.Contains(t, class, BackToTopClass(true))

	active := 0
	for _, a := range findAll(findAll(doc, "data-nav")[0], "data-scroll-to") {
		class, _ := attr(a, "class")
		if strings.Contains(class, NavItemClass(true)) {
			active++
			target, _ := attr(a, "data-scroll-to")
			assert.Equal(t, "skills", target)
		}
	}
	assert.Equal(t, 1, active)
}

func TestPageCounts(t *testing.T) {
	p := content.Default()
	doc, out := renderPage(t, NewPage(p, 2026))

	assert.Len(t, findAll(doc, "data-skill"), len(p.Skills))
	assert.Len(t, findAll(doc, "data-skill-card"), len(p.SkillCards))
	assert.Len(t, findAll(doc, "data-testimonial"), len(p.Testimonials))
	assert.Len(t, findAll(doc, "data-expertise"), len(p.Expertise))
	assert.Contains(t, out, "2026")
	assert.NotContains(t, out, "/api/events")
	assert.NotContains(t, out, "folio.wasm")
}

func TestPageOptionalScripts(t *testing.T) {
	p := NewPage(content.Default(), 2026)
	p.LiveReload = true
	p.WASM = true
	_, out := renderPage(t, p)
	assert.Contains(t, out, "/api/events")
	assert.Contains(t, out, "/static/folio.wasm")
}

func TestContactFormEcho(t *testing.T) {
	p := NewPage(content.Default(), 2026)
	p.Contact = ContactForm{
		Name:    "Ada",
		Email:   "not-an-email",
		Message: "hi <b>",
		Errors:  map[string]string{"email": "must be a valid email address"},
	}
	doc, out := renderPage(t, p)

	errs := findAll(doc, "data-error")
	require.Len(t, errs, 1)
	field, _ := attr(errs[0], "data-error")
	assert.Equal(t, "email", field)
	assert.Contains(t, out, `value="Ada"`)
	assert.Contains(t, out, "hi &lt;b&gt;")
	assert.Empty(t, findAll(doc, "data-contact-sent"))

	p.Contact = ContactForm{Sent: true}
	doc, _ = renderPage(t, p)
	assert.Len(t, findAll(doc, "data-contact-sent"), 1)
}

func TestPageCarriesScrollOptions(t *testing.T) {
	p := NewPageWith(content.Default(), 2026, scroll.Options{HeaderThreshold: 20})
	assert.Equal(t, 20.0, p.ScrollOptions.HeaderThreshold)
	assert.Equal(t, float64(scroll.DefaultHeaderOffset), p.ScrollOptions.HeaderOffset)

	_, out := renderPage(t, p)
	assert.Contains(t, out, `data-header-threshold="20"`)
	assert.Contains(t, out, `data-header-offset="80"`)
}
