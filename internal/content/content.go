// Package content decodes and validates the portfolio's display records.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
	pkgconfig "github.com/starford/folio/pkg/config"
)

//go:embed default.yaml
var defaultYAML []byte

// DefaultName is the file name the built-in content is written under by
// the init command.
const DefaultName = "portfolio.yaml"

// DefaultBytes returns the raw built-in content document.
func DefaultBytes() []byte {
	return slices.Clone(defaultYAML)
}

// DefaultFor returns the built-in content encoded for a file called name:
// the embedded YAML as is, or the portfolio re-encoded as TOML.
func DefaultFor(name string) ([]byte, error) {
	format := pkgconfig.FormatOf(name)
	if format != pkgconfig.FormatTOML {
		return DefaultBytes(), nil
	}
	out, err := pkgconfig.Encode(format, Default())
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", name, err)
	}
	return out, nil
}

// Default returns the built-in portfolio. It panics if the embedded document
// is invalid, which the package tests rule out.
func Default() *models.Portfolio {
	p, err := Parse(DefaultName, defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("content: built-in portfolio: %v", err))
	}
	return p
}

// Parse decodes a YAML or TOML document (chosen by name's extension) and
// validates it. Text is taken literally; no variables are expanded.
func Parse(name string, data []byte) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := pkgconfig.Decode(pkgconfig.FormatOf(name), data, &p); err != nil {
		return nil, fmt.Errorf("content: %s: %w", name, err)
	}
	if err := Validate(&p); err != nil {
		return nil, fmt.Errorf("content: %s: %w", name, err)
	}
	return &p, nil
}

// Validate checks the cross-record invariants of p. Errors wrap
// apperr.ErrInvalid.
func Validate(p *models.Portfolio) error {
	if err := validation.ValidateStruct(&p.Profile,
		validation.Field(&p.Profile.Name, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: profile: %w", apperr.ErrInvalid, err)
	}
	err := validation.ValidateStruct(p,
		validation.Field(&p.Nav, validation.Required, validation.By(uniqueNav)),
		validation.Field(&p.Projects, validation.Each(validation.By(projectRule)), validation.By(uniqueProjects)),
		validation.Field(&p.Tabs, validation.Required, validation.By(tabsOf(p))),
		validation.Field(&p.Skills, validation.Each(validation.By(skillRule))),
		validation.Field(&p.SkillCards, validation.Each(validation.By(skillCardRule))),
		validation.Field(&p.Testimonials, validation.Each(validation.By(testimonialRule))),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}
	return nil
}

func projectRule(value any) error {
	pr, _ := value.(models.Project)
	return validation.ValidateStruct(&pr,
		validation.Field(&pr.ID, validation.Required),
		validation.Field(&pr.Title, validation.Required),
	)
}

func skillRule(value any) error {
	s, _ := value.(models.Skill)
	return validation.ValidateStruct(&s,
		validation.Field(&s.Label, validation.Required),
		validation.Field(&s.Percentage, validation.Min(0), validation.Max(100)),
	)
}

func skillCardRule(value any) error {
	c, _ := value.(models.SkillCard)
	return validation.ValidateStruct(&c,
		validation.Field(&c.Label, validation.Required),
	)
}

func testimonialRule(value any) error {
	t, _ := value.(models.Testimonial)
	return validation.ValidateStruct(&t,
		validation.Field(&t.Quote, validation.Required),
		validation.Field(&t.Author, validation.Required),
	)
}

func uniqueNav(value any) error {
	items, _ := value.([]models.NavItem)
	seen := make(map[string]struct{}, len(items))
	for _, n := range items {
		if !slices.Contains(models.SectionIDs, n.ID) {
			return fmt.Errorf("nav %q has no matching section", n.ID)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("nav %q is declared twice", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

func uniqueProjects(value any) error {
	items, _ := value.([]models.Project)
	seen := make(map[string]struct{}, len(items))
	for _, pr := range items {
		if _, dup := seen[pr.ID]; dup {
			return fmt.Errorf("project %q is declared twice", pr.ID)
		}
		seen[pr.ID] = struct{}{}
	}
	return nil
}

func tabsOf(p *models.Portfolio) validation.RuleFunc {
	return func(value any) error {
		tabs, _ := value.([]models.Tab)
		seen := make(map[string]struct{}, len(tabs))
		for _, t := range tabs {
			if _, dup := seen[t.ID]; dup {
				return fmt.Errorf("tab %q is declared twice", t.ID)
			}
			seen[t.ID] = struct{}{}
			for _, e := range t.Entries {
				if _, ok := p.Project(e.Ref); !ok {
					return fmt.Errorf("tab %q references unknown project %q", t.ID, e.Ref)
				}
			}
		}
		if _, ok := seen[models.DefaultTab]; !ok {
			return errors.New("default tab \"" + models.DefaultTab + "\" is missing")
		}
		return nil
	}
}
