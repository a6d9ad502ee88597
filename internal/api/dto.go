package api

import (
	"time"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/siteservice"
)

// ProjectItem is a catalog project (aliased from the domain layer).
type ProjectItem = siteservice.ProjectItem

// ProfileResponse carries the page owner and page metadata.
type ProfileResponse struct {
	Profile models.Profile `json:"profile" validate:"required"`
	Meta    models.Meta    `json:"meta" validate:"required"`
}

// NavResponse lists the navigation entries in display order.
type NavResponse struct {
	Nav []models.NavItem `json:"nav" validate:"required"`
}

// ProjectListResponse wraps paginated project listings.
type ProjectListResponse struct {
	Projects []ProjectItem `json:"projects" validate:"required"`
	Total    int           `json:"total" example:"12" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	ID      string `json:"id" example:"delipucash" validate:"required"`
	Title   string `json:"title" example:"Delipucash Mobile App" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// TagCount is a tag with its project count.
type TagCount struct {
	Tag   string `json:"tag" example:"AWS" validate:"required"`
	Count int    `json:"count" example:"3" validate:"required"`
}

// TagsResponse wraps tag counts, most used first.
type TagsResponse struct {
	Tags []TagCount `json:"tags" validate:"required"`
}

// SkillsResponse carries the skills section records.
type SkillsResponse struct {
	Skills    []models.Skill     `json:"skills" validate:"required"`
	Cards     []models.SkillCard `json:"cards" validate:"required"`
	Expertise []models.Expertise `json:"expertise" validate:"required"`
}

// TestimonialsResponse carries the testimonials.
type TestimonialsResponse struct {
	Testimonials []models.Testimonial `json:"testimonials" validate:"required"`
}

// ReloadResponse reports the content loaded by POST /api/reload.
type ReloadResponse struct {
	Source   string    `json:"source" example:"portfolio.yaml" validate:"required"`
	Checksum string    `json:"checksum" validate:"required"`
	Projects int       `json:"projects" example:"12" validate:"required"`
	LoadedAt time.Time `json:"loaded_at" validate:"required"`
}
