package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/siteservice"
)

// MaxPageSize caps the limit parameter of list endpoints.
const MaxPageSize = 100

// Handler holds API route handlers.
type Handler struct {
	svc *siteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *siteservice.Service) *Handler {
	return &Handler{svc: svc}
}

type pageParams struct {
	Limit  int
	Offset int
}

func (p pageParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Limit, validation.Min(0), validation.Max(MaxPageSize)),
		validation.Field(&p.Offset, validation.Min(0)),
	)
}

// parsePage reads limit and offset. Absent values are zero; malformed ones
// are rejected.
func parsePage(r *http.Request) (pageParams, error) {
	var p pageParams
	q := r.URL.Query()
	for key, dst := range map[string]*int{"limit": &p.Limit, "offset": &p.Offset} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, validation.Errors{key: errors.New("must be an integer")}
		}
		*dst = n
	}
	return p, p.Validate()
}

// Profile handles GET /api/profile.
//
//	@Summary		Get the page owner's profile and page metadata
//	@Tags			content
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Router			/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, _ *http.Request) {
	p := h.svc.Portfolio()
	writeJSON(w, http.StatusOK, ProfileResponse{Profile: p.Profile, Meta: p.Meta})
}

// Nav handles GET /api/nav.
//
//	@Summary		List navigation entries
//	@Tags			content
//	@Produce		json
//	@Success		200	{object}	NavResponse
//	@Router			/nav [get]
func (h *Handler) Nav(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, NavResponse{Nav: h.svc.Portfolio().Nav})
}

// ListProjects handles GET /api/projects.
//
//	@Summary		List projects with optional pagination and filtering
//	@Tags			projects
//	@Produce		json
//	@Param			category	query		string	false	"Gallery tab id"
//	@Param			tag			query		string	false	"Filter by tag"
//	@Param			limit		query		int		false	"Page size"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{object}	ProjectListResponse
//	@Failure		400			{object}	errResponse
//	@Router			/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	q := r.URL.Query()
	items, total, err := h.svc.ListProjects(r.Context(), siteservice.ListQuery{
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		slog.Error("list projects failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if items == nil {
		items = []ProjectItem{}
	}
	writeJSON(w, http.StatusOK, ProjectListResponse{Projects: items, Total: total})
}

// GetProject handles GET /api/projects/{id}.
//
//	@Summary		Get a single project by id
//	@Tags			projects
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	ProjectItem
//	@Failure		404	{object}	errResponse
//	@Router			/projects/{id} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := h.svc.GetProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get project failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search over projects
//	@Tags			projects
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	page, err := parsePage(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	hits, err := h.svc.Search(r.Context(), q, page.Limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	results := make([]SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = SearchResult{ID: hit.ID, Title: hit.Title, Snippet: hit.Snippet}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Tags handles GET /api/tags.
//
//	@Summary		List tags with project counts
//	@Tags			projects
//	@Produce		json
//	@Success		200	{object}	TagsResponse
//	@Router			/tags [get]
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Tags(r.Context())
	if err != nil {
		slog.Error("tags failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	tags := make([]TagCount, len(counts))
	for i, c := range counts {
		tags[i] = TagCount{Tag: c.Tag, Count: c.Count}
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: tags})
}

// Skills handles GET /api/skills.
//
//	@Summary		List skill bars, skill cards and expertise areas
//	@Tags			content
//	@Produce		json
//	@Success		200	{object}	SkillsResponse
//	@Router			/skills [get]
func (h *Handler) Skills(w http.ResponseWriter, _ *http.Request) {
	p := h.svc.Portfolio()
	writeJSON(w, http.StatusOK, SkillsResponse{Skills: p.Skills, Cards: p.SkillCards, Expertise: p.Expertise})
}

// Testimonials handles GET /api/testimonials.
//
//	@Summary		List testimonials
//	@Tags			content
//	@Produce		json
//	@Success		200	{object}	TestimonialsResponse
//	@Router			/testimonials [get]
func (h *Handler) Testimonials(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, TestimonialsResponse{Testimonials: h.svc.Portfolio().Testimonials})
}

// Reload handles POST /api/reload.
//
//	@Summary		Reload the content document
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	ReloadResponse
//	@Failure		401	{object}	errResponse
//	@Failure		422	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/reload [post]
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Reload(r.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrInvalid) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		} else {
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, ReloadResponse{
		Source:   snap.Source,
		Checksum: snap.Checksum,
		Projects: len(snap.Portfolio.Projects),
		LoadedAt: snap.LoadedAt,
	})
}
