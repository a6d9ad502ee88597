// Package siteservice owns the live portfolio: it loads content from
// storage, keeps the project catalog in sync and announces reloads.
package siteservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/storage"
)

// BuiltinSource is the Snapshot source of the built-in content.
const BuiltinSource = "builtin"

// Notifier receives reload announcements.
type Notifier interface {
	PublishReload(r sse.Reload)
	Publish(e sse.Event)
}

// Snapshot is an immutable view of the loaded content.
type Snapshot struct {
	Portfolio *models.Portfolio
	Source    string
	Checksum  string
	LoadedAt  time.Time
}

// ProjectItem is a project as listed by the catalog.
type ProjectItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Link        string   `json:"link,omitempty"`
	GitHub      string   `json:"github,omitempty"`
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories"`
}

// ListQuery filters ListProjects. Category "all" matches every project.
type ListQuery = index.ListQuery

// Service coordinates storage, content parsing and the catalog index.
type Service struct {
	store    storage.Provider
	name     string
	db       index.Catalog
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	current atomic.Pointer[Snapshot]
	mu      sync.Mutex // serializes Reload
}

// Option configures a Service.
type Option func(*Service)

// WithStorage makes the service read content document name from store.
// Without it the service serves the built-in content.
func WithStorage(store storage.Provider, name string) Option {
	return func(s *Service) {
		s.store = store
		s.name = name
	}
}

// WithNotifier announces reloads to n.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a service backed by the catalog db. Call Reload before
// serving.
func New(db index.Catalog, opts ...Option) *Service {
	s := &Service{
		db:     db,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Snapshot returns the loaded content. It panics if nothing was loaded.
func (s *Service) Snapshot() *Snapshot {
	snap := s.current.Load()
	if snap == nil {
		panic("siteservice: Snapshot before Reload")
	}
	return snap
}

// Portfolio returns the loaded portfolio. Callers must not mutate it.
func (s *Service) Portfolio() *models.Portfolio {
	return s.Snapshot().Portfolio
}

// Ready reports whether content has been loaded.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// Reload reads the content document, validates it, syncs the catalog and
// swaps it in. A missing document falls back to the built-in content; an
// invalid one keeps the previous snapshot and returns the error.
func (s *Service) Reload(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, source, sum, err := s.read()
	if err != nil {
		s.logger.ErrorContext(ctx, "content reload failed",
			slog.String("source", source),
			slog.String("error", err.Error()))
		if s.notifier != nil {
			s.notifier.Publish(sse.Event{Type: sse.TypeContentInvalid, Data: map[string]string{
				"source": source,
				"error":  err.Error(),
			}})
		}
		return nil, err
	}

	res, err := index.Sync(s.db, p, s.logger)
	if err != nil {
		return nil, fmt.Errorf("siteservice: sync catalog: %w", err)
	}

	snap := &Snapshot{Portfolio: p, Source: source, Checksum: sum, LoadedAt: s.now().UTC()}
	s.current.Store(snap)

	s.logger.InfoContext(ctx, "content loaded",
		slog.String("source", source),
		slog.String("checksum", sum),
		slog.Int("projects", len(p.Projects)),
		slog.Int("indexed", res.Indexed),
		slog.Int("removed", res.Removed))
	if s.notifier != nil {
		s.notifier.PublishReload(sse.Reload{Source: source, Checksum: sum, Projects: len(p.Projects)})
	}
	return snap, nil
}

func (s *Service) read() (*models.Portfolio, string, string, error) {
	if s.store == nil {
		return content.Default(), BuiltinSource, checksum.Sum(content.DefaultBytes()), nil
	}
	data, err := s.store.Read(s.name)
	if errors.Is(err, apperr.ErrNotFound) {
		s.logger.Warn("content document missing, serving built-in portfolio", slog.String("path", s.name))
		return content.Default(), BuiltinSource, checksum.Sum(content.DefaultBytes()), nil
	}
	if err != nil {
		return nil, s.name, "", err
	}
	p, err := content.Parse(s.name, data)
	if err != nil {
		return nil, s.name, "", err
	}
	return p, s.name, checksum.Sum(data), nil
}

// HandleChange reloads when paths include the content document. It is the
// watcher callback.
func (s *Service) HandleChange(ctx context.Context, paths []string) {
	for _, p := range paths {
		if p == s.name {
			_, _ = s.Reload(ctx)
			return
		}
	}
}

// ListProjects returns one page of catalog projects and the total count.
func (s *Service) ListProjects(_ context.Context, q ListQuery) ([]ProjectItem, int, error) {
	if strings.EqualFold(q.Category, models.DefaultTab) {
		q.Category = ""
	}
	rows, total, err := s.db.ListProjects(q)
	if err != nil {
		return nil, 0, err
	}
	items := make([]ProjectItem, len(rows))
	for i, r := range rows {
		items[i] = itemOf(r)
	}
	return items, total, nil
}

// GetProject returns one catalog project.
func (s *Service) GetProject(_ context.Context, id string) (*ProjectItem, error) {
	row, err := s.db.GetProject(id)
	if err != nil {
		return nil, err
	}
	item := itemOf(*row)
	return &item, nil
}

// Search delegates full-text search to the catalog.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Tags returns tag usage counts.
func (s *Service) Tags(_ context.Context) ([]index.TagCount, error) {
	return s.db.Tags()
}

func itemOf(r index.ProjectRow) ProjectItem {
	img := r.Image
	if img == "" {
		img = models.DefaultProjectImage
	}
	return ProjectItem{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       img,
		Link:        r.Link,
		GitHub:      r.GitHub,
		Tags:        nonNilSlice(r.Tags),
		Categories:  nonNilSlice(r.Categories),
	}
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
