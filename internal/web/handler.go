// Package web serves the rendered portfolio page and its contact form.
package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/scroll"
	"github.com/starford/folio/internal/siteservice"
	"github.com/starford/folio/internal/view"
)

// maxFormBytes caps the contact form body.
const maxFormBytes = 64 << 10

// Options toggles page features.
type Options struct {
	LiveReload bool
	WASM       bool
	Scroll     scroll.Options
}

// Handler renders pages from the live portfolio.
type Handler struct {
	svc      *siteservice.Service
	composer *view.Composer
	sink     contact.Sink
	opts     Options
	now      func() time.Time
}

// NewHandler creates a Handler. A nil sink discards submissions.
func NewHandler(svc *siteservice.Service, composer *view.Composer, sink contact.Sink, opts Options) *Handler {
	if sink == nil {
		sink = contact.NopSink{}
	}
	return &Handler{svc: svc, composer: composer, sink: sink, opts: opts, now: time.Now}
}

// Routes mounts the page routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/partials/work", h.Gallery)
	r.Post("/contact", h.Contact)
}

func (h *Handler) page(r *http.Request) view.Page {
	p := view.NewPageWith(h.svc.Portfolio(), h.now().Year(), h.opts.Scroll)
	p.Gallery = p.Gallery.Select(r.URL.Query().Get("tab"))
	p.LiveReload = h.opts.LiveReload
	p.WASM = h.opts.WASM
	return p
}

// Page handles GET /. The tab query parameter preselects a gallery tab.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	p := h.page(r)
	p.Contact.Sent = r.URL.Query().Get("sent") == "1"
	h.render(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.composer.Render(buf, p)
	})
}

// Gallery handles GET /partials/work, the gallery fragment alone.
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	g := h.page(r).Gallery
	h.render(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.composer.RenderGallery(buf, g)
	})
}

// Contact handles POST /contact. Invalid posts re-render the page with the
// form echoed back; valid ones are handed to the sink and redirected.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := contact.Form{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Subject: r.PostForm.Get("subject"),
		Message: r.PostForm.Get("message"),
	}

	_, err := contact.Submit(r.Context(), h.sink, form, h.now())
	if errors.Is(err, apperr.ErrInvalid) {
		p := h.page(r)
		p.Contact = view.ContactForm{
			Name:    form.Name,
			Email:   form.Email,
			Subject: form.Subject,
			Message: form.Message,
			Errors:  contact.FieldErrors(err),
		}
		h.render(w, r, http.StatusUnprocessableEntity, func(buf *bytes.Buffer) error {
			return h.composer.Render(buf, p)
		})
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "contact delivery failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/?sent=1#contact", http.StatusSeeOther)
}

// render buffers the output so template errors become a clean 500, then
// answers conditional GETs from the body's entity tag.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		slog.ErrorContext(r.Context(), "render failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status == http.StatusOK && r.Method == http.MethodGet {
		etag := checksum.ETag(buf.Bytes())
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "no-cache")
		if etagMatches(r.Header.Values("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// etagMatches applies the weak comparison of If-None-Match: any listed tag
// equal to etag once a W/ prefix is dropped, or "*".
func etagMatches(headers []string, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, h := range headers {
		for _, tag := range strings.Split(h, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "*" || strings.TrimPrefix(tag, "W/") == want {
				return true
			}
		}
	}
	return false
}

// Health mounts the liveness and readiness probes on r.
func Health(r chi.Router, svc *siteservice.Service) {
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !svc.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"loading"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
