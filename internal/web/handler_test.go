package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/siteservice"
	"github.com/starford/folio/internal/testutil"
	"github.com/starford/folio/internal/view"
)

type recordingSink struct {
	got []contact.Submission
	err error
}

func (r *recordingSink) Deliver(_ context.Context, s contact.Submission) error {
	if r.err != nil {
		return r.err
	}
	r.got = append(r.got, s)
	return nil
}

func testRouter(t *testing.T, sink contact.Sink, opts Options) (*siteservice.Service, http.Handler) {
	t.Helper()
	svc := siteservice.New(testutil.TestDB(t),
		siteservice.WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
	)
	composer, err := view.New()
	require.NoError(t, err)

	h := NewHandler(svc, composer, sink, opts)
	h.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	Health(r, svc)
	h.Routes(r)
	return svc, r
}

func reload(t *testing.T, svc *siteservice.Service) {
	t.Helper()
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)
}

func get(h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func post(h http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// elements returns the element nodes carrying attribute key.
func elements(t *testing.T, body string, key string) []*html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == key {
					out = append(out, n)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func TestHealth(t *testing.T) {
	svc, r := testRouter(t, nil, Options{})

	assert.Equal(t, http.StatusOK, get(r, "/health/live", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/health/ready", nil).Code)

	reload(t, svc)
	w := get(r, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPage(t *testing.T) {
	svc, r := testRouter(t, nil, Options{})
	reload(t, svc)

	w := get(r, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("ETag"))

	body := w.Body.String()
	assert.Len(t, elements(t, body, "data-project"), 12)
	assert.Contains(t, body, "2026")
	assert.Empty(t, elements(t, body, "data-contact-sent"))
}

func TestPageConditionalGet(t *testing.T) {
	svc, r := testRouter(t, nil, Options{})
	reload(t, svc)

	etag := get(r, "/", nil).Header().Get("ETag")
	require.NotEmpty(t, etag)

	w := get(r, "/", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())

	w = get(r, "/", map[string]string{"If-None-Match": `"stale"`})
	assert.Equal(t, http.StatusOK, w.Code)

	// A different tab is a different body.
	assert.NotEqual(t, etag, get(r, "/?tab=iot", nil).Header().Get("ETag"))
}

func TestPageOptions(t *testing.T) {
	svc, r := testRouter(t, nil, Options{LiveReload: true, WASM: true})
	reload(t, svc)

	body := get(r, "/", nil).Body.String()
	assert.Contains(t, body, "/api/events")
	assert.Contains(t, body, "/static/folio.wasm")
}

func TestGalleryPartial(t *testing.T) {
	svc, r := testRouter(t, nil, Options{})
	reload(t, svc)

	w := get(r, "/partials/work?tab=iot", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "<nav")

	visible := 0
	for _, panel := range elements(t, body, "data-tab-panel") {
		hidden := false
		for _, a := range panel.Attr {
			if a.Key == "hidden" {
				hidden = true
			}
		}
		if !hidden {
			visible++
		}
	}
	assert.Equal(t, 1, visible)
	assert.Contains(t, body, "Agricultural Monitoring System")
}

func TestContactValid(t *testing.T) {
	sink := &recordingSink{}
	svc, r := testRouter(t, sink, Options{})
	reload(t, svc)

	w := post(r, url.Values{
		"name":    {"  Ada  "},
		"email":   {"ada@example.com"},
		"subject": {"Hello"},
		"message": {"Let's build something."},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?sent=1#contact", w.Header().Get("Location"))

	require.Len(t, sink.got, 1)
	assert.Equal(t, "Ada", sink.got[0].Form.Name)
	assert.NotEmpty(t, sink.got[0].ID)

	page := get(r, "/?sent=1", nil)
	assert.Len(t, elements(t, page.Body.String(), "data-contact-sent"), 1)
}

func TestContactInvalidEchoes(t *testing.T) {
	sink := &recordingSink{}
	svc, r := testRouter(t, sink, Options{})
	reload(t, svc)

	w := post(r, url.Values{
		"name":    {"Ada"},
		"email":   {"not-an-email"},
		"subject": {"Hi"},
		"message": {"<script>x</script>"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, w.Header().Get("ETag"))
	assert.Empty(t, sink.got)

	body := w.Body.String()
	errs := elements(t, body, "data-error")
	require.Len(t, errs, 1)
	for _, a := range errs[0].Attr {
		if a.Key == "data-error" {
			assert.Equal(t, "email", a.Val)
		}
	}
	assert.Contains(t, body, `value="Ada"`)
	assert.Contains(t, body, "&lt;script&gt;x&lt;/script&gt;")
}

func TestContactSinkFailure(t *testing.T) {
	svc, r := testRouter(t, &recordingSink{err: errors.New("smtp down")}, Options{})
	reload(t, svc)

	w := post(r, url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Hello"},
		"message": {"Hi"},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPageConditionalGetTagLists(t *testing.T) {
	svc, r := testRouter(t, nil, Options{})
	reload(t, svc)

	etag := get(r, "/", nil).Header().Get("ETag")
	require.NotEmpty(t, etag)

	for name, header := range map[string]string{
		"list":     `"other", ` + etag,
		"weak":     "W/" + etag,
		"wildcard": "*",
	} {
		t.Run(name, func(t *testing.T) {
			w := get(r, "/", map[string]string{"If-None-Match": header})
			assert.Equal(t, http.StatusNotModified, w.Code)
		})
	}

	w := get(r, "/", map[string]string{"If-None-Match": `"a", W/"b"`})
	assert.Equal(t, http.StatusOK, w.Code)
}
