// Package web serves the server-rendered pages, the RSS and Atom feeds and
// the XML sitemaps.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/usecase"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

const siteName = "Matchday"

type Services struct {
	Leagues  *usecase.LeagueService
	Players  *usecase.PlayerService
	Venues   *usecase.VenueService
	Managers *usecase.ManagerService
	Matches  *usecase.MatchService
	Feed     *usecase.FeedService
	Sitemaps *usecase.SitemapService
}

type Pages struct {
	services    Services
	render      *render.Render
	siteBaseURL string
	clock       clockwork.Clock
	logger      *logging.Logger
}

// NewPages builds the page handlers. An empty siteBaseURL derives the base
// from the request host.
func NewPages(services Services, siteBaseURL string, clock clockwork.Clock, logger *logging.Logger) *Pages {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Pages{
		services:    services,
		render:      newRender(),
		siteBaseURL: strings.TrimRight(strings.TrimSpace(siteBaseURL), "/"),
		clock:       clock,
		logger:      logger,
	}
}

func (p *Pages) Routes(r chi.Router) {
	r.Get("/leagues/{slug}", p.League)
	r.Get("/leagues/{slug}/week/{week}", p.LeagueWeek)
	r.Get("/players/{id}", p.Player)
	r.Get("/venues", p.VenueList)
	r.Get("/venues/{slug}", p.Venue)
	r.Get("/managers", p.ManagerList)
	r.Get("/managers/{slug}", p.Manager)
	r.Get("/m/{id}", p.MatchCenter)

	r.Get("/feed/rss", p.RSS)
	r.Get("/feed/atom", p.Atom)
	r.Get("/sitemaps/venues", p.VenueSitemap)
	r.Get("/sitemaps/managers", p.ManagerSitemap)
	r.Get("/sitemaps/video", p.VideoSitemap)
	r.Get("/robots.txt", p.Robots)

	r.NotFound(p.NotFound)
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"date":     dateFormatter,
				"kickoff":  kickoffFormatter,
				"score":    scoreFormatter,
				"capacity": capacityFormatter,
				"jsonld":   jsonLD,
				"siteName": func() string { return siteName },
			},
		},
	})
}

// page is the binding every template receives. The layout reads the head
// fields and the page template reads Content.
type page struct {
	Title       string
	Description string
	Canonical   string
	JSONLD      any
	Content     any
}

// baseURL prefers the configured site url and falls back to the request host.
func (p *Pages) baseURL(r *http.Request) string {
	if p.siteBaseURL != "" {
		return p.siteBaseURL
	}
	host := strings.TrimSpace(r.Host)
	if host == "" {
		host = "localhost"
	}
	return "https://" + host
}

func (p *Pages) html(w http.ResponseWriter, status int, name string, data page) {
	if data.Title == "" {
		data.Title = siteName
	}
	if err := p.render.HTML(w, status, name, data); err != nil {
		p.logger.Error("render template failed", "template", name, "error", err)
	}
}

func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.html(w, http.StatusNotFound, "404", page{
		Title:   "Page not found - " + siteName,
		Content: r.URL.Path,
	})
}

// fail renders the 404 page for absent or malformed resources and the error
// page for everything else.
func (p *Pages) fail(ctx context.Context, w http.ResponseWriter, r *http.Request, what string, err error) {
	if errors.Is(err, usecase.ErrNotFound) || errors.Is(err, usecase.ErrInvalidInput) {
		p.logger.InfoContext(ctx, what+" not found", "path", r.URL.Path, "error", err)
		p.NotFound(w, r)
		return
	}

	p.logger.ErrorContext(ctx, what+" failed", "path", r.URL.Path, "error", err)
	p.html(w, http.StatusServiceUnavailable, "error", page{
		Title:   "Temporarily unavailable - " + siteName,
		Content: "The data provider did not answer. Please try again shortly.",
	})
}

func dateFormatter(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("Jan 2, 2006")
}

func kickoffFormatter(t time.Time) string {
	if t.IsZero() {
		return "TBD"
	}
	return t.UTC().Format("Mon Jan 2, 15:04 UTC")
}

func scoreFormatter(home, away *int) string {
	if home == nil || away == nil {
		return "vs"
	}
	return strconv.Itoa(*home) + " - " + strconv.Itoa(*away)
}

func capacityFormatter(capacity *int) string {
	if capacity == nil || *capacity <= 0 {
		return "N/A"
	}
	return strconv.Itoa(*capacity)
}

// jsonLD encodes a schema.org document for a ld+json script block. HTML
// characters are escaped so the payload cannot close the script element.
func jsonLD(doc any) template.JS {
	if doc == nil {
		return ""
	}
	raw, err := sonic.ConfigStd.Marshal(doc)
	if err != nil {
		return ""
	}
	return template.JS(raw)
}
