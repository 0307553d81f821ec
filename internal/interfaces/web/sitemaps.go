package web

import (
	"io"
	"net/http"

	"github.com/riskibarqy/matchday/internal/usecase"
	"github.com/snabb/sitemap"
)

func (p *Pages) VenueSitemap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.VenueSitemap")
	defer span.End()

	entries := p.services.Sitemaps.Venues(ctx, p.baseURL(r), p.clock.Now().UTC())
	p.writeXML(w, "application/xml", "public, max-age=3600", writeSitemap(entries))
}

func (p *Pages) ManagerSitemap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.ManagerSitemap")
	defer span.End()

	entries := p.services.Sitemaps.Managers(ctx, p.baseURL(r), p.clock.Now().UTC())
	p.writeXML(w, "application/xml", "public, max-age=3600", writeSitemap(entries))
}

func (p *Pages) VideoSitemap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.VideoSitemap")
	defer span.End()

	entries := p.services.Sitemaps.Video(ctx, p.baseURL(r), p.clock.Now().UTC())
	p.writeXML(w, "application/xml", "public, max-age=60", writeSitemap(entries))
}

func (p *Pages) Robots(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "web.Pages.Robots")
	defer span.End()

	p.render.Text(w, http.StatusOK, usecase.Robots(p.baseURL(r)))
}

// writeSitemap drops a zero lastmod or priority so the defaults apply.
func writeSitemap(entries []usecase.SitemapEntry) func(io.Writer) error {
	sm := sitemap.New()
	for _, entry := range entries {
		u := &sitemap.URL{
			Loc:        entry.Loc,
			ChangeFreq: sitemap.ChangeFreq(entry.ChangeFreq),
			Priority:   float32(entry.Priority),
		}
		if !entry.LastMod.IsZero() {
			lastMod := entry.LastMod.UTC()
			u.LastMod = &lastMod
		}
		sm.Add(u)
	}
	return func(w io.Writer) error {
		_, err := sm.WriteTo(w)
		return err
	}
}
