package web

import (
	"encoding/xml"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/riskibarqy/matchday/external/indexnow"
	"github.com/riskibarqy/matchday/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	feedTitle       = "Live Football Matches - " + siteName
	feedCacheMaxAge = "public, max-age=300"
	feedDescription = "Live football match streaming, highlights, and scores from Premier League, Champions League, La Liga, and more."
)

// rssDocument adds the atom and media namespaces and the atom:link self
// reference around the channel gorilla/feeds builds.
type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	MediaNS string     `xml:"xmlns:media,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	*feeds.RssFeed
	AtomLink rssAtomLink `xml:"atom:link"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

func (d *rssDocument) FeedXml() interface{} {
	return d
}

// atomDocument replaces the single alternate link with the self and
// alternate pair.
type atomDocument struct {
	*feeds.AtomFeed
	Links []atomLink `xml:"link"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

func (d *atomDocument) FeedXml() interface{} {
	return d
}

func (p *Pages) RSS(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.RSS")
	defer span.End()

	base := p.baseURL(r)
	now := p.clock.Now().UTC()
	items := p.services.Feed.Recent(ctx, now)

	feed := newFeed(base, now, items, func(item usecase.FeedItem) string { return item.Description })
	channel := (&feeds.Rss{Feed: feed}).RssFeed()
	channel.Language = "en-us"
	channel.Category = "Football"
	channel.Ttl = 5
	for i, item := range items {
		channel.Items[i].Category = item.League
	}

	doc := &rssDocument{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		MediaNS: "http://search.yahoo.com/mrss/",
		Channel: rssChannel{
			RssFeed:  channel,
			AtomLink: rssAtomLink{Href: base + "/feed/rss", Rel: "self", Type: "application/rss+xml"},
		},
	}
	p.writeXML(w, "application/rss+xml; charset=utf-8", feedCacheMaxAge, func(out io.Writer) error {
		return feeds.WriteXML(doc, out)
	})
}

func (p *Pages) Atom(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.Atom")
	defer span.End()

	base := p.baseURL(r)
	now := p.clock.Now().UTC()
	items := p.services.Feed.Recent(ctx, now)

	feed := newFeed(base, now, items, func(item usecase.FeedItem) string { return item.Summary })
	feed.Subtitle = "Live football streaming, highlights, and scores"
	feed.Author = &feeds.Author{Name: siteName}

	atom := (&feeds.Atom{Feed: feed}).AtomFeed()
	atom.Id = base + "/"
	atom.Icon = base + "/favicon.ico"
	atom.Logo = base + "/logo.png"

	doc := &atomDocument{
		AtomFeed: atom,
		Links:    []atomLink{{Href: base + "/feed/atom", Rel: "self"}, {Href: base}},
	}
	p.writeXML(w, "application/atom+xml; charset=utf-8", feedCacheMaxAge, func(out io.Writer) error {
		return feeds.WriteXML(doc, out)
	})
}

// newFeed lists items in the order given. describe picks the body text of
// each entry.
func newFeed(base string, now time.Time, items []usecase.FeedItem, describe func(usecase.FeedItem) string) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       feedTitle,
		Link:        &feeds.Link{Href: base},
		Description: feedDescription,
		Updated:     now,
		Image:       &feeds.Image{Url: base + "/logo.png", Title: siteName + " Live Football", Link: base},
		Items:       make([]*feeds.Item, 0, len(items)),
	}
	for _, item := range items {
		link := indexnow.MatchURL(base, item.Slug)
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: link, Rel: "alternate"},
			Id:          link,
			Description: describe(item),
			Created:     item.KickoffAt.UTC(),
			Updated:     item.KickoffAt.UTC(),
		})
	}
	return feed
}

// writeXML buffers the whole document before any header is written.
func (p *Pages) writeXML(w http.ResponseWriter, contentType, cacheControl string, encode func(io.Writer) error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := encode(buf); err != nil {
		p.logger.Error("encode xml document failed", "content_type", contentType, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if cacheControl != "" {
		w.Header().Set("Cache-Control", cacheControl)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}
