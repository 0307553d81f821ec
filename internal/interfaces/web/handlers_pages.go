package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/riskibarqy/matchday/internal/domain/football"
	"github.com/riskibarqy/matchday/internal/usecase"
)

func (p *Pages) League(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.League")
	defer span.End()

	category, err := p.services.Leagues.Category(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		p.fail(ctx, w, r, "league page", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	p.html(w, http.StatusOK, "league", page{
		Title:       category.Title,
		Description: category.Description,
		Canonical:   p.baseURL(r) + "/leagues/" + category.Slug,
		Content:     category,
	})
}

func (p *Pages) LeagueWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.LeagueWeek")
	defer span.End()

	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		p.NotFound(w, r)
		return
	}

	view, err := p.services.Leagues.Week(ctx, chi.URLParam(r, "slug"), week, p.baseURL(r))
	if err != nil {
		p.fail(ctx, w, r, "league week page", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	p.html(w, http.StatusOK, "week", page{
		Title:       view.Title,
		Description: view.Description,
		Canonical:   view.JSONLD.URL,
		JSONLD:      view.JSONLD,
		Content:     view,
	})
}

func (p *Pages) Player(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.Player")
	defer span.End()

	profile, err := p.services.Players.Profile(ctx, chi.URLParam(r, "id"), p.baseURL(r))
	if err != nil {
		p.fail(ctx, w, r, "player page", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	p.html(w, http.StatusOK, "player", page{
		Title:       profile.Title,
		Description: profile.Description,
		Canonical:   profile.Canonical,
		JSONLD:      profile.JSONLD,
		Content:     profile,
	})
}

func (p *Pages) VenueList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.VenueList")
	defer span.End()

	directory, err := p.services.Venues.List(ctx)
	if err != nil {
		p.fail(ctx, w, r, "venue directory", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	p.html(w, http.StatusOK, "venues", page{
		Title:       "Football Stadiums & Venues Around the World",
		Description: "Explore " + strconv.Itoa(directory.TotalVenues) + " football stadiums grouped by country with capacity, location and surface details.",
		Canonical:   p.baseURL(r) + "/venues",
		Content:     directory,
	})
}

func (p *Pages) Venue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.Venue")
	defer span.End()

	view, err := p.services.Venues.BySlug(ctx, chi.URLParam(r, "slug"), p.baseURL(r))
	if err != nil {
		p.fail(ctx, w, r, "venue page", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	p.html(w, http.StatusOK, "venue", page{
		Title:       view.Title,
		Description: view.Description,
		Canonical:   view.Canonical,
		JSONLD:      view.JSONLD,
		Content:     view,
	})
}

type managerListView struct {
	Managers []managerCard
}

type managerCard struct {
	Slug     string
	Name     string
	TeamName string
	Country  string
	ImageURL string
}

func (p *Pages) ManagerList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.ManagerList")
	defer span.End()

	items, err := p.services.Managers.List(ctx)
	if err != nil {
		p.fail(ctx, w, r, "manager directory", err)
		return
	}

	view := managerListView{Managers: make([]managerCard, 0, len(items))}
	for _, item := range items {
		imageURL := item.ImageURL
		if imageURL == "" {
			imageURL = usecase.ManagerImageURL(item.ID)
		}
		view.Managers = append(view.Managers, managerCard{
			Slug:     item.Slug,
			Name:     item.Name,
			TeamName: item.TeamName,
			Country:  item.Nationality,
			ImageURL: imageURL,
		})
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	p.html(w, http.StatusOK, "managers", page{
		Title:       "Football Managers & Head Coaches",
		Description: "Profiles of " + strconv.Itoa(len(view.Managers)) + " football managers with their current clubs and nationality.",
		Canonical:   p.baseURL(r) + "/managers",
		Content:     view,
	})
}

func (p *Pages) Manager(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.Manager")
	defer span.End()

	view, err := p.services.Managers.BySlug(ctx, chi.URLParam(r, "slug"), p.baseURL(r))
	if err != nil {
		p.fail(ctx, w, r, "manager page", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	p.html(w, http.StatusOK, "manager", page{
		Title:       view.Title,
		Description: view.Description,
		Canonical:   view.Canonical,
		JSONLD:      view.JSONLD,
		Content:     view,
	})
}

type matchCenterView struct {
	*usecase.MatchCenter
	Score       string
	StatusLabel string
}

func (p *Pages) MatchCenter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.MatchCenter")
	defer span.End()

	center, err := p.services.Matches.MatchCenter(ctx, chi.URLParam(r, "id"), p.baseURL(r))
	if err != nil {
		p.fail(ctx, w, r, "match center", err)
		return
	}

	event := center.Event
	view := matchCenterView{
		MatchCenter: center,
		Score:       strconv.Itoa(event.HomeScore.CurrentOrZero()) + " - " + strconv.Itoa(event.AwayScore.CurrentOrZero()),
		StatusLabel: strings.TrimSpace(event.Status.Description),
	}
	if event.Status.Type == "notstarted" {
		view.Score = "vs"
	}
	if view.StatusLabel == "" {
		view.StatusLabel = football.UnknownStatus
	}

	cacheControl := "public, max-age=300"
	if center.IsLive {
		cacheControl = "no-store"
	}
	w.Header().Set("Cache-Control", cacheControl)
	p.html(w, http.StatusOK, "match", page{
		Title:       center.JSONLD.Name + " - Live Score & Match Center",
		Description: center.JSONLD.Description,
		Canonical:   center.JSONLD.URL,
		JSONLD:      center.JSONLD,
		Content:     view,
	})
}
