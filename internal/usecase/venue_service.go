package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/matchday/internal/domain/venue"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

const (
	venueListLimit       = 200
	venueCountriesShown  = 12
	venuesPerCountry     = 8
	otherCountryGrouping = "Other"
)

type VenueCountry struct {
	Country string
	Venues  []venue.Venue
	// Total is the group size before truncation to venuesPerCountry.
	Total int
}

type VenueDirectory struct {
	Countries     []VenueCountry
	TotalVenues   int
	TotalCapacity int64
}

type VenuePage struct {
	Venue       venue.Venue
	Title       string
	Description string
	Canonical   string
	JSONLD      StadiumLD
}

type VenueService struct {
	venues venue.Repository
	logger *logging.Logger
}

func NewVenueService(venues venue.Repository, logger *logging.Logger) *VenueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &VenueService{venues: venues, logger: logger}
}

// List groups the biggest venues by country. Countries are sorted by name
// and only the first twelve are kept, each with at most eight venues.
func (s *VenueService) List(ctx context.Context) (VenueDirectory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.List")
	defer span.End()

	items, err := s.venues.ListByCapacity(ctx, venueListLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "list venues failed", "error", err)
		return VenueDirectory{}, nil
	}

	return groupVenues(items), nil
}

func groupVenues(items []venue.Venue) VenueDirectory {
	out := VenueDirectory{TotalVenues: len(items)}
	byCountry := make(map[string][]venue.Venue)
	for _, item := range items {
		if item.Capacity != nil {
			out.TotalCapacity += int64(*item.Capacity)
		}
		country := strings.TrimSpace(item.Country)
		if country == "" {
			country = otherCountryGrouping
		}
		byCountry[country] = append(byCountry[country], item)
	}

	countries := make([]string, 0, len(byCountry))
	for country := range byCountry {
		countries = append(countries, country)
	}
	sort.Strings(countries)
	if len(countries) > venueCountriesShown {
		countries = countries[:venueCountriesShown]
	}

	out.Countries = make([]VenueCountry, 0, len(countries))
	for _, country := range countries {
		group := byCountry[country]
		shown := group
		if len(shown) > venuesPerCountry {
			shown = shown[:venuesPerCountry]
		}
		out.Countries = append(out.Countries, VenueCountry{Country: country, Venues: shown, Total: len(group)})
	}
	return out
}

func (s *VenueService) BySlug(ctx context.Context, slug string, baseURL string) (*VenuePage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VenueService.BySlug")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if err := validateVar("slug", slug, "required,slug"); err != nil {
		return nil, err
	}

	item, exists, err := s.venues.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.WarnContext(ctx, "venue lookup failed", "slug", slug, "error", err)
		return nil, fmt.Errorf("%w: venue slug=%s", ErrNotFound, slug)
	}
	if !exists {
		return nil, fmt.Errorf("%w: venue slug=%s", ErrNotFound, slug)
	}

	canonical := strings.TrimRight(baseURL, "/") + "/venues/" + item.Slug
	capacity := "N/A"
	if item.Capacity != nil {
		capacity = strconv.Itoa(*item.Capacity)
	}

	page := &VenuePage{
		Venue:       item,
		Title:       item.Name + " - Stadium Info, Matches & Capacity",
		Description: venueDescription(item, capacity),
		Canonical:   canonical,
		JSONLD: StadiumLD{
			Context: schemaContext,
			Type:    "StadiumOrArena",
			Name:    item.Name,
			Address: PostalAddressLD{
				Type:            "PostalAddress",
				AddressLocality: item.City,
				AddressCountry:  item.Country,
				StreetAddress:   item.Address,
			},
			MaximumAttendeeCapacity: item.Capacity,
			Image:                   item.ImageURL,
			URL:                     canonical,
		},
	}
	if item.Latitude != nil && item.Longitude != nil {
		page.JSONLD.Geo = &GeoCoordinatesLD{Type: "GeoCoordinates", Latitude: *item.Latitude, Longitude: *item.Longitude}
	}
	return page, nil
}

func venueDescription(item venue.Venue, capacity string) string {
	location := strings.Join(nonEmpty(item.City, item.Country), ", ")
	if location == "" {
		return fmt.Sprintf("%s stadium information. Capacity: %s.", item.Name, capacity)
	}
	return fmt.Sprintf("%s stadium information in %s. Capacity: %s.", item.Name, location, capacity)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
