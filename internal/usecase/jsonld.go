package usecase

const schemaContext = "https://schema.org"

// The structs below are schema.org JSON-LD documents embedded in pages.

type PersonLD struct {
	Context     string        `json:"@context"`
	Type        string        `json:"@type"`
	Name        string        `json:"name"`
	JobTitle    string        `json:"jobTitle,omitempty"`
	BirthDate   string        `json:"birthDate,omitempty"`
	Nationality string        `json:"nationality,omitempty"`
	Height      *int          `json:"height,omitempty"`
	Image       string        `json:"image,omitempty"`
	URL         string        `json:"url,omitempty"`
	WorksFor    *SportsTeamLD `json:"worksFor,omitempty"`
	Athlete     *AthleteLD    `json:"athlete,omitempty"`
}

type AthleteLD struct {
	Type     string        `json:"@type"`
	Team     *SportsTeamLD `json:"team,omitempty"`
	Position string        `json:"position,omitempty"`
}

type SportsTeamLD struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type StadiumLD struct {
	Context                 string            `json:"@context"`
	Type                    string            `json:"@type"`
	Name                    string            `json:"name"`
	Address                 PostalAddressLD   `json:"address"`
	Geo                     *GeoCoordinatesLD `json:"geo,omitempty"`
	MaximumAttendeeCapacity *int              `json:"maximumAttendeeCapacity,omitempty"`
	Image                   string            `json:"image,omitempty"`
	URL                     string            `json:"url"`
}

type PostalAddressLD struct {
	Type            string `json:"@type"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
	StreetAddress   string `json:"streetAddress,omitempty"`
}

type GeoCoordinatesLD struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SportsEventLD struct {
	Context     string        `json:"@context"`
	Type        string        `json:"@type"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	Sport       string        `json:"sport"`
	StartDate   string        `json:"startDate,omitempty"`
	EventStatus string        `json:"eventStatus,omitempty"`
	HomeTeam    *SportsTeamLD `json:"homeTeam,omitempty"`
	AwayTeam    *SportsTeamLD `json:"awayTeam,omitempty"`
}
