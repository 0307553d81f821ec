package indexnow

import "strings"

// DefaultSiteBaseURL is used when no base is configured.
const DefaultSiteBaseURL = "https://live.iptv.shopping"

func MatchURL(baseURL, slug string) string {
	return siteBase(baseURL) + "/watch/" + slug
}

func LeagueURL(baseURL, slug string) string {
	return siteBase(baseURL) + "/leagues/" + slug
}

func TeamURL(baseURL, slug string) string {
	return siteBase(baseURL) + "/teams/" + slug
}

func PlayerURL(baseURL, id string) string {
	return siteBase(baseURL) + "/players/" + id
}

func siteBase(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return DefaultSiteBaseURL
	}
	return baseURL
}
