// Package football holds pure calculators for values derived from upstream
// match, standings and profile data.
package football

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	StatusInProgress  = "inprogress"
	SecondHalfCode    = 7
	UnknownStatus     = "Unknown"
	matchWindow       = 120 * time.Minute
	millisPerYear     = 365.25 * 24 * 60 * 60 * 1000
	secondHalfMinutes = 45
)

// MatchMinute returns the running match clock in whole minutes.
// A zero periodStart yields 0.
func MatchMinute(periodStart, now time.Time, statusType string, statusCode int) int {
	if periodStart.IsZero() {
		return 0
	}

	minute := int(math.Floor(now.Sub(periodStart).Seconds() / 60))
	if statusType == StatusInProgress && statusCode == SecondHalfCode {
		minute += secondHalfMinutes
	}
	if minute < 0 {
		return 0
	}
	return minute
}

func GoalDifference(scoresFor, scoresAgainst int) int {
	return scoresFor - scoresAgainst
}

// FormatGoalDifference renders the difference with an explicit plus sign
// when positive.
func FormatGoalDifference(scoresFor, scoresAgainst int) string {
	diff := GoalDifference(scoresFor, scoresAgainst)
	if diff > 0 {
		return "+" + strconv.Itoa(diff)
	}
	return strconv.Itoa(diff)
}

// AgeFromBirthMillis returns completed years since birth. ok is false for a
// missing or future birth timestamp.
func AgeFromBirthMillis(birthMillis int64, now time.Time) (age int, ok bool) {
	if birthMillis == 0 {
		return 0, false
	}
	elapsed := now.UnixMilli() - birthMillis
	if elapsed < 0 {
		return 0, false
	}
	return int(math.Floor(float64(elapsed) / millisPerYear)), true
}

// Slugify lowercases s and collapses every run of characters outside
// [a-z0-9] into a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

func FormatTransferFee(description string) string {
	if strings.TrimSpace(description) == "" {
		return "-"
	}
	return description
}

// FormatMarketValue renders euros as millions with one decimal, e.g. €45.5M.
func FormatMarketValue(euros int64) string {
	if euros <= 0 {
		return ""
	}
	return fmt.Sprintf("€%.1fM", float64(euros)/1_000_000)
}

// PlayerIDFromSlug extracts the numeric id from slugs like "bukayo-saka-934235".
// A bare numeric id is accepted too.
func PlayerIDFromSlug(slug string) (string, bool) {
	slug = strings.TrimSpace(slug)
	idx := strings.LastIndex(slug, "-")
	candidate := slug[idx+1:]
	if candidate == "" {
		return "", false
	}
	for _, r := range candidate {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return candidate, true
}

// IsLive reports whether now falls inside the two hour window after kickoff.
func IsLive(kickoff, now time.Time) bool {
	return !now.Before(kickoff) && !now.After(kickoff.Add(matchWindow))
}

func IsPast(kickoff, now time.Time) bool {
	return now.After(kickoff.Add(matchWindow))
}

// TitleFromSlug turns "premier-league" into "Premier League".
func TitleFromSlug(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// TitleCase capitalizes the first letter only: "england" -> "England".
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func SameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
