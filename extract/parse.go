package extract

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// instagramBase is the base against which relative profile hrefs resolve.
const instagramBase = "https://www.instagram.com"

var (
	// countPattern matches a number with an optional k/m/b suffix in
	// already-lowercased text, e.g. "12.3k" or "1234".
	countPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*([kmb]?)`)

	// usernamePattern is the set of characters Instagram allows in handles.
	usernamePattern = regexp.MustCompile(`^[a-z0-9._]+$`)
)

// reservedSegments are path roots that are site features, never usernames.
var reservedSegments = map[string]struct{}{
	"p":         {},
	"reel":      {},
	"explore":   {},
	"accounts":  {},
	"direct":    {},
	"stories":   {},
	"challenge": {},
}

// ParseCount converts a human-readable count like "12.3K" or "1,234" to an
// integer. Unparseable or empty input degrades to 0, never an error: counts
// come from scraped text and a bad one should not abort extraction.
func ParseCount(text string) int {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", " ")

	m := countPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	mult := 1.0
	switch m[2] {
	case "k":
		mult = 1_000
	case "m":
		mult = 1_000_000
	case "b":
		mult = 1_000_000_000
	}
	return int(math.Round(num * mult))
}

// UsernameFromHref extracts a username from a profile link. The href may be
// relative; it is resolved against the Instagram origin. Returns "" when the
// href does not parse, the first path segment is a reserved site feature, or
// the candidate contains characters Instagram handles never do.
func UsernameFromHref(href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(instagramBase)
	if err != nil {
		return ""
	}
	u, err := base.Parse(href)
	if err != nil {
		return ""
	}

	var first string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			first = seg
			break
		}
	}
	if first == "" {
		return ""
	}
	if _, reserved := reservedSegments[strings.ToLower(first)]; reserved {
		return ""
	}
	if !usernamePattern.MatchString(strings.ToLower(first)) {
		return ""
	}
	return first
}
