package extract

import (
	"context"
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// boilerplateKeywords are navigational fragments that appear in the profile
// header but are never part of a biography. Kept as data so the filtering
// stays generic.
var boilerplateKeywords = []string{
	"followers",
	"following",
	"posts",
	"follow",
	"message",
	"options",
	"similar accounts",
	"suggested",
}

var (
	reHasLetter = regexp.MustCompile(`[a-zA-Z]`)
	rePunctOrWS = regexp.MustCompile(`[\s,.@!?:]`)
)

// Bio extracts the biography text. Embedded structured-description metadata
// (ld+json) is authoritative when present; otherwise the profile header's
// text lines are filtered heuristically and the best candidate wins.
func Bio() Strategy {
	return Strategy{
		Name: "bio",
		Run: func(_ context.Context, snap *Snapshot) *Partial {
			if b := snap.structuredDescription(); b != "" {
				return &Partial{Bio: b}
			}
			cand := BioCandidate(headerLines(snap.HTML), snap.Username)
			if cand == "" {
				return nil
			}
			return &Partial{Bio: cand}
		},
	}
}

// structuredDescription returns the first non-empty description field found
// across the page's ld+json blocks.
func (s *Snapshot) structuredDescription() string {
	doc, err := s.Doc()
	if err != nil {
		return ""
	}

	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var obj map[string]any
		if err := json.Unmarshal([]byte(sel.Text()), &obj); err != nil {
			return true
		}
		if desc, ok := obj["description"].(string); ok {
			if trimmed := strings.TrimSpace(desc); trimmed != "" {
				found = trimmed
				return false
			}
		}
		return true
	})
	return found
}

// headerLines tokenizes the snapshot and returns each trimmed text node
// inside the first <header> element as its own line, approximating the
// rendered line structure without a live DOM.
func headerLines(rawHTML string) []string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	var lines []string
	headerDepth := 0
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return lines
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			switch string(tn) {
			case "header":
				headerDepth++
			case "script", "style", "svg":
				if headerDepth > 0 {
					skipDepth++
				}
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			switch string(tn) {
			case "header":
				if headerDepth > 0 {
					headerDepth--
					if headerDepth == 0 {
						return lines
					}
				}
			case "script", "style", "svg":
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if headerDepth > 0 && skipDepth == 0 {
				if text := strings.TrimSpace(string(tokenizer.Text())); text != "" {
					lines = append(lines, text)
				}
			}
		}
	}
}

// BioCandidate filters header text lines down to the most plausible
// biography: boilerplate and username lines are dropped, duplicates
// collapse, candidates sort by descending length, and among the top five
// the first one containing punctuation or whitespace wins (else the
// longest). Candidates shorter than 3 characters are rejected.
func BioCandidate(lines []string, username string) string {
	lowerUser := strings.ToLower(username)

	var cleaned []string
	seen := make(map[string]struct{})
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		lower := strings.ToLower(s)
		if containsAny(lower, boilerplateKeywords) {
			continue
		}
		if !reHasLetter.MatchString(s) {
			continue
		}
		if lowerUser != "" && strings.Contains(lower, lowerUser) {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		cleaned = append(cleaned, s)
	}
	if len(cleaned) == 0 {
		return ""
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return len(cleaned[i]) > len(cleaned[j])
	})

	top := cleaned
	if len(top) > 5 {
		top = top[:5]
	}
	candidate := top[0]
	for _, s := range top {
		if rePunctOrWS.MatchString(s) {
			candidate = s
			break
		}
	}
	if len(candidate) < 3 {
		return ""
	}
	return candidate
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
