package extract

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// AuthorSelectors are the ordered anchor heuristics for the post page's
// author byline. Instagram changes this markup frequently; update these when
// author resolution breaks. Order matters: earlier entries are more specific
// and therefore higher-confidence.
var AuthorSelectors = []string{
	`a[href^='/'][class*='notranslate']`,
	`a[href^='/'][role='link']`,
	`article header a[href^='/']`,
	`header a[href^='/']`,
}

// authorMatchers are the compiled forms, built once at init so a selector
// typo fails loudly at startup rather than silently matching nothing.
var authorMatchers = func() []cascadia.Selector {
	matchers := make([]cascadia.Selector, len(AuthorSelectors))
	for i, sel := range AuthorSelectors {
		matchers[i] = cascadia.MustCompile(sel)
	}
	return matchers
}()

// AuthorFromSnapshot finds the post author's username in a rendered post
// page. Selectors are tried in priority order; within one selector's
// matches, the first href that resolves to a valid username wins. An empty
// result means no candidate anchor carried a username; callers treat that
// as a normal outcome.
func AuthorFromSnapshot(rawHTML string) string {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	for _, m := range authorMatchers {
		for _, node := range m.MatchAll(root) {
			for _, attr := range node.Attr {
				if attr.Key != "href" {
					continue
				}
				if username := UsernameFromHref(attr.Val); username != "" {
					return username
				}
			}
		}
	}
	return ""
}
