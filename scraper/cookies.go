package scraper

import (
	"context"
	"log/slog"

	"github.com/go-rod/rod/lib/proto"

	"github.com/hashlens/hashlens/models"
)

// defaultCookieDomain scopes cookies supplied without a domain.
const defaultCookieDomain = ".instagram.com"

// consentCookie suppresses the cookie-consent interstitial, which would
// otherwise cover the page and starve every selector.
var consentCookie = proto.NetworkCookieParam{
	Name:   "ig_nrcb",
	Value:  "1",
	Domain: defaultCookieDomain,
	Path:   "/",
}

// NormalizeCookie converts a caller-supplied cookie into browser cookie
// parameters, defaulting the domain and path. Duplicates are not collapsed;
// each supplied cookie is applied as-is.
func NormalizeCookie(c models.Cookie) proto.NetworkCookieParam {
	domain := c.Domain
	if domain == "" {
		domain = defaultCookieDomain
	}
	path := c.Path
	if path == "" {
		path = "/"
	}
	return proto.NetworkCookieParam{
		Name:   c.Name,
		Value:  c.Value,
		Domain: domain,
		Path:   path,
	}
}

// ApplyCookies injects session cookies. A navigation to the site root is
// required first so the browser accepts cookies scoped to the Instagram
// domain. Each cookie is applied individually; a rejected cookie is logged
// and skipped so one bad entry cannot abort the batch. The consent-bypass
// cookie is always force-added afterwards.
func (s *Session) ApplyCookies(ctx context.Context, cookies []models.Cookie) error {
	if len(cookies) == 0 {
		return nil
	}
	if err := s.Navigate(ctx, instagramRoot); err != nil {
		return categorizeError(err, "navigation before cookie injection failed")
	}

	for _, c := range cookies {
		param := NormalizeCookie(c)
		if err := s.page.Context(ctx).SetCookies([]*proto.NetworkCookieParam{&param}); err != nil {
			slog.Warn("cookie rejected", "name", c.Name, "error", err)
		}
	}

	consent := consentCookie
	if err := s.page.Context(ctx).SetCookies([]*proto.NetworkCookieParam{&consent}); err != nil {
		slog.Warn("consent cookie rejected", "error", err)
	}
	return nil
}
