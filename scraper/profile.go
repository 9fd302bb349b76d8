package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/hashlens/hashlens/extract"
	"github.com/hashlens/hashlens/models"
)

// settleWaitCap bounds how long a profile or post page may take to settle,
// regardless of the caller's overall budget.
const settleWaitCap = 20 * time.Second

var reLoginURL = regexp.MustCompile(`(?i)/accounts/login`)

// isLoginPage detects the login wall: either the URL was rewritten to the
// login route, or the page grew a username/password form pair.
func (s *Session) isLoginPage(ctx context.Context) bool {
	if reLoginURL.MatchString(s.CurrentURL(ctx)) {
		return true
	}
	els, err := s.page.Context(ctx).Elements(`form input[name='username'], form input[name='password']`)
	return err == nil && len(els) >= 2
}

// FetchProfile navigates the session to the username's profile page and runs
// the extraction fallback chain. A login wall fails fast before any strategy
// runs; there is no retry for this post.
func (s *Session) FetchProfile(ctx context.Context, username string, timeout time.Duration) (*models.Profile, error) {
	if username == "" {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "username required", nil)
	}

	profileURL := fmt.Sprintf("https://www.instagram.com/%s/?hl=en", url.PathEscape(username))
	if err := s.Navigate(ctx, profileURL); err != nil {
		return nil, categorizeError(err, "navigation to profile failed")
	}

	settle := timeout
	if settle <= 0 || settle > settleWaitCap {
		settle = settleWaitCap
	}
	waitFor(ctx, settle, func() bool {
		if reLoginURL.MatchString(s.CurrentURL(ctx)) {
			return true
		}
		hasMeta, err := s.Eval(ctx, `() => !!document.querySelector("meta[property='og:description'], meta[name='description']")`)
		if err == nil && hasMeta.Bool() {
			return true
		}
		return s.Has(ctx, "header")
	})

	if s.isLoginPage(ctx) {
		return nil, models.NewScrapeError(models.ErrCodeLoginRequired,
			"login required or invalid cookies: profile redirected to login", nil)
	}

	rawHTML, err := s.HTML(ctx)
	if err != nil {
		slog.Warn("profile snapshot failed, markup strategies disabled", "username", username, "error", err)
		rawHTML = ""
	}
	snap := &extract.Snapshot{Username: username, HTML: rawHTML}

	chain := []extract.Strategy{
		s.webProfileInfoStrategy(username),
		extract.MetaCounts(),
		extract.AnchorCounts(),
		extract.Bio(),
	}
	res := extract.RunChain(ctx, snap, chain)
	slog.Debug("profile extraction finished", "username", username, "sources", res.Sources)

	prof := &models.Profile{
		Username:   username,
		Followers:  res.Followers,
		Following:  res.Following,
		ProfileURL: profileURL,
	}
	if res.Bio != "" {
		bio := res.Bio
		prof.Bio = &bio
	}
	return prof, nil
}

// webProfileInfoStrategy is the highest-priority strategy: an in-page
// authenticated fetch against the user-info endpoint, riding on whatever
// session cookies the page holds. Any non-OK status or parse failure is
// "no data", not an error, so the chain falls through.
func (s *Session) webProfileInfoStrategy(username string) extract.Strategy {
	return extract.Strategy{
		Name: "api",
		Run: func(ctx context.Context, _ *extract.Snapshot) *extract.Partial {
			v, err := s.Eval(ctx, webProfileInfoJS(username))
			if err != nil || v.Nil() {
				return nil
			}

			var p extract.Partial
			if f := v.Get("followers"); !f.Nil() {
				n := f.Int()
				p.Followers = &n
			}
			if g := v.Get("following"); !g.Nil() {
				n := g.Int()
				p.Following = &n
			}
			p.Bio = strings.TrimSpace(v.Get("bio").Str())
			if p.Followers == nil && p.Following == nil && p.Bio == "" {
				return nil
			}
			return &p
		},
	}
}

// webProfileInfoJS builds the in-page fetch script. The username is JSON
// encoded into the script to keep it inert.
func webProfileInfoJS(username string) string {
	quoted, _ := json.Marshal(username)
	return fmt.Sprintf(`async () => {
		const username = %s;
		try {
			const res = await fetch(
				'https://www.instagram.com/api/v1/users/web_profile_info/?username=' + encodeURIComponent(username),
				{
					method: 'GET',
					credentials: 'include',
					headers: {
						'accept': '*/*',
						'accept-language': 'en-US,en;q=0.9',
						'x-ig-app-id': '936619743392459'
					}
				}
			);
			if (!res.ok) return null;
			const json = await res.json().catch(() => null);
			if (!json) return null;
			const user = json.data?.user || json.user || json.graphql?.user || null;
			if (!user) return null;
			const followers = user.edge_followed_by?.count ?? user.follower_count ?? null;
			const following = user.edge_follow?.count ?? user.following_count ?? null;
			const bio = (user.biography ?? '').trim();
			return {
				followers: typeof followers === 'number' ? followers : null,
				following: typeof following === 'number' ? following : null,
				bio
			};
		} catch {
			return null;
		}
	}`, quoted)
}
