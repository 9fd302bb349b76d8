package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/hashlens/hashlens/config"
	"github.com/hashlens/hashlens/models"
)

// Options carries the caller-supplied knobs for one post's extraction.
type Options struct {
	Cookies  []models.Cookie
	Headless bool
	Timeout  time.Duration
}

// Outcome is the per-post result. Exactly one of (Author+Profile) or Err is
// meaningful: any failure anywhere in the pipeline degrades to Err, and the
// stream embeds it in the envelope instead of aborting.
type Outcome struct {
	Author  string
	Profile *models.Profile
	Err     error
}

// Scraper composes session creation, author resolution and profile
// extraction into one per-post pipeline.
type Scraper struct {
	factory *Factory
	cfg     config.ScraperConfig
}

// New creates a Scraper.
func New(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) *Scraper {
	return &Scraper{
		factory: NewFactory(browserCfg),
		cfg:     scraperCfg,
	}
}

// PostAuthorAndProfile runs the full per-post pipeline: fresh session →
// cookie injection → post navigation → settle wait → author resolution →
// profile extraction. The session is always closed, and no failure — error
// or panic — escapes past this boundary.
func (s *Scraper) PostAuthorAndProfile(ctx context.Context, postURL string, opts Options) (out Outcome) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.cfg.DefaultTimeout
	}
	if timeout > s.cfg.MaxTimeout {
		timeout = s.cfg.MaxTimeout
	}

	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: models.NewScrapeError(models.ErrCodeInternal,
				fmt.Sprintf("extraction panicked: %v", r), nil)}
		}
	}()

	session, err := s.factory.NewSession(ctx, opts.Headless)
	if err != nil {
		return Outcome{Err: err}
	}
	defer session.Close()

	if len(opts.Cookies) > 0 {
		if err := session.ApplyCookies(ctx, opts.Cookies); err != nil {
			return Outcome{Err: err}
		}
	}

	if err := session.Navigate(ctx, postURL); err != nil {
		return Outcome{Err: categorizeError(err, "navigation to post failed")}
	}

	settle := timeout
	if settle > settleWaitCap {
		settle = settleWaitCap
	}
	settled := waitFor(ctx, settle, func() bool {
		return session.Has(ctx, "time[datetime]") ||
			session.Has(ctx, `svg[aria-label='Like'], svg[aria-label='Comment']`)
	})
	if !settled {
		return Outcome{Err: models.NewScrapeError(models.ErrCodeTimeout, "post page did not settle", nil)}
	}

	author, err := session.ResolveAuthor(ctx)
	if err != nil {
		return Outcome{Err: err}
	}
	if author == "" {
		return Outcome{Err: models.NewScrapeError(models.ErrCodeAuthorNotFound, "author not found", nil)}
	}

	profile, err := session.FetchProfile(ctx, author, timeout)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Author: author, Profile: profile}
}
