package scraper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/hashlens/hashlens/config"
	"github.com/hashlens/hashlens/models"
)

// Desktop user agent pinned so profile pages render the desktop markup the
// extraction selectors expect.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121 Safari/537.36"

const instagramRoot = "https://www.instagram.com/"

// Factory builds isolated browser sessions. Each session owns its own
// Chrome process; nothing leaks between posts.
type Factory struct {
	cfg config.BrowserConfig
}

// NewFactory creates a session factory from browser configuration.
func NewFactory(cfg config.BrowserConfig) *Factory {
	return &Factory{cfg: cfg}
}

// Session wraps one launched browser with a single page.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
}

// NewSession launches a fresh browser and opens one page. The window size,
// language and user agent are fixed; headless-specific launch flags apply
// only when headless is requested.
func (f *Factory) NewSession(ctx context.Context, headless bool) (*Session, error) {
	l := launcher.New().Headless(headless)
	if f.cfg.BrowserBin != "" {
		l = l.Bin(f.cfg.BrowserBin)
	}
	if f.cfg.DefaultProxy != "" {
		l = l.Proxy(f.cfg.DefaultProxy)
	}
	if headless {
		l.Set(flags.Flag("disable-gpu"))
		l.Set(flags.Flag("disable-dev-shm-usage"))
		l.NoSandbox(true)
	}
	if f.cfg.NoSandbox {
		l.NoSandbox(true)
	}
	l.Set(flags.Flag("window-size"), "1280,900")
	l.Set(flags.Flag("lang"), "en-US")
	l.Set(flags.Flag("user-agent"), userAgent)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to launch browser", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to connect to browser", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to create page", err)
	}

	// Stealth must be injected before any navigation to take effect.
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
	}

	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{"Accept-Language": "en-US,en;q=0.9"}),
	}.Call(page)

	slog.Debug("browser session created", "headless", headless)
	return &Session{browser: browser, page: page}, nil
}

// Close kills the browser process. Safe to call even after a crash.
func (s *Session) Close() {
	defer func() {
		// Chrome may already be gone; closing twice must not panic the caller.
		_ = recover()
	}()
	s.browser.MustClose()
}

// Navigate loads the URL on the session's page.
func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.page.Context(ctx).Navigate(url)
}

// Eval runs a script in the live page and returns its JSON value. This is
// the capability surface the extraction chain's structured-endpoint
// strategy depends on.
func (s *Session) Eval(ctx context.Context, js string) (gson.JSON, error) {
	res, err := s.page.Context(ctx).Eval(js)
	if err != nil {
		return gson.New(nil), err
	}
	return res.Value, nil
}

// HTML returns the page's rendered outer HTML.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// CurrentURL returns the page's location, or "" when it cannot be read.
func (s *Session) CurrentURL(ctx context.Context) string {
	res, err := s.page.Context(ctx).Eval(`() => window.location.href`)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// Has reports whether at least one element matches the CSS selector.
func (s *Session) Has(ctx context.Context, selector string) bool {
	els, err := s.page.Context(ctx).Elements(selector)
	return err == nil && len(els) > 0
}

// waitFor polls pred every 250ms until it reports true, the budget runs
// out, or the context ends. A false return is not an error; callers decide
// whether an unsettled page is fatal.
func waitFor(ctx context.Context, timeout time.Duration, pred func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return false
		}
		if pred() {
			return true
		}
		time.Sleep(250 * time.Millisecond)
	}
	return false
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw errors into typed ScrapeErrors so failures
// carry a stable code into the stream envelope.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
