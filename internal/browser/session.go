// Package browser implements innebandy.PageFetcher on top of a single
// headless Chromium session driven by Playwright.
package browser

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/playwright-community/playwright-go"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
	"github.com/tyler180/floorball-appearances/internal/logging"
)

type Options struct {
	Headless       bool
	Timeout        time.Duration
	ExecutablePath string
}

// Session owns the Playwright driver, one browser and one page. Navigations
// are serialized on that page. Close must be called on every exit path.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	site    innebandy.Site
	log     *logging.Logger
	closed  bool
}

// Open starts the driver, launches Chromium and opens a page. Anything
// acquired before a failure is released before returning.
func Open(site innebandy.Site, opts Options, log *logging.Logger) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.Wrap(err, "start playwright")
	}

	launch := playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(opts.Headless)}
	if opts.ExecutablePath != "" {
		launch.ExecutablePath = playwright.String(opts.ExecutablePath)
	}
	br, err := pw.Chromium.Launch(launch)
	if err != nil {
		_ = pw.Stop()
		return nil, errors.Wrap(err, "launch chromium")
	}

	page, err := br.NewPage()
	if err != nil {
		_ = br.Close()
		_ = pw.Stop()
		return nil, errors.Wrap(err, "new page")
	}
	if opts.Timeout > 0 {
		ms := float64(opts.Timeout.Milliseconds())
		page.SetDefaultTimeout(ms)
		page.SetDefaultNavigationTimeout(ms)
	}

	return &Session{pw: pw, browser: br, page: page, site: site, log: log}, nil
}

// Fetch loads a player page using the player settle delay.
func (s *Session) Fetch(ctx context.Context, url string) (*innebandy.Page, error) {
	return s.fetch(ctx, url, s.site.PlayerSettle)
}

// RosterFetcher returns a fetcher on the same page that waits the longer
// roster settle delay.
func (s *Session) RosterFetcher() innebandy.PageFetcher {
	return settled{s: s, settle: s.site.RosterSettle}
}

type settled struct {
	s      *Session
	settle time.Duration
}

func (f settled) Fetch(ctx context.Context, url string) (*innebandy.Page, error) {
	return f.s.fetch(ctx, url, f.settle)
}

func (s *Session) fetch(ctx context.Context, url string, settle time.Duration) (*innebandy.Page, error) {
	if s.closed {
		return nil, errors.New("browser session closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, errors.Wrapf(err, "navigate %s", url)
	}
	s.acceptCookies()
	if settle > 0 {
		s.page.WaitForTimeout(float64(settle.Milliseconds()))
	}
	content, err := s.page.Content()
	if err != nil {
		return nil, errors.Wrapf(err, "read content %s", url)
	}
	return innebandy.ParsePage(url, content)
}

// acceptCookies clicks the first matching consent button, if any.
func (s *Session) acceptCookies() bool {
	for _, sel := range s.site.CookieSelectors {
		loc := s.page.Locator(sel).First()
		n, err := loc.Count()
		if err != nil || n == 0 {
			continue
		}
		if err := loc.Click(); err != nil {
			s.log.Debug("cookie button click failed", "selector", sel, "error", err)
			continue
		}
		if s.site.CookieSettle > 0 {
			s.page.WaitForTimeout(float64(s.site.CookieSettle.Milliseconds()))
		}
		return true
	}
	return false
}

// Close releases page, browser and driver in that order. Safe to call twice.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	var errs error
	if err := s.page.Close(); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "close page"))
	}
	if err := s.browser.Close(); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "close browser"))
	}
	if err := s.pw.Stop(); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "stop playwright"))
	}
	return errs
}
