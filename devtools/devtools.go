// Package devtools drives a Chromium browser directly over the DevTools
// protocol using chromedp, without a chromedriver binary in between. It
// exposes the same session surface as package chrome.
package devtools

import (
	"context"
	"fmt"
	"os"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/luispater/surferrr"
)

// Session owns one browser process through a chromedp exec allocator. It is
// created by New and released by Close; after Close every operation fails
// with surferrr.ErrSessionClosed. A Session is not safe for concurrent use.
type Session struct {
	id            string
	cfg           surferrr.Config
	allocator     context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	closed        bool
}

var _ surferrr.Browser = (*Session)(nil)

// New launches a browser process configured by cfg and attaches a DevTools
// session to it. The caller must Close the returned session; see With for
// the scoped form.
func New(cfg surferrr.Config) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions(cfg)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Infof))

	s := &Session{
		id:            uuid.New().String(),
		cfg:           cfg,
		allocator:     allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}

	if err := chromedp.Run(s.browserCtx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	// Headless Chrome advertises itself in navigator.userAgent; scrub the
	// marker unless the caller pinned an agent of their own.
	if cfg.Headless && cfg.UserAgent == "" {
		if err := s.overrideHeadlessUserAgent(); err != nil {
			_ = s.Close()
			return nil, err
		}
	}

	log.Infof("DevTools session %s launched", s.id)
	return s, nil
}

// With opens a session, runs fn with it, and guarantees Close on every exit
// path, including a panic inside fn.
func With(cfg surferrr.Config, fn func(*Session) error) error {
	s, err := New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			log.Debugf("Error closing session %s: %v", s.id, closeErr)
		}
	}()
	return fn(s)
}

// Access navigates the browser to url.
func (s *Session) Access(url string) error {
	if s.closed {
		return surferrr.ErrSessionClosed
	}
	log.Debugf("[%s] navigating to %s", s.id, url)
	if err := chromedp.Run(s.browserCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// nodes resolves xpath on the current page without waiting for a match to
// appear. Zero matches is an error; interaction actions use the first match
// when the expression is ambiguous.
func (s *Session) nodes(xpath string) ([]*cdp.Node, error) {
	var nodes []*cdp.Node
	err := chromedp.Run(s.browserCtx, chromedp.Nodes(xpath, &nodes, chromedp.BySearch, chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("failed to locate element %q: %w", xpath, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %q", surferrr.ErrElementNotFound, xpath)
	}
	return nodes, nil
}

// TypeText locates one element by XPath and sends text to it as simulated
// keystrokes.
func (s *Session) TypeText(xpath, text string) error {
	if s.closed {
		return surferrr.ErrSessionClosed
	}
	if _, err := s.nodes(xpath); err != nil {
		return err
	}
	log.Debugf("[%s] typing into element %q", s.id, xpath)
	if err := chromedp.Run(s.browserCtx, chromedp.SendKeys(xpath, text, chromedp.BySearch)); err != nil {
		return fmt.Errorf("failed to type into element %q: %w", xpath, err)
	}
	return nil
}

// Submit locates one element by XPath and submits its enclosing form.
func (s *Session) Submit(xpath string) error {
	if s.closed {
		return surferrr.ErrSessionClosed
	}
	if _, err := s.nodes(xpath); err != nil {
		return err
	}
	log.Debugf("[%s] submitting element %q", s.id, xpath)
	if err := chromedp.Run(s.browserCtx, chromedp.Submit(xpath, chromedp.BySearch)); err != nil {
		return fmt.Errorf("failed to submit element %q: %w", xpath, err)
	}
	return nil
}

// Click locates one element by XPath and clicks it.
func (s *Session) Click(xpath string) error {
	if s.closed {
		return surferrr.ErrSessionClosed
	}
	if _, err := s.nodes(xpath); err != nil {
		return err
	}
	log.Debugf("[%s] clicking element %q", s.id, xpath)
	if err := chromedp.Run(s.browserCtx, chromedp.Click(xpath, chromedp.BySearch)); err != nil {
		return fmt.Errorf("failed to click element %q: %w", xpath, err)
	}
	return nil
}

// GetText returns the visible text of the element located by xpath.
func (s *Session) GetText(xpath string) (string, error) {
	if s.closed {
		return "", surferrr.ErrSessionClosed
	}
	if _, err := s.nodes(xpath); err != nil {
		return "", err
	}
	var text string
	if err := chromedp.Run(s.browserCtx, chromedp.Text(xpath, &text, chromedp.BySearch)); err != nil {
		return "", fmt.Errorf("failed to get text of element %q: %w", xpath, err)
	}
	return text, nil
}

// Capture writes a PNG screenshot of the current viewport to path,
// overwriting any existing file.
func (s *Session) Capture(path string) error {
	if s.closed {
		return surferrr.ErrSessionClosed
	}
	var buf []byte
	if err := chromedp.Run(s.browserCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("failed to write screenshot to %s: %w", path, err)
	}
	log.Debugf("[%s] screenshot written to %s", s.id, path)
	return nil
}

// URL returns the browser's current URL.
func (s *Session) URL() (string, error) {
	if s.closed {
		return "", surferrr.ErrSessionClosed
	}
	var url string
	if err := chromedp.Run(s.browserCtx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to get current URL: %w", err)
	}
	return url, nil
}

// Content returns the current page source.
func (s *Session) Content() (string, error) {
	if s.closed {
		return "", surferrr.ErrSessionClosed
	}
	var html string
	if err := chromedp.Run(s.browserCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to get page source: %w", err)
	}
	return html, nil
}

// UserAgent returns the value of navigator.userAgent.
func (s *Session) UserAgent() (string, error) {
	if s.closed {
		return "", surferrr.ErrSessionClosed
	}
	var ua string
	if err := chromedp.Run(s.browserCtx, chromedp.Evaluate(`navigator.userAgent`, &ua)); err != nil {
		return "", fmt.Errorf("failed to get user agent: %w", err)
	}
	return ua, nil
}

// Close cancels the browser and allocator contexts, shutting down the
// browser process. Closing an already closed session is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.browserCancel != nil {
		log.Debugf("[%s] cancelling browser context...", s.id)
		s.browserCancel()
		s.browserCancel = nil
		s.browserCtx = nil
	}

	if s.allocCancel != nil {
		log.Debugf("[%s] cancelling allocator context...", s.id)
		s.allocCancel()
		s.allocCancel = nil
		s.allocator = nil
	}

	log.Infof("DevTools session %s closed", s.id)
	return nil
}
