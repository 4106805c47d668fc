// Package chrome drives Google Chrome through a chromedriver service using
// the Selenium WebDriver protocol.
package chrome

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"

	"github.com/luispater/surferrr"
)

// Session owns one chromedriver service process and one WebDriver handle.
// It is created by New and released by Close; after Close every operation
// fails with surferrr.ErrSessionClosed. A Session is not safe for concurrent
// use.
type Session struct {
	id      string
	cfg     surferrr.Config
	service *selenium.Service
	driver  selenium.WebDriver
	closed  bool
}

var _ surferrr.Browser = (*Session)(nil)

// New starts a chromedriver service and opens a browser session configured
// by cfg. The caller must Close the returned session; see With for the
// scoped form.
func New(cfg surferrr.Config) (*Session, error) {
	driverPath := cfg.DriverPath
	if driverPath == "" {
		driverPath = surferrr.DefaultDriverPath
	}
	port := cfg.DriverPort
	if port == 0 {
		port = surferrr.DefaultDriverPort
	}

	service, err := selenium.NewChromeDriverService(driverPath, port)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver service: %w", err)
	}

	driver, err := selenium.NewRemote(newCapabilities(cfg), fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		if stopErr := service.Stop(); stopErr != nil {
			log.Debugf("Error stopping chromedriver after session creation failed: %v", stopErr)
		}
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	s := &Session{
		id:      uuid.New().String(),
		cfg:     cfg,
		service: service,
		driver:  driver,
	}
	log.Infof("Chrome session %s launched with driver %s on port %d", s.id, driverPath, port)
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
	if err := s.driver.Get(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// element locates the element matching xpath. First match wins when the
// expression is ambiguous.
func (s *Session) element(xpath string) (selenium.WebElement, error) {
	elements, err := s.driver.FindElements(selenium.ByXPATH, xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to locate element %q: %w", xpath, err)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: %q", surferrr.ErrElementNotFound, xpath)
	}
	return elements[0], nil
}

// TypeText locates one element by XPath and sends text to it as simulated
// keystrokes.
func (s *Session) TypeText(xpath, text string) error {
	if s.closed {
		return surferrr.ErrSessionClosed
	}
	element, err := s.element(xpath)
	if err != nil {
		return err
	}
	log.Debugf("[%s] typing into element %q", s.id, xpath)
	if err = element.SendKeys(text); err != nil {
		return fmt.Errorf("failed to type into element %q: %w", xpath, err)
	}
	return nil
}

// Submit locates one element by XPath and submits its enclosing form.
func (s *Session) Submit(xpath string) error {
	if s.closed {
		return surferrr.ErrSessionClosed
	}
	element, err := s.element(xpath)
	if err != nil {
		return err
	}
	log.Debugf("[%s] submitting element %q", s.id, xpath)
	if err = element.Submit(); err != nil {
		return fmt.Errorf("failed to submit element %q: %w", xpath, err)
	}
	return nil
}

// Click locates one element by XPath and clicks it.
func (s *Session) Click(xpath string) error {
	if s.closed {
		return surferrr.ErrSessionClosed
	}
	element, err := s.element(xpath)
	if err != nil {
		return err
	}
	log.Debugf("[%s] clicking element %q", s.id, xpath)
	if err = element.Click(); err != nil {
		return fmt.Errorf("failed to click element %q: %w", xpath, err)
	}
	return nil
}

// GetText returns the visible text of the element located by xpath.
func (s *Session) GetText(xpath string) (string, error) {
	if s.closed {
		return "", surferrr.ErrSessionClosed
	}
	element, err := s.element(xpath)
	if err != nil {
		return "", err
	}
	text, err := element.Text()
	if err != nil {
		return "", fmt.Errorf("failed to get text of element %q: %w", xpath, err)
	}
	return text, nil
}

// Capture writes a screenshot of the current viewport to path, overwriting
// any existing file. The image format is determined by the driver.
func (s *Session) Capture(path string) error {
	if s.closed {
		return surferrr.ErrSessionClosed
	}
	data, err := s.driver.Screenshot()
	if err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
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
	url, err := s.driver.CurrentURL()
	if err != nil {
		return "", fmt.Errorf("failed to get current URL: %w", err)
	}
	return url, nil
}

// Content returns the current page source.
func (s *Session) Content() (string, error) {
	if s.closed {
		return "", surferrr.ErrSessionClosed
	}
	source, err := s.driver.PageSource()
	if err != nil {
		return "", fmt.Errorf("failed to get page source: %w", err)
	}
	return source, nil
}

// UserAgent returns the value of navigator.userAgent.
func (s *Session) UserAgent() (string, error) {
	if s.closed {
		return "", surferrr.ErrSessionClosed
	}
	result, err := s.driver.ExecuteScript("return navigator.userAgent;", nil)
	if err != nil {
		return "", fmt.Errorf("failed to get user agent: %w", err)
	}
	ua, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected user agent value: %v", result)
	}
	return ua, nil
}

// Close quits the browser and stops the chromedriver service. Closing an
// already closed session is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if s.driver != nil {
		if err := s.driver.Quit(); err != nil {
			firstErr = fmt.Errorf("failed to quit browser: %w", err)
		}
		s.driver = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to stop chromedriver service: %w", err)
		}
		s.service = nil
	}
	log.Infof("Chrome session %s closed", s.id)
	return firstErr
}
