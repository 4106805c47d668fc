// Package surferrr is a thin convenience layer over browser-automation
// drivers. It exposes a small high-level surface (navigate, type text,
// submit a form, capture a screenshot) around element lookup by XPath and
// guarantees the browser process is terminated when the session's scope
// ends, on every exit path.
//
// Two backends implement the surface: package chrome drives Google Chrome
// through a chromedriver service using the Selenium WebDriver protocol, and
// package devtools drives a Chromium browser directly over the DevTools
// protocol. Both are opened from the same Config:
//
//	err := chrome.With(surferrr.Config{Headless: true}, func(s *chrome.Session) error {
//		if err := s.Access("http://example.test"); err != nil {
//			return err
//		}
//		if err := s.TypeText("//input[@id='q']", "hello"); err != nil {
//			return err
//		}
//		if err := s.Submit("//form"); err != nil {
//			return err
//		}
//		return s.Capture("/tmp/out.png")
//	})
//
// All real work (wire protocol, process lifecycle, DOM interaction) is owned
// by the underlying driver; failures are surfaced to the caller unmodified
// apart from operation context.
package surferrr
