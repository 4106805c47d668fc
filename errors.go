package surferrr

import (
	"errors"
	"strings"
)

var (
	// ErrSessionClosed is returned by every operation invoked after Close.
	ErrSessionClosed = errors.New("session closed")

	// ErrElementNotFound is returned when an XPath expression matches no
	// element on the current page.
	ErrElementNotFound = errors.New("element not found")
)

// IsElementNotFound reports whether err was caused by an element lookup that
// matched nothing, either surfaced by this package or raw from the Selenium
// wire protocol.
func IsElementNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrElementNotFound) {
		return true
	}
	return strings.Contains(err.Error(), "no such element")
}
