package surferrr

// Browser is the high-level surface shared by the session backends. Every
// call blocks until the underlying driver completes or fails. A Browser is
// not safe for concurrent use; callers must serialize access to one session.
type Browser interface {
	// Access navigates the top-level browsing context to url.
	Access(url string) error
	// TypeText locates one element by XPath and sends text to it as
	// simulated keystrokes.
	TypeText(xpath, text string) error
	// Submit locates one element by XPath and submits its enclosing form.
	Submit(xpath string) error
	// Click locates one element by XPath and clicks it.
	Click(xpath string) error
	// GetText returns the visible text of the element located by xpath.
	GetText(xpath string) (string, error)
	// Capture writes a screenshot of the current viewport to path,
	// overwriting any existing file.
	Capture(path string) error
	// URL returns the browser's current URL.
	URL() (string, error)
	// Content returns the current page source.
	Content() (string, error)
	// UserAgent returns the value of navigator.userAgent.
	UserAgent() (string, error)
	// Close terminates the browser process and releases all resources.
	// Closing an already closed session is a no-op.
	Close() error
}
