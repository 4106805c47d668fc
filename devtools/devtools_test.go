package devtools

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luispater/surferrr"
)

const formPage = `<!DOCTYPE html>
<html>
<head><title>surferrr test</title></head>
<body>
<form id="search" action="/result" method="get">
<input id="q" name="q" type="text"/>
</form>
<p id="greeting">hello from surferrr</p>
</body>
</html>`

func newTestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, formPage)
	})
	mux.HandleFunc("/result", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<html><body><p id='echo'>%s</p></body></html>", r.URL.Query().Get("q"))
	})
	return httptest.NewServer(mux)
}

func browserAvailable() bool {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

// newTestSession opens a headless session, skipping the test when no
// Chromium browser is installed.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	if !browserAvailable() {
		t.Skip("no Chromium browser found in PATH")
	}
	s, err := New(surferrr.Config{
		Headless:  true,
		Arguments: []string{"--no-sandbox", "--disable-dev-shm-usage"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSessionEndToEnd(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	s := newTestSession(t)
	require.NoError(t, s.Access(server.URL))

	greeting, err := s.GetText("//p[@id='greeting']")
	require.NoError(t, err)
	assert.Equal(t, "hello from surferrr", greeting)

	require.NoError(t, s.TypeText("//input[@id='q']", "hello"))
	require.NoError(t, s.Submit("//form"))

	url, err := s.URL()
	require.NoError(t, err)
	assert.Contains(t, url, "q=hello")

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, s.Capture(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Access(server.URL), surferrr.ErrSessionClosed)
}

func TestTypeTextElementNotFound(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	s := newTestSession(t)
	require.NoError(t, s.Access(server.URL))

	err := s.TypeText("//input[@id='missing']", "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, surferrr.ErrElementNotFound)
	assert.True(t, surferrr.IsElementNotFound(err))
}

func TestHeadlessUserAgentOverride(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	s := newTestSession(t)
	require.NoError(t, s.Access(server.URL))

	ua, err := s.UserAgent()
	require.NoError(t, err)
	assert.NotContains(t, ua, "Headless")
}

func TestWithClosesOnFailure(t *testing.T) {
	if !browserAvailable() {
		t.Skip("no Chromium browser found in PATH")
	}

	cfg := surferrr.Config{
		Headless:  true,
		Arguments: []string{"--no-sandbox", "--disable-dev-shm-usage"},
	}

	var leaked *Session
	err := With(cfg, func(s *Session) error {
		leaked = s
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")
	require.NotNil(t, leaked)
	assert.ErrorIs(t, leaked.Access("http://example.test"), surferrr.ErrSessionClosed)
}

func TestCloseIdempotent(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestClosedSessionOperations(t *testing.T) {
	s := &Session{closed: true}

	assert.ErrorIs(t, s.Access("http://example.test"), surferrr.ErrSessionClosed)
	assert.ErrorIs(t, s.TypeText("//input", "hello"), surferrr.ErrSessionClosed)
	assert.ErrorIs(t, s.Submit("//form"), surferrr.ErrSessionClosed)
	assert.ErrorIs(t, s.Click("//a"), surferrr.ErrSessionClosed)
	assert.ErrorIs(t, s.Capture("out.png"), surferrr.ErrSessionClosed)

	_, err := s.GetText("//p")
	assert.ErrorIs(t, err, surferrr.ErrSessionClosed)
	_, err = s.URL()
	assert.ErrorIs(t, err, surferrr.ErrSessionClosed)
	_, err = s.Content()
	assert.ErrorIs(t, err, surferrr.ErrSessionClosed)
	_, err = s.UserAgent()
	assert.ErrorIs(t, err, surferrr.ErrSessionClosed)

	assert.NoError(t, s.Close())
}
