package devtools

import (
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/luispater/surferrr"
)

// allocatorOptions translates a session config into exec allocator options.
// Caller-supplied arguments are split on the first '=' and passed through as
// browser flags.
func allocatorOptions(cfg surferrr.Config) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
	}

	if cfg.BinaryPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.BinaryPath))
	}

	if cfg.Headless {
		width := cfg.WindowWidth
		if width == 0 {
			width = surferrr.DefaultWindowWidth
		}
		height := cfg.WindowHeight
		if height == 0 {
			height = surferrr.DefaultWindowHeight
		}
		opts = append(opts, chromedp.Flag("headless", true))
		opts = append(opts, chromedp.Flag("disable-gpu", true))
		opts = append(opts, chromedp.WindowSize(width, height))
	}

	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	for _, arg := range cfg.Arguments {
		if arg == "" {
			continue
		}
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) == 2 {
			opts = append(opts, chromedp.Flag(strings.TrimPrefix(parts[0], "--"), parts[1]))
		} else {
			opts = append(opts, chromedp.Flag(strings.TrimPrefix(parts[0], "--"), true))
		}
	}

	return opts
}

// headlessUserAgent strips the "Headless" marker from a user agent string so
// pages see the same agent as a headed session.
func headlessUserAgent(ua string) string {
	return strings.ReplaceAll(ua, "Headless", "")
}

func (s *Session) overrideHeadlessUserAgent() error {
	var ua string
	if err := chromedp.Run(s.browserCtx, chromedp.Evaluate(`navigator.userAgent`, &ua)); err != nil {
		return fmt.Errorf("failed to read user agent: %w", err)
	}
	if err := chromedp.Run(s.browserCtx, emulation.SetUserAgentOverride(headlessUserAgent(ua))); err != nil {
		return fmt.Errorf("failed to override user agent: %w", err)
	}
	return nil
}
