package chrome

import (
	"fmt"

	"github.com/tebeka/selenium"
	chromeopts "github.com/tebeka/selenium/chrome"

	"github.com/luispater/surferrr"
)

const argumentHeadless = "--headless"

// newCapabilities translates a session config into Selenium capabilities.
// Caller-supplied arguments come first, in the order given, followed by the
// flags derived from the config.
func newCapabilities(cfg surferrr.Config) selenium.Capabilities {
	args := make([]string, 0, len(cfg.Arguments)+4)
	args = append(args, cfg.Arguments...)

	if cfg.Headless {
		width := cfg.WindowWidth
		if width == 0 {
			width = surferrr.DefaultWindowWidth
		}
		height := cfg.WindowHeight
		if height == 0 {
			height = surferrr.DefaultWindowHeight
		}
		args = append(args, argumentHeadless, "--disable-gpu", fmt.Sprintf("--window-size=%d,%d", width, height))
	}

	if cfg.UserAgent != "" {
		args = append(args, "--user-agent="+cfg.UserAgent)
	}

	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chromeopts.Capabilities{
		Path: cfg.BinaryPath,
		Args: args,
	})
	return caps
}
