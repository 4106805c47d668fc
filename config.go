package surferrr

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Defaults applied by the backends when the corresponding Config field is
// left at its zero value.
const (
	DefaultDriverPath   = "chromedriver"
	DefaultDriverPort   = 9515
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080
)

// Config describes how a browser session is launched. It is read once when
// the session is opened; changing it afterwards has no effect on a running
// session.
type Config struct {
	// Headless runs the browser process without a visible UI.
	Headless bool `yaml:"headless"`
	// Arguments are passed through verbatim as browser launch flags, in
	// the order given.
	Arguments []string `yaml:"arguments,omitempty"`
	// BinaryPath overrides the browser binary the driver launches. When
	// empty the driver auto-detects an installed browser.
	BinaryPath string `yaml:"binary-path,omitempty"`
	// DriverPath is the chromedriver binary used by the chrome backend.
	// Defaults to "chromedriver", resolved through PATH.
	DriverPath string `yaml:"driver-path,omitempty"`
	// DriverPort is the port the chromedriver service listens on.
	DriverPort int `yaml:"driver-port,omitempty"`
	// UserAgent overrides the browser user agent at launch.
	UserAgent string `yaml:"user-agent,omitempty"`
	// WindowWidth and WindowHeight size the viewport of headless sessions.
	WindowWidth  int `yaml:"window-width,omitempty"`
	WindowHeight int `yaml:"window-height,omitempty"`
}

// LoadConfig loads a session configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}
