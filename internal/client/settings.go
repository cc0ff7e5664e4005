package client

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kingrea/trainlog/internal/config"
)

const (
	// DefaultBaseURL is where the training-log server listens out of the box.
	DefaultBaseURL = "http://127.0.0.1:5000"
	// DefaultTimeout of zero leaves requests unbounded.
	DefaultTimeout time.Duration = 0
)

// Settings captures how the client reaches the server.
type Settings struct {
	BaseURL string
	Timeout time.Duration
}

// SettingsFromConfig builds Settings from .trainlog/config.yaml and
// TRAINLOG_* environment overrides. An explicit server override on cfg wins
// over the environment.
func SettingsFromConfig(cfg *config.Config) Settings {
	settings := Settings{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
	if cfg != nil {
		if base := strings.TrimSpace(cfg.Project.Server.BaseURL); base != "" {
			settings.BaseURL = base
		}
		if timeout, err := cfg.Project.Server.Timeout(); err == nil && timeout > 0 {
			settings.Timeout = timeout
		}
	}
	settings.applyEnvOverrides()
	if override := cfg.ServerOverride(); override != "" {
		settings.BaseURL = override
	}
	settings.normalize()
	return settings
}

func (s *Settings) applyEnvOverrides() {
	if s == nil {
		return
	}
	if base := strings.TrimSpace(os.Getenv("TRAINLOG_SERVER_URL")); base != "" {
		s.BaseURL = base
	}
	if value := strings.TrimSpace(os.Getenv("TRAINLOG_REQUEST_TIMEOUT")); value != "" {
		if timeout, err := time.ParseDuration(value); err == nil && timeout >= 0 {
			s.Timeout = timeout
		}
	}
}

func (s *Settings) normalize() {
	if s == nil {
		return
	}
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Timeout < 0 {
		s.Timeout = DefaultTimeout
	}
}

// Validate checks the base URL is an absolute http(s) address.
func (s Settings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("client: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("client: base url %q must use http or https", s.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("client: base url %q has no host", s.BaseURL)
	}
	return nil
}
