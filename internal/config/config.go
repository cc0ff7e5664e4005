// internal/config/config.go
//
// This package handles configuration and the .trainlog directory structure.
// Every directory trainlog runs from gets a .trainlog/ folder holding the
// config file and the activity log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the name of the directory we create in each project
	Dir = ".trainlog"

	defaultBaseURL = "http://127.0.0.1:5000"
)

const defaultProjectConfigYAML = `# trainlog configuration
version: 1

# Training-log server. request_timeout accepts Go durations (30s, 1m);
# 0 waits for the server indefinitely.
server:
  base_url: http://127.0.0.1:5000
  request_timeout: 0s

athlete:
  name: ""
`

// ServerConfig describes how to reach the training-log server.
type ServerConfig struct {
	BaseURL        string `yaml:"base_url"`
	RequestTimeout string `yaml:"request_timeout,omitempty"`
}

// AthleteConfig holds display details about the athlete.
type AthleteConfig struct {
	Name string `yaml:"name,omitempty"`
}

// ProjectConfig models .trainlog/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Athlete AthleteConfig `yaml:"athlete"`
}

// Config holds the runtime configuration for trainlog.
type Config struct {
	// ProjectDir is the directory where the user ran `trainlog` from
	ProjectDir string

	// StateDir is ProjectDir/.trainlog
	StateDir string

	Project ProjectConfig

	// serverOverride is the --server value, which outranks the environment.
	serverOverride string
}

// InitDir creates the .trainlog directory structure in projectDir and writes a
// default config.yaml if none exists.
//
// Structure created:
// .trainlog/
// ├── config.yaml
// └── logs/
func InitDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure %s: %w", stateDir, err)
	}
	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// NewConfig loads the project configuration rooted at projectDir. A missing
// config file yields defaults.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, Dir),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// LogPath returns the activity log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "trainlog.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// AthleteName returns the configured athlete name, possibly empty.
func (c *Config) AthleteName() string {
	if c == nil {
		return ""
	}
	return c.Project.Athlete.Name
}

// SetServerURL overrides the server address for this run without touching the
// file on disk.
func (c *Config) SetServerURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	server := c.Project.Server
	server.BaseURL = raw
	server.normalize()
	if err := server.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project.Server = server
	c.serverOverride = server.BaseURL
	return nil
}

// ServerOverride returns the address set by SetServerURL, or "" when the
// file value is in effect.
func (c *Config) ServerOverride() string {
	if c == nil {
		return ""
	}
	return c.serverOverride
}

// Timeout parses request_timeout. An empty value means no timeout.
func (s ServerConfig) Timeout() (time.Duration, error) {
	value := strings.TrimSpace(s.RequestTimeout)
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("request_timeout: %w", err)
	}
	return d, nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Server: ServerConfig{
			BaseURL: defaultBaseURL,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Server.BaseURL) == "" {
		pc.Server.BaseURL = defaultBaseURL
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Server.normalize()
	pc.Athlete.Name = strings.TrimSpace(pc.Athlete.Name)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if err := pc.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (s *ServerConfig) normalize() {
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	s.RequestTimeout = strings.TrimSpace(s.RequestTimeout)
}

func (s ServerConfig) validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("base_url must include a host")
	}
	timeout, err := s.Timeout()
	if err != nil {
		return err
	}
	if timeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
