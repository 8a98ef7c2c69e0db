package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Role selects which dashboard the client boots into.
type Role string

const (
	RoleLearner Role = "learner"
	RoleCoach   Role = "coach"
)

// Config holds everything the client reads at startup.
type Config struct {
	BaseURL        string            `yaml:"base_url"`
	Role           Role              `yaml:"role"`
	UserName       string            `yaml:"user_name"`
	LogLevel       string            `yaml:"log_level"`
	LogFile        string            `yaml:"log_file"`
	RequestTimeout string            `yaml:"request_timeout"`
	Endpoints      map[string]string `yaml:"endpoints"`
}

// ErrUnknownRole is returned by Validate when Role names no dashboard.
var ErrUnknownRole = errors.New("unknown role")

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		BaseURL:  "http://localhost:5000",
		Role:     RoleLearner,
		LogLevel: "info",
	}
}

// Load reads YAML config from path on top of the defaults and applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Missing file keeps defaults.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.BaseURL = getEnv("TUTORDESK_BASE_URL", cfg.BaseURL)
	cfg.Role = Role(getEnv("TUTORDESK_ROLE", string(cfg.Role)))
	cfg.UserName = getEnv("TUTORDESK_USER", cfg.UserName)
	cfg.LogLevel = getEnv("TUTORDESK_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("TUTORDESK_LOG", cfg.LogFile)

	return cfg, nil
}

// Validate checks the fields the dashboard cannot run without.
func (c *Config) Validate() error {
	switch c.Role {
	case RoleLearner, RoleCoach:
	default:
		return fmt.Errorf("%w %q (want learner or coach)", ErrUnknownRole, c.Role)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	for name := range c.Endpoints {
		if _, ok := defaultEndpoints[name]; !ok {
			return fmt.Errorf("unknown endpoint %q", name)
		}
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses RequestTimeout. Zero means requests never time out.
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
	}
	return d, nil
}

// RoleContext freezes the config into the endpoint table the dashboards use.
func (c *Config) RoleContext() RoleContext {
	endpoints := make(map[string]string, len(defaultEndpoints))
	for name, path := range defaultEndpoints {
		endpoints[name] = path
	}
	for name, path := range c.Endpoints {
		endpoints[name] = path
	}
	return RoleContext{
		role:      c.Role,
		userName:  c.UserName,
		baseURL:   strings.TrimRight(c.BaseURL, "/"),
		endpoints: endpoints,
	}
}

// ResolvePath returns the config file path using the --config flag (highest
// priority), then TUTORDESK_CONFIG, then $XDG_CONFIG_HOME/tutordesk/config.yaml.
func ResolvePath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if p := os.Getenv("TUTORDESK_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tutordesk", "config.yaml"), nil
}

// DefaultLogPath resolves $XDG_STATE_HOME/tutordesk/tutordesk.log and
// creates its parent directory.
func DefaultLogPath() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "tutordesk", "tutordesk.log")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func xdgDir(env, fallback string) (string, error) {
	if d := os.Getenv(env); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, fallback), nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
