package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/quickcode-ui/quickcode/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "quickcode.json"

	// DefaultRegistry is the default component map URL.
	DefaultRegistry = "https://raw.githubusercontent.com/iamsufiyan560/QuickCode/main/components-map.js"

	// DefaultComponentsDir is where components land, relative to the base dir.
	DefaultComponentsDir = "components/ui"

	// DefaultHooksDir is where hooks land, relative to the base dir.
	DefaultHooksDir = "hooks"

	// DefaultComponentExt is the extension appended to component names.
	DefaultComponentExt = ".tsx"

	// DefaultHookExt is the extension appended to hook names.
	DefaultHookExt = ".ts"

	// DefaultPackageManager installs npm dependencies.
	DefaultPackageManager = "npm"

	// DefaultS3Region is used for s3:// registry URLs.
	DefaultS3Region = "us-east-1"

	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = "30s"
)

// PackageManagers lists the supported package manager commands.
var PackageManagers = []string{"npm", "pnpm", "yarn", "bun"}

// Config represents quickcode.json.
type Config struct {
	// Registry is the URL of the component map.
	Registry string `json:"registry,omitempty"`

	// ComponentsDir is the component directory, relative to the base dir.
	ComponentsDir string `json:"componentsDir,omitempty"`

	// HooksDir is the hook directory, relative to the base dir.
	HooksDir string `json:"hooksDir,omitempty"`

	// ComponentExt is appended to component names.
	ComponentExt string `json:"componentExt,omitempty"`

	// HookExt is appended to hook names.
	HookExt string `json:"hookExt,omitempty"`

	// PackageManager is one of npm, pnpm, yarn or bun.
	PackageManager string `json:"packageManager,omitempty"`

	// S3Region is the AWS region used for s3:// URLs.
	S3Region string `json:"s3Region,omitempty"`

	// Timeout bounds each fetch ("0" disables it).
	Timeout string `json:"timeout,omitempty"`

	// root is the project directory this config applies to.
	root string

	// configPath stores the path where the config was loaded from.
	configPath string
}

// New creates a new Config with default values rooted at dir.
func New(dir string) *Config {
	return &Config{
		Registry:       DefaultRegistry,
		ComponentsDir:  DefaultComponentsDir,
		HooksDir:       DefaultHooksDir,
		ComponentExt:   DefaultComponentExt,
		HookExt:        DefaultHookExt,
		PackageManager: DefaultPackageManager,
		S3Region:       DefaultS3Region,
		Timeout:        DefaultTimeout,
		root:           dir,
	}
}

// Load reads configuration from the specified directory.
// It looks for quickcode.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault is Load, falling back to defaults when dir has no
// quickcode.json.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(dir), nil
	}
	return Load(dir)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E100").Wrap(err)
	}

	cfg := New(filepath.Dir(path))
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E100").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that quickcode.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from, or to
// quickcode.json in the project root for a config that was never saved.
func (c *Config) Save() error {
	path := c.configPath
	if path == "" {
		path = filepath.Join(c.root, ConfigFileName)
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E100").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E113").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Root returns the project root directory.
func (c *Config) Root() string {
	return c.root
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Registry == "" {
		c.Registry = DefaultRegistry
	}
	if c.ComponentsDir == "" {
		c.ComponentsDir = DefaultComponentsDir
	}
	if c.HooksDir == "" {
		c.HooksDir = DefaultHooksDir
	}
	if c.ComponentExt == "" {
		c.ComponentExt = DefaultComponentExt
	}
	if c.HookExt == "" {
		c.HookExt = DefaultHookExt
	}
	if c.PackageManager == "" {
		c.PackageManager = DefaultPackageManager
	}
	if c.S3Region == "" {
		c.S3Region = DefaultS3Region
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	known := false
	for _, pm := range PackageManagers {
		if c.PackageManager == pm {
			known = true
			break
		}
	}
	if !known {
		return errors.New("E101").
			WithDetailf("Unsupported package manager %q", c.PackageManager).
			WithSuggestion("Use one of npm, pnpm, yarn or bun")
	}

	if _, err := c.FetchTimeout(); err != nil {
		return err
	}

	for _, dir := range []string{c.ComponentsDir, c.HooksDir} {
		if filepath.IsAbs(dir) || !filepath.IsLocal(filepath.FromSlash(dir)) {
			return errors.New("E101").
				WithDetailf("Directory %q must be relative to the project", dir)
		}
	}
	return nil
}

// FetchTimeout parses Timeout. Zero means no timeout.
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.Timeout == "" || c.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0, errors.New("E101").
			WithDetailf("Invalid timeout %q", c.Timeout).
			WithSuggestion(`Use a Go duration such as "30s", or "0" to disable`)
	}
	return d, nil
}

// Layout returns the path layout for this project.
func (c *Config) Layout() *Layout {
	return NewLayout(c.root, c)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
