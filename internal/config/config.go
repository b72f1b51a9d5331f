// ABOUTME: YAML configuration for the vault, defaults, feeds, and feed types
// ABOUTME: Loads with environment expansion and validates with ozzo-validation

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Config is the full feedvault configuration.
type Config struct {
	Vault     VaultConfig      `yaml:"vault"`
	Defaults  DefaultsConfig   `yaml:"defaults"`
	Feeds     []FeedConfig     `yaml:"feeds"`
	FeedTypes []FeedTypeConfig `yaml:"feed_types"`

	// FetchTimeoutSeconds bounds each feed fetch. Defaults to 30.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

// VaultConfig holds the vault root directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// DefaultsConfig holds the process-wide defaults a feed falls back to
// when it does not override them.
type DefaultsConfig struct {
	// Path is the vault subdirectory new documents are created under.
	Path string `yaml:"path"`
	// Template is the document body template. When empty, the built-in
	// DefaultTemplate is used; any replacement must keep a "guid: ..."
	// line so later runs can recognize materialized items.
	Template string `yaml:"template"`
}

// FeedConfig identifies one subscribed feed.
type FeedConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	// Path, Title, and Template override the process-wide defaults.
	// Title is itself a template rendered per item.
	Path       string `yaml:"path,omitempty"`
	Title      string `yaml:"title,omitempty"`
	Template   string `yaml:"template,omitempty"`
	FeedTypeID string `yaml:"feed_type_id,omitempty"`
}

// FeedTypeConfig surfaces non-standard feed/item XML fields under custom
// names. Paths are dotted lookups into the parsed feed/item document,
// e.g. "extensions.dc.creator".
type FeedTypeConfig struct {
	ID         string            `yaml:"id"`
	FeedFields map[string]string `yaml:"feed_fields,omitempty"`
	ItemFields map[string]string `yaml:"item_fields,omitempty"`
}

// Load reads a config file, expands $VAR references, applies defaults,
// and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Vault.Path == "" {
		c.Vault.Path = defaultVaultDir()
	} else {
		c.Vault.Path = ExpandPath(c.Vault.Path)
	}
	if c.Defaults.Template == "" {
		c.Defaults.Template = DefaultTemplate
	}
	if c.FetchTimeoutSeconds == 0 {
		c.FetchTimeoutSeconds = 30
	}
}

// FetchTimeout returns the per-feed fetch bound as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// FeedType resolves a feed type by id; ok is false when the id is empty
// or unknown.
func (c *Config) FeedType(id string) (FeedTypeConfig, bool) {
	for _, ft := range c.FeedTypes {
		if ft.ID == id && id != "" {
			return ft, true
		}
	}
	return FeedTypeConfig{}, false
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Vault),
		validation.Field(&c.FetchTimeoutSeconds, validation.Min(1)),
	); err != nil {
		return err
	}

	typeIDs := make(map[string]bool, len(c.FeedTypes))
	for i, ft := range c.FeedTypes {
		if err := ft.Validate(); err != nil {
			return fmt.Errorf("feed_types[%d]: %w", i, err)
		}
		if typeIDs[ft.ID] {
			return fmt.Errorf("feed_types[%d]: duplicate id %q", i, ft.ID)
		}
		typeIDs[ft.ID] = true
	}

	feedIDs := make(map[string]bool, len(c.Feeds))
	for i, f := range c.Feeds {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("feeds[%d]: %w", i, err)
		}
		if feedIDs[f.ID] {
			return fmt.Errorf("feeds[%d]: duplicate id %q", i, f.ID)
		}
		feedIDs[f.ID] = true
		if f.FeedTypeID != "" && !typeIDs[f.FeedTypeID] {
			return fmt.Errorf("feeds[%d]: unknown feed_type_id %q", i, f.FeedTypeID)
		}
	}
	return nil
}

// Validate validates the vault section.
func (v VaultConfig) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Path, validation.Required),
	)
}

// Validate validates a single feed entry.
func (f FeedConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ID, validation.Required),
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.URL, validation.Required, is.URL),
	)
}

// Validate validates a feed type entry.
func (t FeedTypeConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
	)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the standard location of the config file.
func DefaultConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "feedvault", "feedvault.yaml")
}

func defaultVaultDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "feedvault")
}
