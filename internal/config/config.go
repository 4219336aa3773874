package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/crusherrl/icslinks"
)

// EnvConfigPath names the environment variable holding the default config
// file path.
const EnvConfigPath = "ICSLINKS_CONFIG"

// Config holds defaults for link generation.
type Config struct {
	// Labels overrides provider display labels, keyed by client id
	// (e.g. "google": "My Google").
	Labels map[string]string `yaml:"labels" json:"labels"`

	// Providers restricts output to these client ids.  Empty means all.
	Providers []string `yaml:"providers" json:"providers"`

	// Output is the JSON file written by the CLI.  Empty means stdout.
	Output string `yaml:"output" json:"output"`

	// URLsOnly drops labels from the output.
	URLsOnly bool `yaml:"urls_only" json:"urls_only"`
}

func DefaultConfig() *Config {
	return &Config{
		Labels:    map[string]string{},
		Providers: []string{},
	}
}

// Normalize fills nil collections and trims ids.
func (c *Config) Normalize() {
	if c.Labels == nil {
		c.Labels = map[string]string{}
	}
	if c.Providers == nil {
		c.Providers = []string{}
	}
	for i, p := range c.Providers {
		c.Providers[i] = strings.TrimSpace(p)
	}
	c.Output = strings.TrimSpace(c.Output)
}

// Load reads a config file.  ".json" and ".jsonc" files may contain
// comments and trailing commas; anything else is read as YAML.  An empty
// path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config data in the format named by ext.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	cfg.Normalize()
	return cfg, nil
}

// LabelOverrides resolves label keys to providers.  Keys that name no
// provider are dropped, matching Builder.SetLabels.
func (c *Config) LabelOverrides() map[icslinks.Provider]string {
	out := make(map[icslinks.Provider]string, len(c.Labels))
	for k, label := range c.Labels {
		p, err := icslinks.ParseProvider(k)
		if err != nil {
			continue
		}
		out[p] = label
	}
	return out
}

// ProviderIDs resolves Providers.  Unknown ids are reported together.
func (c *Config) ProviderIDs() ([]icslinks.Provider, error) {
	var errs []error
	out := make([]icslinks.Provider, 0, len(c.Providers))
	for _, s := range c.Providers {
		if s == "" {
			continue
		}
		p, err := icslinks.ParseProvider(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, p)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
