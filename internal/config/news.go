package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrConfig    = errors.New("invalid news config")
	ErrSelection = errors.New("invalid selection")
)

type Language struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// NewsConfig is the news API configuration read from disk. It is never
// modified after Load returns.
type NewsConfig struct {
	BaseURL    string     `json:"base_url" yaml:"base_url"`
	APIKey     string     `json:"api_key" yaml:"api_key"`
	Categories []string   `json:"category" yaml:"category"`
	Languages  []Language `json:"language" yaml:"language"`
}

// Load reads the news config at path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Load(path string, logger *log.Logger) (NewsConfig, error) {
	if logger == nil {
		logger = log.Default()
	}

	cfg, err := load(path)
	if err != nil {
		logger.Printf("failed to load news config %s: %v", path, err)
		return NewsConfig{}, err
	}
	return cfg, nil
}

func load(path string) (NewsConfig, error) {
	var cfg NewsConfig

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cfg)
	default:
		err = json.Unmarshal(raw, &cfg)
	}
	if err != nil {
		return NewsConfig{}, fmt.Errorf("%w: decode %s: %w", ErrConfig, path, err)
	}

	if err := cfg.validate(); err != nil {
		return NewsConfig{}, err
	}
	return cfg, nil
}

func (c NewsConfig) validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base_url is required", ErrConfig)
	case c.APIKey == "":
		return fmt.Errorf("%w: api_key is required", ErrConfig)
	case len(c.Categories) == 0:
		return fmt.Errorf("%w: category is required", ErrConfig)
	case len(c.Languages) == 0:
		return fmt.Errorf("%w: language is required", ErrConfig)
	}
	for i, l := range c.Languages {
		if l.Code == "" {
			return fmt.Errorf("%w: language[%d].code is required", ErrConfig, i)
		}
	}
	return nil
}

func (c NewsConfig) String() string {
	return fmt.Sprintf("NewsConfig : %s, %s, %v, %v", c.BaseURL, maskKey(c.APIKey), c.Categories, c.Languages)
}

func (c NewsConfig) GetLanguages() []Language {
	return c.Languages
}

// LangCode returns the lowercased code of the i-th language (0-based).
func (c NewsConfig) LangCode(i int) (string, error) {
	if i < 0 || i >= len(c.Languages) {
		return "", fmt.Errorf("%w: language index %d out of range [0,%d)", ErrSelection, i, len(c.Languages))
	}
	return strings.ToLower(c.Languages[i].Code), nil
}

func (c NewsConfig) GetCategories() []string {
	return c.Categories
}

// Category returns the lowercased name of the i-th category (0-based).
func (c NewsConfig) Category(i int) (string, error) {
	if i < 0 || i >= len(c.Categories) {
		return "", fmt.Errorf("%w: category index %d out of range [0,%d)", ErrSelection, i, len(c.Categories))
	}
	return strings.ToLower(c.Categories[i]), nil
}

// maskKey hides all but the last 4 characters of an API key
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
