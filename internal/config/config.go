package config

import (
	"errors"
	"strings"
)

type Config struct {
	SiteTitle   string `mapstructure:"siteTitle"`
	Description string `mapstructure:"description"`
	Author      string `mapstructure:"author"`
	Avatar      string `mapstructure:"avatar"`
	BaseURL     string `mapstructure:"baseURL"`
	Language    string `mapstructure:"language"`

	OutputDir  string `mapstructure:"outputDir"`
	ContentDir string `mapstructure:"contentDir"`
	StaticDir  string `mapstructure:"staticDir"`

	PageSize       int    `mapstructure:"pageSize"`
	RecommendCount int    `mapstructure:"recommendCount"`
	RecommendSeed  uint64 `mapstructure:"recommendSeed"`
	Sanitize       bool   `mapstructure:"sanitize"`
	LogLevel       string `mapstructure:"logLevel"`

	Social   map[string]string `mapstructure:"social"`
	Comments Comments          `mapstructure:"comments"`
	Gallery  []GalleryImage    `mapstructure:"gallery"`
}

// Comments points the post page at an external comment service. Both fields
// empty disables the widget container.
type Comments struct {
	Endpoint string `mapstructure:"endpoint"`
	Repo     string `mapstructure:"repo"`
}

func (c Comments) Enabled() bool {
	return c.Endpoint != ""
}

type GalleryImage struct {
	Src     string `mapstructure:"src"`
	Alt     string `mapstructure:"alt"`
	Caption string `mapstructure:"caption"`
}

// Defaults returns the values used when neither a config file nor the
// environment sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"siteTitle":      "Typace",
		"description":    "",
		"author":         "",
		"baseURL":        "",
		"language":       "en",
		"outputDir":      "public",
		"contentDir":     "content",
		"staticDir":      "static",
		"pageSize":       5,
		"recommendCount": 3,
		"recommendSeed":  0,
		"sanitize":       true,
		"logLevel":       "info",

		"comments.endpoint": "",
		"comments.repo":     "",
	}
}

// Normalize trims values that are compared or concatenated later and checks
// the numeric settings.
func (c *Config) Normalize() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.PageSize < 1 {
		return errors.New("pageSize must be at least 1")
	}
	if c.RecommendCount < 0 {
		return errors.New("recommendCount must not be negative")
	}
	if c.OutputDir == "" {
		return errors.New("outputDir must not be empty")
	}
	return nil
}
