// Package sitecfg loads the site configuration consumed by the round-trip
// core: magic words, page properties, and the sanitizer allow-lists. The
// YAML dependency is isolated here so callers never touch it directly.
package sitecfg

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits config input to prevent memory exhaustion (1MB).
var MaxInputSize = 1 << 20

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("sitecfg: config file not found")
	ErrConfigParse    = errors.New("sitecfg: failed to parse config")
	ErrInputTooLarge  = errors.New("sitecfg: input exceeds maximum size")
)

// PageProp describes one page-property magic word.
type PageProp struct {
	// Category marks value-bearing properties rendered on the category
	// path ({{WORD:value}}); the rest render as plain magic words.
	Category bool `yaml:"category"`
	// Wikitext is the source form for non-category properties.
	Wikitext string `yaml:"wikitext"`
}

// Config is the site configuration.
type Config struct {
	// BehaviorSwitches maps canonical names to their magic-word source
	// form, e.g. notoc -> __NOTOC__.
	BehaviorSwitches map[string]string `yaml:"behaviorSwitches"`
	// PageProps maps canonical page-property names to their rendering.
	PageProps map[string]PageProp `yaml:"pageProps"`
	// AllowedTags is the sanitizer tag allow-list.
	AllowedTags []string `yaml:"allowedTags"`
	// AllowedAttrs is the sanitizer attribute allow-list.
	AllowedAttrs []string `yaml:"allowedAttrs"`
	// TransclusionDeniedTags are additionally stripped inside transclusions.
	TransclusionDeniedTags []string `yaml:"transclusionDeniedTags"`
}

// Default returns the built-in site configuration.
func Default() *Config {
	return &Config{
		BehaviorSwitches: map[string]string{
			"notoc":          "__NOTOC__",
			"forcetoc":       "__FORCETOC__",
			"toc":            "__TOC__",
			"noeditsection":  "__NOEDITSECTION__",
			"nogallery":      "__NOGALLERY__",
			"notitleconvert": "__NOTITLECONVERT__",
		},
		PageProps: map[string]PageProp{
			"notoc":         {Wikitext: "__NOTOC__"},
			"forcetoc":      {Wikitext: "__FORCETOC__"},
			"toc":           {Wikitext: "__TOC__"},
			"noeditsection": {Wikitext: "__NOEDITSECTION__"},
			"nogallery":     {Wikitext: "__NOGALLERY__"},
			"defaultsort":   {Category: true},
			"displaytitle":  {Category: true},
		},
		AllowedTags: []string{
			"a", "abbr", "b", "bdi", "blockquote", "br", "caption", "cite",
			"code", "dd", "del", "div", "dl", "dt", "em", "figure", "h1",
			"h2", "h3", "h4", "h5", "h6", "hr", "i", "ins", "kbd", "li",
			"link", "meta", "ol", "p", "pre", "q", "s", "small", "span",
			"strong", "sub", "sup", "table", "td", "th", "tr", "u", "ul",
			"wbr",
		},
		AllowedAttrs: []string{
			"about", "class", "content", "data-mw", "data-parsoid", "dir",
			"href", "id", "lang", "property", "rel", "style", "title",
			"typeof",
		},
		TransclusionDeniedTags: []string{"link", "meta", "style"},
	}
}

// Load reads a site configuration from path. Unknown fields are rejected so
// a typo in a config file fails loudly instead of silently disabling a
// magic word.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("sitecfg: reading config: %w", err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}
