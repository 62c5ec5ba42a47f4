package wikirt

import (
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/wikirt/go-wikirt/internal/sitecfg"
)

// pagePropRe extracts the canonical word from a structured page-property
// attribute value such as mw:PageProp/notoc.
var pagePropRe = regexp.MustCompile(`^mw:PageProp/(.+)$`)

// Env bundles the site configuration, the precompiled magic-word patterns,
// the original page source, and the logging sink. One Env serves any number
// of pipelines; it is read-only after construction.
type Env struct {
	cfg *sitecfg.Config

	// behaviorSwitchRe matches any configured __WORD__ switch in text.
	behaviorSwitchRe *regexp.Regexp
	// switchNames maps the matched source form back to its canonical name.
	switchNames map[string]string
	// propPatterns holds one compiled matcher per page property, keyed by
	// canonical name. Compiled once here so serialization never recompiles.
	propPatterns map[string]*regexp.Regexp

	allowedTags  map[string]bool
	allowedAttrs map[string]bool
	deniedInTx   map[string]bool

	// PageSrc is the original page source, when a sibling source file was
	// available. Serialization prefers recorded source over re-derivation.
	PageSrc string

	Logger *slog.Logger
}

// NewEnv builds an Env from cfg, or from the built-in defaults when cfg is
// nil.
func NewEnv(cfg *sitecfg.Config) (*Env, error) {
	if cfg == nil {
		cfg = sitecfg.Default()
	}

	e := &Env{
		cfg:          cfg,
		switchNames:  make(map[string]string, len(cfg.BehaviorSwitches)),
		propPatterns: make(map[string]*regexp.Regexp, len(cfg.PageProps)),
		allowedTags:  make(map[string]bool, len(cfg.AllowedTags)),
		allowedAttrs: make(map[string]bool, len(cfg.AllowedAttrs)),
		deniedInTx:   make(map[string]bool, len(cfg.TransclusionDeniedTags)),
		Logger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	alts := make([]string, 0, len(cfg.BehaviorSwitches))
	for name, src := range cfg.BehaviorSwitches {
		e.switchNames[src] = name
		alts = append(alts, regexp.QuoteMeta(src))
	}
	if len(alts) > 0 {
		re, err := regexp.Compile(strings.Join(alts, "|"))
		if err != nil {
			return nil, err
		}
		e.behaviorSwitchRe = re
	}

	for name := range cfg.PageProps {
		re, err := regexp.Compile(`(?i)^` + regexp.QuoteMeta(name) + `$`)
		if err != nil {
			return nil, err
		}
		e.propPatterns[name] = re
	}

	for _, t := range cfg.AllowedTags {
		e.allowedTags[strings.ToLower(t)] = true
	}
	for _, a := range cfg.AllowedAttrs {
		e.allowedAttrs[strings.ToLower(a)] = true
	}
	for _, t := range cfg.TransclusionDeniedTags {
		e.deniedInTx[strings.ToLower(t)] = true
	}

	return e, nil
}

// MatchBehaviorSwitch reports whether text is exactly a configured behavior
// switch and returns its canonical name.
func (e *Env) MatchBehaviorSwitch(text string) (string, bool) {
	name, ok := e.switchNames[text]
	return name, ok
}

// BehaviorSwitchPattern returns the combined matcher for all configured
// switches, or nil when none are configured.
func (e *Env) BehaviorSwitchPattern() *regexp.Regexp { return e.behaviorSwitchRe }

// MatchPageProp classifies a structured property attribute value. It returns
// the canonical word, whether the word renders on the category path, and
// whether the value was a page property at all. Unknown words inside the
// page-property namespace classify as category-like so their value is never
// dropped.
func (e *Env) MatchPageProp(property string) (name string, category, ok bool) {
	m := pagePropRe.FindStringSubmatch(property)
	if m == nil {
		return "", false, false
	}
	word := m[1]
	for canonical, re := range e.propPatterns {
		if re.MatchString(word) {
			return canonical, e.cfg.PageProps[canonical].Category, true
		}
	}
	return strings.ToLower(word), true, true
}

// MagicWordWT formats a page property as wikitext source, e.g.
// notoc -> __NOTOC__.
func (e *Env) MagicWordWT(name string) (string, bool) {
	prop, ok := e.cfg.PageProps[strings.ToLower(name)]
	if !ok || prop.Wikitext == "" {
		return "", false
	}
	return prop.Wikitext, true
}

// IsAllowedTag reports whether the sanitizer allow-list admits the tag.
func (e *Env) IsAllowedTag(name string) bool {
	return e.allowedTags[strings.ToLower(name)]
}

// IsAllowedAttr reports whether the sanitizer allow-list admits the
// attribute key.
func (e *Env) IsAllowedAttr(key string) bool {
	// Event-handler attributes are never allowed, listed or not.
	if strings.HasPrefix(strings.ToLower(key), "on") {
		return false
	}
	return e.allowedAttrs[strings.ToLower(key)]
}

// IsDeniedInTransclusion reports whether the tag is stripped inside
// transclusion content even when the allow-list admits it.
func (e *Env) IsDeniedInTransclusion(name string) bool {
	return e.deniedInTx[strings.ToLower(name)]
}

// logf emits a diagnostic through the env's sink.
func (e *Env) logf(msg string, args ...any) {
	if e.Logger != nil {
		e.Logger.Warn(msg, args...)
	}
}
