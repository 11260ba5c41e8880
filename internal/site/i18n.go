package site

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Languages supported by the site, the fallback first.
var Languages = []string{"ru", "kk"}

// Bundle is a flat key-value translation store per language. Missing keys
// fall back to the first language, then to the key itself.
type Bundle struct {
	fallback string
	messages map[string]map[string]string
	matcher  language.Matcher
	tags     []string
}

// NewBundle loads the embedded locales. defaultLang is what visitors get
// when neither the query nor Accept-Language selects a language.
func NewBundle(defaultLang string) (*Bundle, error) {
	b := &Bundle{fallback: Languages[0], messages: map[string]map[string]string{}}

	for _, lang := range Languages {
		raw, err := localeFS.ReadFile("locales/" + lang + ".json")
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode locale %s: %w", lang, err)
		}
		b.messages[lang] = m
	}

	if !b.Supported(defaultLang) {
		return nil, fmt.Errorf("unsupported default language %q", defaultLang)
	}
	// the matcher falls back to its first tag
	b.tags = append([]string{defaultLang}, without(Languages, defaultLang)...)
	tags := make([]language.Tag, 0, len(b.tags))
	for _, l := range b.tags {
		tags = append(tags, language.MustParse(l))
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func (b *Bundle) Supported(lang string) bool {
	_, ok := b.messages[lang]
	return ok
}

// Negotiate picks the page language: an explicit supported query value
// wins, then the best Accept-Language match.
func (b *Bundle) Negotiate(query, acceptLanguage string) string {
	if q := strings.ToLower(strings.TrimSpace(query)); b.Supported(q) {
		return q
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.tags[0]
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.tags[0]
	}
	return b.tags[idx]
}

func (b *Bundle) T(lang, key string) string {
	if v, ok := b.messages[lang][key]; ok && v != "" {
		return v
	}
	if v, ok := b.messages[b.fallback][key]; ok && v != "" {
		return v
	}
	return key
}

func without(list []string, drop string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}
