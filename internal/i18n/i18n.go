// Package i18n provides the message catalog for user-facing text.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLang is used when no language is configured.
const DefaultLang = "en"

// Catalog translates message IDs for one language. A nil *Catalog
// returns message IDs unchanged.
type Catalog struct {
	lang string
	loc  *i18n.Localizer
}

// New loads every embedded locale and returns a catalog for lang, with
// English as the fallback for missing messages.
func New(lang string) (*Catalog, error) {
	if lang == "" {
		lang = DefaultLang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
	}

	return &Catalog{
		lang: tag.String(),
		loc:  i18n.NewLocalizer(bundle, tag.String(), DefaultLang),
	}, nil
}

// English returns the built-in English catalog.
func English() *Catalog {
	c, err := New(DefaultLang)
	if err != nil {
		panic(err)
	}
	return c
}

// Languages lists the embedded locales.
func Languages() []string {
	entries, _ := localeFS.ReadDir("locales")
	var langs []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok {
			langs = append(langs, name)
		}
	}
	sort.Strings(langs)
	return langs
}

// Lang returns the catalog's language tag.
func (c *Catalog) Lang() string {
	if c == nil {
		return DefaultLang
	}
	return c.lang
}

// T translates a message by ID.
func (c *Catalog) T(msgID string) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: msgID})
}

// Td translates a message by ID with template data.
func (c *Catalog) Td(msgID string, data map[string]any) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: msgID, TemplateData: data})
}

// Tp translates a pluralized message by ID.
func (c *Catalog) Tp(msgID string, count int) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (c *Catalog) localize(cfg *i18n.LocalizeConfig) string {
	if c == nil {
		return cfg.MessageID
	}
	s, err := c.loc.Localize(cfg)
	if err != nil {
		slog.Warn("missing translation", "id", cfg.MessageID, "lang", c.lang, "error", err)
		return cfg.MessageID
	}
	return s
}
