package cli

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator renders shell messages in the selected language.
// A nil Translator returns message ids unchanged.
type Translator struct {
	localizer *i18n.Localizer
	languages []string
}

// NewTranslator loads every embedded locale and selects lang. Unknown
// languages fall back to English.
func NewTranslator(lang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	log := slog.With(config.LogKeyComponent, config.CompI18n)
	var detected []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			log.Debug(config.MsgLocaleSkip, config.LogKeyFile, name)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			log.Warn(config.MsgLocaleBadName, config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		detected = append(detected, langCode)
		log.Debug(config.MsgLocaleLoaded, config.LogKeyLang, langCode, config.LogKeyFile, name)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}
	if !slices.Contains(detected, lang) {
		log.Warn(config.MsgLocaleFallback, config.LogKeyLang, lang)
	}

	return &Translator{
		localizer: i18n.NewLocalizer(bundle, lang),
		languages: detected,
	}, nil
}

// Languages lists the locales found in the embedded bundle.
func (t *Translator) Languages() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.languages)
}

// Msg translates key with optional template data.
func (t *Translator) Msg(key string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural translates key choosing the plural form for count. data.Count is set
// to count.
func (t *Translator) Plural(key string, count int, data map[string]any) string {
	merged := map[string]any{"Count": count}
	for k, v := range data {
		merged[k] = v
	}
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: merged, PluralCount: count})
}

func (t *Translator) localize(lc *i18n.LocalizeConfig) string {
	if t == nil || t.localizer == nil {
		return lc.MessageID
	}
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}
