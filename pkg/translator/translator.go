// Package translator loads the TOML message bundles used for API error
// messages and negotiates the response language.
package translator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

var matcher = language.NewMatcher([]language.Tag{language.English})

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // first entry is not special, English is always the fallback
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	matcher = newMatcher(cfg.SupportedLanguages)

	files, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

func newMatcher(supported []string) language.Matcher {
	tags := []language.Tag{language.English}
	for _, lang := range supported {
		tag, err := language.Parse(strings.TrimSpace(lang))
		if err != nil {
			zap.L().Warn("ignoring unsupported language", zap.String("lang", lang), zap.Error(err))
			continue
		}
		if tag != language.English {
			tags = append(tags, tag)
		}
	}
	return language.NewMatcher(tags)
}

// Negotiate returns the supported base language that best matches an
// Accept-Language header. Unknown or empty headers give English.
func Negotiate(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return LanguageEn
	}
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	base, _ := tag.Base()
	return base.String()
}
