package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskboard/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

func TestInitTranslator_LoadsMessages(t *testing.T) {
	// Create a temporary directory for translations
	dir := t.TempDir()

	// Write a test en.toml file
	enFile := filepath.Join(dir, "en.toml")
	content := []byte(`
getAllUser = "Could not retrieve users."
validationFailedId = "Validation Id failed."
failFindUserById = "Fail to find the user."
hello = "Hello english"
`)
	if err := os.WriteFile(enFile, content, 0644); err != nil {
		t.Fatalf("failed to write en.toml: %v", err)
	}

	// Initialize translator with the temp dir
	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	localizer := i18n.NewLocalizer(translator.Translator, translator.LanguageEn)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID: "hello",
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	expected := "Hello english"
	if msg != expected {
		t.Errorf("expected %q, got %q", expected, msg)
	}
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})
}

func TestTranslatorConstants(t *testing.T) {
	if translator.LanguageEn != "en" {
		t.Errorf("expected LanguageEn to be 'en'")
	}
	if translator.LanguageFr != "fr" {
		t.Errorf("expected LanguageFr to be 'fr'")
	}
}

func TestNegotiate(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  t.TempDir(),
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cases := map[string]string{
		"":                        translator.LanguageEn,
		"fr":                      translator.LanguageFr,
		"fr-FR,fr;q=0.9,en;q=0.8": translator.LanguageFr,
		"en-GB":                   translator.LanguageEn,
		"de-DE":                   translator.LanguageEn,
		"not a language":          translator.LanguageEn,
	}
	for header, want := range cases {
		if got := translator.Negotiate(header); got != want {
			t.Errorf("Negotiate(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestInitTranslator_SkipsNonTomlFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "en.toml"), []byte(`hello = "Hello"`), 0o644); err != nil {
		t.Fatalf("failed to write en.toml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# translations"), 0o644); err != nil {
		t.Fatalf("failed to write README.md: %v", err)
	}

	translator.InitTranslator(translator.Config{TranslationFolder: dir})

	msg, err := i18n.NewLocalizer(translator.Translator, translator.LanguageEn).Localize(&i18n.LocalizeConfig{MessageID: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", msg)
	}
}
