package i18n

import (
	"encoding/json"
	"testing"
)

func mustNew(t *testing.T, lang string) *Catalog {
	t.Helper()
	c, err := New(lang)
	if err != nil {
		t.Fatalf("New(%q): %v", lang, err)
	}
	return c
}

func TestTranslateEnglish(t *testing.T) {
	c := mustNew(t, "en")

	if got := c.T("MenuStart"); got != "Start practice" {
		t.Errorf("T(MenuStart) = %q", got)
	}
	if got := c.T("AdviceIncrease"); got != "Increase difficulty for a stronger challenge." {
		t.Errorf("T(AdviceIncrease) = %q", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	c := mustNew(t, "ru")

	if got := c.T("MenuStart"); got != "Начать практику" {
		t.Errorf("T(MenuStart) = %q", got)
	}
	if c.Lang() != "ru" {
		t.Errorf("Lang() = %q, want ru", c.Lang())
	}
}

func TestPluralTranslation(t *testing.T) {
	c := mustNew(t, "en")

	if got := c.Tp("QuestionsAnswered", 1); got != "1 question answered" {
		t.Errorf("Tp(1) = %q", got)
	}
	if got := c.Tp("QuestionsAnswered", 5); got != "5 questions answered" {
		t.Errorf("Tp(5) = %q", got)
	}

	ru := mustNew(t, "ru")
	if got := ru.Tp("QuestionsAnswered", 5); got != "5 вопросов отвечено" {
		t.Errorf("ru Tp(5) = %q", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	c := mustNew(t, "en")

	got := c.Td("MenuSubject", map[string]any{"Subject": "Physics"})
	if got != "Subject: Physics" {
		t.Errorf("Td(MenuSubject) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	c := mustNew(t, "en")
	if got := c.T("NonExistentKey"); got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q", got)
	}

	var nilCat *Catalog
	if got := nilCat.T("MenuStart"); got != "MenuStart" {
		t.Errorf("nil catalog T = %q", got)
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	c := mustNew(t, "de")
	if got := c.T("MenuQuit"); got != "Quit" {
		t.Errorf("T(MenuQuit) = %q, want English fallback", got)
	}
}

func TestInvalidLanguage(t *testing.T) {
	if _, err := New("!!"); err == nil {
		t.Fatal("expected error for invalid tag")
	}
}

func TestLocalesHaveSameKeys(t *testing.T) {
	load := func(name string) map[string]any {
		data, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			t.Fatal(err)
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		return m
	}
	en := load("en.json")
	for _, lang := range Languages() {
		other := load(lang + ".json")
		for k := range en {
			if _, ok := other[k]; !ok {
				t.Errorf("%s.json missing %q", lang, k)
			}
		}
	}
}
