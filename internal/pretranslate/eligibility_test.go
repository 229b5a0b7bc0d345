package pretranslate

import (
	"testing"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db/models"
)

func TestEligibility_MissingOriginal(t *testing.T) {
	store := newFakeStore()
	elig := NewEligibility(store)

	set := &models.TranslationSet{ID: 10, Locale: "fr", Slug: "default"}
	if _, ok := elig.Check(1, set); ok {
		t.Error("missing original should be ineligible")
	}
}

func TestEligibility_PluralAlwaysRejected(t *testing.T) {
	store := newFakeStore()
	store.addOriginal(1, "%d item", strptr("%d items"))
	elig := NewEligibility(store)

	set := &models.TranslationSet{ID: 10, Locale: "fr", Slug: "default"}
	if _, ok := elig.Check(1, set); ok {
		t.Error("original with a plural form should never be eligible")
	}
}

func TestEligibility_CurrentTranslationRejected(t *testing.T) {
	store := newFakeStore()
	store.addOriginal(1, "Hello", nil)
	store.current[1] = []models.Translation{
		{ID: 99, OriginalID: 1, TranslationSetID: 10, Translation0: "Bonjour", Status: "current"},
	}
	elig := NewEligibility(store)

	set := &models.TranslationSet{ID: 10, Locale: "fr", Slug: "default"}
	if _, ok := elig.Check(1, set); ok {
		t.Error("original with a current translation should not be eligible")
	}
}

func TestEligibility_EligibleReturnsOriginal(t *testing.T) {
	store := newFakeStore()
	store.addOriginal(1, "Hello", nil)
	elig := NewEligibility(store)

	set := &models.TranslationSet{ID: 10, Locale: "fr", Slug: "default"}
	original, ok := elig.Check(1, set)
	if !ok {
		t.Fatal("expected original to be eligible")
	}
	if original.Singular != "Hello" {
		t.Errorf("got singular %q, want Hello", original.Singular)
	}
}
