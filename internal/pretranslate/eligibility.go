package pretranslate

import (
	"log"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db/models"
)

// Eligibility decides whether a selected string qualifies for pretranslation.
type Eligibility struct {
	store RecordStore
}

func NewEligibility(store RecordStore) *Eligibility {
	return &Eligibility{store: store}
}

// Check returns the original when it may be pretranslated into the given set.
// Rules, short-circuiting on first failure: the original must exist, must not
// have a plural form, and must not already carry a current translation in the
// set. The fetched original is returned so callers don't fetch it twice.
func (e *Eligibility) Check(originalID int64, set *models.TranslationSet) (*models.Original, bool) {
	original, err := e.store.GetOriginal(originalID)
	if err != nil || original == nil {
		return nil, false
	}
	if original.Plural != nil {
		return nil, false
	}
	translations, err := e.store.FindTranslations(originalID, set.ID, "current")
	if err != nil {
		log.Printf("[pretranslate] find current translations for original %d: %v", originalID, err)
		return nil, false
	}
	if len(translations) > 0 {
		return nil, false
	}
	return original, true
}
