package pretranslate

import (
	"fmt"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db/models"
)

// fakeStore is an in-memory RecordStore for engine tests.
type fakeStore struct {
	originals   map[int64]*models.Original
	current     map[int64][]models.Translation // originalID -> current translations
	created     []*models.Translation
	createErrOn map[int64]bool // originalID -> fail CreateTranslation
	glossarySet *models.TranslationSet
	glossary    []models.GlossaryEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		originals:   make(map[int64]*models.Original),
		current:     make(map[int64][]models.Translation),
		createErrOn: make(map[int64]bool),
	}
}

func (s *fakeStore) addOriginal(id int64, singular string, plural *string) {
	s.originals[id] = &models.Original{ID: id, ProjectID: 1, Singular: singular, Plural: plural, Status: "+active"}
}

func (s *fakeStore) GetOriginal(id int64) (*models.Original, error) {
	return s.originals[id], nil
}

func (s *fakeStore) FindTranslations(originalID, translationSetID int64, status string) ([]models.Translation, error) {
	if status != "current" {
		return nil, nil
	}
	return s.current[originalID], nil
}

func (s *fakeStore) CreateTranslation(t *models.Translation) error {
	if s.createErrOn[t.OriginalID] {
		return fmt.Errorf("create failed for original %d", t.OriginalID)
	}
	s.created = append(s.created, t)
	return nil
}

func (s *fakeStore) DefaultTranslationSet(projectID int64, slug, localeSlug string) (*models.TranslationSet, error) {
	return s.glossarySet, nil
}

func (s *fakeStore) GlossaryEntries(translationSetID int64) ([]models.GlossaryEntry, error) {
	return s.glossary, nil
}

// fakeSettings is an in-memory SettingsStore.
type fakeSettings struct {
	values map[int64]map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[int64]map[string]string)}
}

func (s *fakeSettings) GetUserSetting(userID int64, key string) (string, bool) {
	v, ok := s.values[userID][key]
	return v, ok
}

func (s *fakeSettings) SetUserSetting(userID int64, key, value string) error {
	if s.values[userID] == nil {
		s.values[userID] = make(map[string]string)
	}
	s.values[userID][key] = value
	return nil
}

// fakePerms grants or denies everything.
type fakePerms struct {
	allow bool
}

func (p *fakePerms) Can(userID int64, action, objectType string, objectID int64) bool {
	return p.allow
}

// fakeCache is an in-memory Cache.
type fakeCache struct {
	entries map[string]string
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(key string) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeCache) Set(key, value string) error {
	c.entries[key] = value
	c.sets++
	return nil
}

func strptr(s string) *string {
	return &s
}
