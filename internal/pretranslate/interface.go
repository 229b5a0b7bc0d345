package pretranslate

import (
	"context"
	"errors"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db/models"
)

// Action identifies a bulk pretranslation action token as submitted by the
// translation-set bulk form.
type Action string

const (
	ActionTM     Action = "bulk-pretranslation-tm"
	ActionOpenAI Action = "bulk-pretranslation-openai"
	ActionDeepL  Action = "bulk-pretranslation-deepl"
)

// ErrNoSuggestion is the uniform rejection for a string that produced no
// usable suggestion: missing key, unsupported locale, low-confidence match,
// provider error, empty completion. The distinguishing cause is logged but
// never surfaced to the caller.
var ErrNoSuggestion = errors.New("no suggestion")

// SuggestionRequest carries one eligible original plus the ambient context a
// provider needs to produce a suggestion for it.
type SuggestionRequest struct {
	UserID   int64
	Original *models.Original
	Locale   Locale
	SetSlug  string // translation set variant slug, e.g. "default", "formal"
}

// Provider turns an eligible original into a single suggested translation.
// An empty string or an error both mean "no suggestion for this string".
type Provider interface {
	Suggest(ctx context.Context, req SuggestionRequest) (string, error)
}

// RecordStore is the slice of the platform data store the engine reads
// originals, translations and glossaries through, and writes pretranslations
// into.
type RecordStore interface {
	GetOriginal(id int64) (*models.Original, error)
	FindTranslations(originalID, translationSetID int64, status string) ([]models.Translation, error)
	CreateTranslation(t *models.Translation) error
	DefaultTranslationSet(projectID int64, slug, localeSlug string) (*models.TranslationSet, error)
	GlossaryEntries(translationSetID int64) ([]models.GlossaryEntry, error)
}

// SettingsStore is the per-user preference bag: provider API keys, prompt and
// model choices, and the usage counters the engine maintains.
type SettingsStore interface {
	GetUserSetting(userID int64, key string) (string, bool)
	SetUserSetting(userID int64, key, value string) error
}

// Permissions answers capability checks against platform objects.
type Permissions interface {
	Can(userID int64, action, objectType string, objectID int64) bool
}

// Cache is an optional read-through cache in front of the translation memory
// service. A nil Cache is a no-op.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// User setting keys consumed by the provider strategies.
const (
	SettingOpenAIAPIKey       = "openai_api_key"
	SettingOpenAICustomPrompt = "openai_custom_prompt"
	SettingOpenAITemperature  = "openai_temperature"
	SettingOpenAIModel        = "openai_model"
	SettingDeepLAPIKey        = "deepl_api_key"
	SettingDeepLUseAPIPro     = "deepl_use_api_pro"
)
