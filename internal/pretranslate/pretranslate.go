// Package pretranslate implements the bulk pretranslation engine: it decides
// which selected strings are eligible, asks the chosen provider (translation
// memory, OpenAI or DeepL) for a suggestion, stores accepted suggestions as
// waiting translations and keeps per-user usage counters.
package pretranslate

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db/models"
	"github.com/google/uuid"
)

// Config wires the engine's external endpoints. Zero values select the
// production defaults.
type Config struct {
	TMEndpoint    string
	OpenAIBaseURL string
	TMCache       Cache
}

// Service is the pretranslation decision engine.
type Service struct {
	store       RecordStore
	settings    SettingsStore
	perms       Permissions
	usage       *Usage
	eligibility *Eligibility
	providers   map[Action]Provider
}

func NewService(store RecordStore, settings SettingsStore, perms Permissions, cfg Config) *Service {
	usage := NewUsage(settings)
	return &Service{
		store:       store,
		settings:    settings,
		perms:       perms,
		usage:       usage,
		eligibility: NewEligibility(store),
		providers: map[Action]Provider{
			ActionTM:     NewTMProvider(cfg.TMEndpoint, cfg.TMCache),
			ActionOpenAI: NewOpenAIProvider(store, settings, usage, cfg.OpenAIBaseURL),
			ActionDeepL:  NewDeepLProvider(settings, usage),
		},
	}
}

// Usage exposes the engine's usage accounting for the settings API.
func (s *Service) Usage() *Usage {
	return s.usage
}

// BulkRequest is one bulk-action invocation: which provider to use and which
// originals were selected, in the order the user selected them.
type BulkRequest struct {
	Action Action  `json:"action"`
	RowIDs []int64 `json:"row-ids"`
}

// BulkResult summarizes a processed batch. Added counts the strings whose
// suggestion was accepted and stored; everything else degrades silently into
// a lower count.
type BulkResult struct {
	BatchID string `json:"batch_id"`
	Added   int    `json:"added"`
	Notice  string `json:"notice"`
}

// Run processes a batch. The acting user must hold the approve capability on
// the translation set; without it the whole batch is a silent no-op, matching
// the platform convention that unavailable bulk actions are invisible rather
// than erroring. Each string is processed independently: a provider rejection
// or storage failure skips that string and the loop continues.
func (s *Service) Run(ctx context.Context, userID int64, set *models.TranslationSet, req BulkRequest) BulkResult {
	if !s.perms.Can(userID, "approve", "translation-set", set.ID) {
		log.Printf("[pretranslate] user %d lacks approve on set %d, ignoring batch", userID, set.ID)
		return BulkResult{}
	}

	provider, ok := s.providers[req.Action]
	if !ok {
		log.Printf("[pretranslate] unknown action %q, ignoring batch", req.Action)
		return BulkResult{}
	}

	batchID := uuid.New().String()
	locale := LocaleBySlug(set.Locale)
	log.Printf("[pretranslate] batch %s: action=%s set=%d locale=%s strings=%d",
		batchID, req.Action, set.ID, set.Locale, len(req.RowIDs))

	added := 0
	for _, originalID := range req.RowIDs {
		original, ok := s.eligibility.Check(originalID, set)
		if !ok {
			continue
		}

		suggestion, err := provider.Suggest(ctx, SuggestionRequest{
			UserID:   userID,
			Original: original,
			Locale:   locale,
			SetSlug:  set.Slug,
		})
		if err != nil || suggestion == "" {
			if err != nil && !errors.Is(err, ErrNoSuggestion) {
				log.Printf("[pretranslate] batch %s: original %d: %v", batchID, originalID, err)
			}
			continue
		}

		err = s.store.CreateTranslation(&models.Translation{
			OriginalID:       originalID,
			TranslationSetID: set.ID,
			Translation0:     suggestion,
			Status:           "waiting",
			UserID:           userID,
		})
		if err != nil {
			log.Printf("[pretranslate] batch %s: store translation for original %d: %v", batchID, originalID, err)
			continue
		}
		added++
	}

	log.Printf("[pretranslate] batch %s: %d of %d strings pretranslated", batchID, added, len(req.RowIDs))
	return BulkResult{
		BatchID: batchID,
		Added:   added,
		Notice:  Notice(added),
	}
}

// Notice renders the user-facing summary for a processed batch.
func Notice(added int) string {
	if added == 1 {
		return "1 pretranslation was added"
	}
	return fmt.Sprintf("%d pretranslations were added", added)
}

// ActionOption is one entry of the bulk-action dropdown.
type ActionOption struct {
	Value Action `json:"value"`
	Label string `json:"label"`
}

// AvailableActions lists the pretranslation actions offered to a user for a
// translation set. Translation memory is always offered to approvers; the
// external providers additionally require a configured API key, and DeepL a
// supported locale. Users without the approve capability get nothing.
func (s *Service) AvailableActions(userID int64, set *models.TranslationSet) []ActionOption {
	if !s.perms.Can(userID, "approve", "translation-set", set.ID) {
		return nil
	}

	options := []ActionOption{
		{Value: ActionTM, Label: "Translation Memory"},
	}
	if key, _ := s.settings.GetUserSetting(userID, SettingOpenAIAPIKey); key != "" {
		options = append(options, ActionOption{Value: ActionOpenAI, Label: "OpenAI"})
	}
	if key, _ := s.settings.GetUserSetting(userID, SettingDeepLAPIKey); key != "" && DeepLLocale(set.Locale) != "" {
		options = append(options, ActionOption{Value: ActionDeepL, Label: "DeepL"})
	}
	return options
}
