package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/api/middleware"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/pretranslate"
)

// settingsKeys defines which per-user keys are exposed and their display metadata
var settingsKeys = []SettingDef{
	{Key: pretranslate.SettingOpenAIAPIKey, Label: "OpenAI API Key", Group: "openai", Placeholder: "sk-...", Secret: true},
	{Key: pretranslate.SettingOpenAICustomPrompt, Label: "Custom Prompt", Group: "openai", Placeholder: "Translate like a native speaker.", Secret: false},
	{Key: pretranslate.SettingOpenAITemperature, Label: "Temperature", Group: "openai", Placeholder: "0", Secret: false},
	{Key: pretranslate.SettingOpenAIModel, Label: "Model", Group: "openai", Placeholder: "gpt-3.5-turbo", Secret: false},
	{Key: pretranslate.SettingDeepLAPIKey, Label: "DeepL API Key", Group: "deepl", Placeholder: "xxxxxxxx-xxxx-...", Secret: true},
	{Key: pretranslate.SettingDeepLUseAPIPro, Label: "Use DeepL API Pro", Group: "deepl", Placeholder: "0", Secret: false},
}

type SettingDef struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Group       string `json:"group"`
	Placeholder string `json:"placeholder"`
	Secret      bool   `json:"secret"`
}

type SettingsHandler struct {
	database *db.Database
	usage    *pretranslate.Usage
}

func NewSettingsHandler(database *db.Database, usage *pretranslate.Usage) *SettingsHandler {
	return &SettingsHandler{database: database, usage: usage}
}

// GetSettings returns the current user's provider settings (secrets are masked)
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type SettingResponse struct {
		SettingDef
		Value    string `json:"value"`
		HasValue bool   `json:"has_value"`
	}

	var result []SettingResponse
	for _, def := range settingsKeys {
		val, _ := h.database.GetUserSetting(claims.UserID, def.Key)
		masked := val
		hasValue := val != ""
		if def.Secret && hasValue {
			// Show only last 4 chars
			if len(val) > 4 {
				masked = "••••••••" + val[len(val)-4:]
			} else {
				masked = "••••••••"
			}
		}
		result = append(result, SettingResponse{
			SettingDef: def,
			Value:      masked,
			HasValue:   hasValue,
		})
	}

	jsonResponse(w, result, http.StatusOK)
}

// UpdateSettings saves the current user's provider settings from the request body
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Only known settings keys are writable.
	allowed := make(map[string]bool)
	for _, def := range settingsKeys {
		allowed[def.Key] = true
	}

	for key, value := range updates {
		if !allowed[key] {
			continue
		}
		// Skip masked values so a round-tripped form doesn't overwrite a
		// stored secret with its mask.
		if strings.HasPrefix(value, "••••••••") {
			continue
		}
		if err := h.database.SetUserSetting(claims.UserID, key, value); err != nil {
			jsonError(w, "failed to save setting: "+key, http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetUsage reports the current user's external-API consumption counters.
func (h *SettingsHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tokens, chars := h.usage.Totals(claims.UserID)
	jsonResponse(w, map[string]int{
		pretranslate.SettingOpenAITokensUsed: tokens,
		pretranslate.SettingDeepLCharsUsed:   chars,
	}, http.StatusOK)
}
