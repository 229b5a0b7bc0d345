package handlers

import (
	"net/http"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db/models"
)

// TranslationsHandler lets reviewers browse what a pretranslation batch
// produced.
type TranslationsHandler struct {
	database *db.Database
}

func NewTranslationsHandler(database *db.Database) *TranslationsHandler {
	return &TranslationsHandler{database: database}
}

// List returns the translations in a set, optionally filtered by status
// (?status=waiting shows pending pretranslations).
func (h *TranslationsHandler) List(w http.ResponseWriter, r *http.Request) {
	setID, ok := setIDParam(w, r)
	if !ok {
		return
	}
	if _, err := h.database.GetTranslationSet(setID); err != nil {
		jsonError(w, "translation set not found", http.StatusNotFound)
		return
	}

	translations, err := h.database.ListTranslations(setID, r.URL.Query().Get("status"))
	if err != nil {
		jsonError(w, "failed to load translations", http.StatusInternalServerError)
		return
	}
	if translations == nil {
		translations = []models.Translation{}
	}
	jsonResponse(w, translations, http.StatusOK)
}
