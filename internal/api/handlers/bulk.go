package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/api/middleware"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/db"
	"github.com/WordPress/wporg-gp-bulk-pretranslations/internal/pretranslate"
)

// BulkHandler exposes the bulk pretranslation action and its dropdown options
// for a translation set.
type BulkHandler struct {
	database *db.Database
	service  *pretranslate.Service
}

func NewBulkHandler(database *db.Database, service *pretranslate.Service) *BulkHandler {
	return &BulkHandler{database: database, service: service}
}

func setIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	setID, err := strconv.ParseInt(chi.URLParam(r, "setID"), 10, 64)
	if err != nil {
		jsonError(w, "invalid translation set id", http.StatusBadRequest)
		return 0, false
	}
	return setID, true
}

// Actions lists the pretranslation options offered to the current user for
// this set, in dropdown order.
func (h *BulkHandler) Actions(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	setID, ok := setIDParam(w, r)
	if !ok {
		return
	}
	set, err := h.database.GetTranslationSet(setID)
	if err != nil {
		jsonError(w, "translation set not found", http.StatusNotFound)
		return
	}

	options := h.service.AvailableActions(claims.UserID, set)
	if options == nil {
		options = []pretranslate.ActionOption{}
	}
	jsonResponse(w, options, http.StatusOK)
}

// Pretranslate runs one bulk pretranslation batch over the selected rows.
// Per platform convention, a user without the approve capability gets a zero
// result rather than an error.
func (h *BulkHandler) Pretranslate(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	setID, ok := setIDParam(w, r)
	if !ok {
		return
	}
	set, err := h.database.GetTranslationSet(setID)
	if err != nil {
		jsonError(w, "translation set not found", http.StatusNotFound)
		return
	}

	var req pretranslate.BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result := h.service.Run(r.Context(), claims.UserID, set, req)
	jsonResponse(w, result, http.StatusOK)
}
