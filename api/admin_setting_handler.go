package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
)

func (h adminHandler) listSettings() http.HandlerFunc {
	return list(h.responder, h.services.Settings.All)
}

// upsertSetting creates the setting or writes the sent values over the one
// under the same key
func (h adminHandler) upsertSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.SettingUpsert
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		result, err := h.services.Settings.Upsert(r.Context(), in)
		writeMutation(h.responder, w, http.StatusOK, result, err)
	}
}

func (h adminHandler) updateSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var changes models.SettingUpdate
		if err := decodeJSON(w, r, &changes); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		result, err := h.services.Settings.UpdateByKey(r.Context(), chi.URLParam(r, "key"), changes)
		writeMutation(h.responder, w, http.StatusOK, result, err)
	}
}

func (h adminHandler) deleteSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.services.Settings.DeleteByKey(r.Context(), chi.URLParam(r, "key"))
		writeMutation(h.responder, w, http.StatusOK, result, err)
	}
}
