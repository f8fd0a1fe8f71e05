package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type setSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.ListSettings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	setting, err := h.settingsService.GetSetting(r.Context(), key)
	if err != nil {
		respondError(w, err)
		return
	}
	if setting == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "setting not found"})
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

func (h *Handler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req setSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	setting, err := h.settingsService.SetSetting(r.Context(), key, req.Value)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}
