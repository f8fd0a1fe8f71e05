package http

import (
	"net/http"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	page, pageSize := pagination(r)

	notifications, total, err := h.notificationService.GetNotifications(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: notifications, Total: total, Page: page, PageSize: pageSize})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	claims, _ := ClaimsFromContext(r.Context())
	if err := h.notificationService.MarkAsRead(r.Context(), claims.UserID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
