package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/servineo/backend/internal/application/services"
)

// NotificationHandler exposes the notification feed.
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	feed, err := h.notifications.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, feed)
}

type markReadRequest struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Action string `json:"action"`
}

// MarkRead handles PUT /api/notifications. With action=markAllRead the
// whole feed of userId is flagged; otherwise the single id is.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var payload markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.Action == "markAllRead" && payload.UserID != "" {
		if err := h.notifications.MarkAllRead(r.Context(), payload.UserID); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	if payload.ID == "" {
		respondWithError(w, http.StatusBadRequest, "id or userId with action is required")
		return
	}
	if err := h.notifications.MarkRead(r.Context(), payload.ID); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Delete handles DELETE /api/notifications (?id= or ?userId=)
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if id := query.Get("id"); id != "" {
		if err := h.notifications.Delete(r.Context(), id); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	if userID := query.Get("userId"); userID != "" {
		if err := h.notifications.DeleteAll(r.Context(), userID); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	respondWithError(w, http.StatusBadRequest, "id or userId is required")
}
